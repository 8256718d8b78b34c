package blogservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/multiblog/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(conn common.DBTX) *BlogModel {
	return &BlogModel{conn: conn}
}

// WithConn returns a copy of the model that runs its statements on conn, typically a
// transaction owned by the caller. The receiver keeps its own connection, so there is
// nothing to reset once the transaction is over.
func (m *BlogModel) WithConn(conn common.DBTX) *BlogModel {
	return &BlogModel{conn: conn}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// Insert writes the blog and reads it back. A row that cannot be read back is
// reported as common.ErrRecordNotFound.
func (m *BlogModel) Insert(ctx context.Context, b *Blog) (*Blog, error) {
	query := `
		INSERT INTO blogs (id, title, user_id, stylesheet)
		VALUES ($1, $2, $3, $4)`

	_, err := m.conn.ExecContext(ctx, query, b.ID, b.Title, b.UserID, b.Stylesheet)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return nil, ErrUserForeignKey
		default:
			return nil, fmt.Errorf("could not insert blog: %w", err)
		}
	}

	return m.FindOne(ctx, BlogFilter{ID: &b.ID})
}

// Find returns the blogs matching every set field of filter that is filterable.
// No match is an empty slice.
func (m *BlogModel) Find(ctx context.Context, filter BlogFilter) ([]Blog, error) {
	where, args, err := common.BuildClause(filter.fields(), blogFindFields, common.QueryOptions{})
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, user_id, stylesheet
		FROM blogs
		WHERE ` + where + `
		ORDER BY title`

	rows, err := m.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.UserID, &blog.Stylesheet)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) FindOne(ctx context.Context, filter BlogFilter) (*Blog, error) {
	blogs, err := m.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(blogs) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &blogs[0], nil
}

// Update applies the updatable fields of patch. Zero affected rows, whether the blog
// is missing or nothing changed, is reported as common.ErrRecordNotFound.
func (m *BlogModel) Update(ctx context.Context, id string, patch BlogPatch) (*Blog, error) {
	set, args, err := common.BuildClause(patch.fields(), blogUpdateFields, common.QueryOptions{Joiner: common.JoinComma})
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE blogs SET %s WHERE id = $%d", set, len(args)+1)

	res, err := m.conn.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return nil, fmt.Errorf("could not update blog: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		return nil, common.ErrRecordNotFound
	}

	return m.FindOne(ctx, BlogFilter{ID: &id})
}

func (m *BlogModel) Delete(ctx context.Context, id string) (bool, error) {
	res, err := m.conn.ExecContext(ctx, "DELETE FROM blogs WHERE id = $1", id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
