package pageservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/multiblog/internal/common"
)

var ErrDuplicatePageTitle = errors.New("a page with this title already exists in the blog")

func NewPageModel(conn common.DBTX) *PageModel {
	return &PageModel{conn: conn}
}

// WithConn returns a copy of the model that runs its statements on conn, typically a
// transaction owned by the caller. The receiver keeps its own connection.
func (m *PageModel) WithConn(conn common.DBTX) *PageModel {
	return &PageModel{conn: conn}
}

func duplicateTitle(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == "pages_blog_id_title_key"
	}

	return false
}

func (m *PageModel) Insert(ctx context.Context, p *Page) (*Page, error) {
	query := `
		INSERT INTO pages (id, title, content, blog_id)
		VALUES ($1, $2, $3, $4)`

	_, err := m.conn.ExecContext(ctx, query, p.ID, p.Title, p.Content, p.BlogID)
	if err != nil {
		switch {
		case duplicateTitle(err):
			return nil, ErrDuplicatePageTitle
		default:
			return nil, fmt.Errorf("could not insert page: %w", err)
		}
	}

	return m.FindOne(ctx, PageFilter{ID: &p.ID})
}

func (m *PageModel) Find(ctx context.Context, filter PageFilter) ([]Page, error) {
	where, args, err := common.BuildClause(filter.fields(), pageFindFields, common.QueryOptions{})
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, content, blog_id
		FROM pages
		WHERE ` + where + `
		ORDER BY title`

	rows, err := m.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query pages: %w", err)
	}
	defer rows.Close()

	pages := []Page{}
	for rows.Next() {
		var p Page
		err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.BlogID)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pages, nil
}

func (m *PageModel) FindOne(ctx context.Context, filter PageFilter) (*Page, error) {
	pages, err := m.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &pages[0], nil
}

// Update applies the set fields of patch. Zero affected rows is reported as
// common.ErrRecordNotFound.
func (m *PageModel) Update(ctx context.Context, id string, patch PagePatch) (*Page, error) {
	set, args, err := common.BuildClause(patch.fields(), pageUpdateFields, common.QueryOptions{Joiner: common.JoinComma})
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE pages SET %s WHERE id = $%d", set, len(args)+1)

	res, err := m.conn.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		switch {
		case duplicateTitle(err):
			return nil, ErrDuplicatePageTitle
		default:
			return nil, fmt.Errorf("could not update page: %w", err)
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		return nil, common.ErrRecordNotFound
	}

	return m.FindOne(ctx, PageFilter{ID: &id})
}

func (m *PageModel) Delete(ctx context.Context, id string) (bool, error) {
	res, err := m.conn.ExecContext(ctx, "DELETE FROM pages WHERE id = $1", id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
