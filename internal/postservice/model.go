package postservice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sushihentaime/multiblog/internal/common"
)

// selectWhere runs query with the generated WHERE clause appended and scans every row.
// No match is an empty slice.
func selectWhere[T any](ctx context.Context, conn common.DBTX, query string, fields common.Fields, allowed []string, order string, scan func(*sql.Rows, *T) error) ([]T, error) {
	where, args, err := common.BuildClause(fields, allowed, common.QueryOptions{})
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, query+" WHERE "+where+" ORDER BY "+order, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func first[T any](items []T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &items[0], nil
}

// deleteByID reports whether a row was removed. table is always a constant.
func deleteByID(ctx context.Context, conn common.DBTX, table, id string) (bool, error) {
	res, err := conn.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return false, fmt.Errorf("could not delete from %s: %w", table, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func NewPostModel(conn common.DBTX) *PostModel {
	return &PostModel{conn: conn}
}

func (m *PostModel) WithConn(conn common.DBTX) *PostModel {
	return &PostModel{conn: conn}
}

func (m *PostModel) Insert(ctx context.Context, p *Post) (*Post, error) {
	_, err := m.conn.ExecContext(ctx, "INSERT INTO posts (id, content, blog_id) VALUES ($1, $2, $3)", p.ID, p.Content, p.BlogID)
	if err != nil {
		return nil, fmt.Errorf("could not insert post: %w", err)
	}

	return m.FindOne(ctx, PostFilter{ID: &p.ID})
}

func (m *PostModel) Find(ctx context.Context, filter PostFilter) ([]Post, error) {
	return selectWhere(ctx, m.conn, "SELECT id, content, blog_id FROM posts", filter.fields(), postFindFields, "id",
		func(rows *sql.Rows, p *Post) error {
			return rows.Scan(&p.ID, &p.Content, &p.BlogID)
		})
}

func (m *PostModel) FindOne(ctx context.Context, filter PostFilter) (*Post, error) {
	return first(m.Find(ctx, filter))
}

// Update always reports common.ErrRecordNotFound without touching the store.
func (m *PostModel) Update(ctx context.Context, id string, patch Post) (*Post, error) {
	return nil, common.ErrRecordNotFound
}

func (m *PostModel) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, m.conn, "posts", id)
}

func NewLikeModel(conn common.DBTX) *LikeModel {
	return &LikeModel{conn: conn}
}

func (m *LikeModel) WithConn(conn common.DBTX) *LikeModel {
	return &LikeModel{conn: conn}
}

func (m *LikeModel) Insert(ctx context.Context, l *Like) (*Like, error) {
	_, err := m.conn.ExecContext(ctx, "INSERT INTO likes (id, blog_id, post_id) VALUES ($1, $2, $3)", l.ID, l.BlogID, l.PostID)
	if err != nil {
		return nil, fmt.Errorf("could not insert like: %w", err)
	}

	return m.FindOne(ctx, LikeFilter{ID: &l.ID})
}

func (m *LikeModel) Find(ctx context.Context, filter LikeFilter) ([]Like, error) {
	return selectWhere(ctx, m.conn, "SELECT id, blog_id, post_id FROM likes", filter.fields(), likeFindFields, "id",
		func(rows *sql.Rows, l *Like) error {
			return rows.Scan(&l.ID, &l.BlogID, &l.PostID)
		})
}

func (m *LikeModel) FindOne(ctx context.Context, filter LikeFilter) (*Like, error) {
	return first(m.Find(ctx, filter))
}

// Update always reports common.ErrRecordNotFound without touching the store.
func (m *LikeModel) Update(ctx context.Context, id string, patch Like) (*Like, error) {
	return nil, common.ErrRecordNotFound
}

func (m *LikeModel) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, m.conn, "likes", id)
}

func NewCommentModel(conn common.DBTX) *CommentModel {
	return &CommentModel{conn: conn}
}

func (m *CommentModel) WithConn(conn common.DBTX) *CommentModel {
	return &CommentModel{conn: conn}
}

func (m *CommentModel) Insert(ctx context.Context, c *Comment) (*Comment, error) {
	query := `
		INSERT INTO comments (id, content, post_id, blog_id)
		VALUES ($1, $2, $3, $4)`

	_, err := m.conn.ExecContext(ctx, query, c.ID, c.Content, c.PostID, c.BlogID)
	if err != nil {
		return nil, fmt.Errorf("could not insert comment: %w", err)
	}

	return m.FindOne(ctx, CommentFilter{ID: &c.ID})
}

func (m *CommentModel) Find(ctx context.Context, filter CommentFilter) ([]Comment, error) {
	return selectWhere(ctx, m.conn, "SELECT id, content, post_id, blog_id FROM comments", filter.fields(), commentFindFields, "id",
		func(rows *sql.Rows, c *Comment) error {
			return rows.Scan(&c.ID, &c.Content, &c.PostID, &c.BlogID)
		})
}

func (m *CommentModel) FindOne(ctx context.Context, filter CommentFilter) (*Comment, error) {
	return first(m.Find(ctx, filter))
}

// Update always reports common.ErrRecordNotFound without touching the store.
func (m *CommentModel) Update(ctx context.Context, id string, patch Comment) (*Comment, error) {
	return nil, common.ErrRecordNotFound
}

func (m *CommentModel) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, m.conn, "comments", id)
}

func NewReplyModel(conn common.DBTX) *ReplyModel {
	return &ReplyModel{conn: conn}
}

func (m *ReplyModel) WithConn(conn common.DBTX) *ReplyModel {
	return &ReplyModel{conn: conn}
}

func (m *ReplyModel) Insert(ctx context.Context, r *Reply) (*Reply, error) {
	query := `
		INSERT INTO replies (id, content, comment_id, blog_id, at_blog)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := m.conn.ExecContext(ctx, query, r.ID, r.Content, r.CommentID, r.BlogID, r.AtBlog)
	if err != nil {
		return nil, fmt.Errorf("could not insert reply: %w", err)
	}

	return m.FindOne(ctx, ReplyFilter{ID: &r.ID})
}

func (m *ReplyModel) Find(ctx context.Context, filter ReplyFilter) ([]Reply, error) {
	return selectWhere(ctx, m.conn, "SELECT id, content, comment_id, blog_id, at_blog FROM replies", filter.fields(), replyFindFields, "id",
		func(rows *sql.Rows, r *Reply) error {
			return rows.Scan(&r.ID, &r.Content, &r.CommentID, &r.BlogID, &r.AtBlog)
		})
}

func (m *ReplyModel) FindOne(ctx context.Context, filter ReplyFilter) (*Reply, error) {
	return first(m.Find(ctx, filter))
}

// Update always reports common.ErrRecordNotFound without touching the store.
func (m *ReplyModel) Update(ctx context.Context, id string, patch Reply) (*Reply, error) {
	return nil, common.ErrRecordNotFound
}

func (m *ReplyModel) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, m.conn, "replies", id)
}
