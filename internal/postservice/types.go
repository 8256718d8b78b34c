package postservice

import (
	"context"

	"github.com/sushihentaime/multiblog/internal/common"
)

// Posts, likes, comments and replies are immutable once written.

type Post struct {
	ID     string `json:"id"`
	BlogID string `json:"blog_id"`
	// Content is stored in Markdown format.
	Content string `json:"content"`
}

type PostFilter struct {
	ID     *string
	BlogID *string
}

func (f PostFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("blog_id", f.BlogID)
}

// Like records that the blog BlogID likes the post PostID.
type Like struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
	BlogID string `json:"blog_id"`
}

type LikeFilter struct {
	ID     *string
	PostID *string
	BlogID *string
}

func (f LikeFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("post_id", f.PostID).
		With("blog_id", f.BlogID)
}

type Comment struct {
	ID      string `json:"id"`
	PostID  string `json:"post_id"`
	BlogID  string `json:"blog_id"`
	Content string `json:"content"`
}

type CommentFilter struct {
	ID     *string
	PostID *string
	BlogID *string
}

func (f CommentFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("post_id", f.PostID).
		With("blog_id", f.BlogID)
}

type Reply struct {
	ID        string `json:"id"`
	CommentID string `json:"comment_id"`
	BlogID    string `json:"blog_id"`
	// AtBlog labels the blog the reply is addressed to.
	AtBlog  string `json:"at_blog"`
	Content string `json:"content"`
}

type ReplyFilter struct {
	ID        *string
	CommentID *string
	BlogID    *string
	AtBlog    *string
}

func (f ReplyFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("comment_id", f.CommentID).
		With("blog_id", f.BlogID).
		With("at_blog", f.AtBlog)
}

var (
	postFindFields    = []string{"id", "blog_id"}
	likeFindFields    = []string{"id", "post_id", "blog_id"}
	commentFindFields = []string{"id", "post_id", "blog_id"}
	replyFindFields   = []string{"id", "comment_id", "blog_id", "at_blog"}
)

type PostModel struct {
	conn common.DBTX
}

type LikeModel struct {
	conn common.DBTX
}

type CommentModel struct {
	conn common.DBTX
}

type ReplyModel struct {
	conn common.DBTX
}

// BlogOwnership answers whether a user owns a blog. The blog service implements it.
type BlogOwnership interface {
	UserOwnsBlog(ctx context.Context, blogID, userID string) (bool, error)
}

type PostService struct {
	m      *PostModel
	owners BlogOwnership
}

type LikeService struct {
	m      *LikeModel
	posts  *PostModel
	owners BlogOwnership
}

type CommentService struct {
	m      *CommentModel
	posts  *PostModel
	owners BlogOwnership
}

type ReplyService struct {
	m        *ReplyModel
	comments *CommentModel
	owners   BlogOwnership
}
