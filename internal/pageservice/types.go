package pageservice

import (
	"context"

	"github.com/sushihentaime/multiblog/internal/common"
)

// IndexTitle is the title of the page every blog is created with.
const IndexTitle = "index"

type Page struct {
	ID     string `json:"id"`
	BlogID string `json:"blog_id"`
	Title  string `json:"title"`
	// Content is stored in Markdown format.
	Content string `json:"content"`
}

type PageFilter struct {
	ID     *string
	BlogID *string
	Title  *string
}

func (f PageFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("blog_id", f.BlogID).
		With("title", f.Title)
}

type PagePatch struct {
	Title   *string
	Content *string
}

func (p PagePatch) fields() common.Fields {
	return common.Fields{}.
		With("title", p.Title).
		With("content", p.Content)
}

var (
	pageFindFields   = []string{"id", "blog_id", "title"}
	pageUpdateFields = []string{"content", "title"}
)

type PageModel struct {
	conn common.DBTX
}

// BlogOwnership answers whether a user owns a blog. The blog service implements it.
type BlogOwnership interface {
	UserOwnsBlog(ctx context.Context, blogID, userID string) (bool, error)
}

type PageService struct {
	m      *PageModel
	owners BlogOwnership
}
