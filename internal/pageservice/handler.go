package pageservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/sushihentaime/multiblog/internal/common"
)

// ErrIndexPage is returned for any attempt to create, rename or delete an index page
// outside blog creation.
var ErrIndexPage = errors.New("the index page cannot be created, renamed or deleted")

// DefaultIndexPage is the content a new blog's index page starts with.
func DefaultIndexPage(blogTitle string) string {
	return fmt.Sprintf("\n# Welcome to %s\n[posts (minimal)]\n", blogTitle)
}

func NewPageService(db common.DBTX, owners BlogOwnership) *PageService {
	return &PageService{m: NewPageModel(db), owners: owners}
}

func (s *PageService) authorize(ctx context.Context, blogID, userID string) error {
	ok, err := s.owners.UserOwnsBlog(ctx, blogID, userID)
	if err != nil {
		return err
	}

	if !ok {
		return common.ErrForbidden
	}

	return nil
}

// CreatePage adds a page to a blog the user owns. Index pages are only created
// together with their blog.
func (s *PageService) CreatePage(ctx context.Context, title, content, blogID, userID string) (*Page, error) {
	v := common.NewValidator()
	validatePageTitle(v, title)
	validateContent(v, content)
	common.ValidateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if title == IndexTitle {
		return nil, ErrIndexPage
	}

	if err := s.authorize(ctx, blogID, userID); err != nil {
		return nil, err
	}

	return s.m.Insert(ctx, &Page{
		ID:      common.NewID(),
		BlogID:  blogID,
		Title:   title,
		Content: common.SanitizeMarkdown(content),
	})
}

// GetPage returns the page of a blog by title. Reads are not ownership checked.
func (s *PageService) GetPage(ctx context.Context, title, blogID string) (*Page, error) {
	return s.m.FindOne(ctx, PageFilter{Title: &title, BlogID: &blogID})
}

// GetBlogsPages returns every page of a blog, an empty slice when there are none.
func (s *PageService) GetBlogsPages(ctx context.Context, blogID string) ([]Page, error) {
	return s.m.Find(ctx, PageFilter{BlogID: &blogID})
}

// UpdatePage changes the title and/or content of a page. The index page keeps its
// title and no page can take the index title.
func (s *PageService) UpdatePage(ctx context.Context, title, blogID, userID string, patch PagePatch) (*Page, error) {
	v := common.NewValidator()
	if patch.Title != nil {
		validatePageTitle(v, *patch.Title)
	}
	if patch.Content != nil {
		validateContent(v, *patch.Content)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	renaming := patch.Title != nil && *patch.Title != title
	if renaming && (title == IndexTitle || *patch.Title == IndexTitle) {
		return nil, ErrIndexPage
	}

	if err := s.authorize(ctx, blogID, userID); err != nil {
		return nil, err
	}

	page, err := s.GetPage(ctx, title, blogID)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		patch.Content = common.Ptr(common.SanitizeMarkdown(*patch.Content))
	}

	return s.m.Update(ctx, page.ID, patch)
}

// DeletePage removes a page from a blog the user owns. It always reports false for
// the index page, whoever asks.
func (s *PageService) DeletePage(ctx context.Context, title, blogID, userID string) (bool, error) {
	if title == IndexTitle {
		return false, ErrIndexPage
	}

	if err := s.authorize(ctx, blogID, userID); err != nil {
		return false, err
	}

	page, err := s.GetPage(ctx, title, blogID)
	if err != nil {
		return false, err
	}

	return s.m.Delete(ctx, page.ID)
}
