package blogservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/sushihentaime/multiblog/internal/common"
	"github.com/sushihentaime/multiblog/internal/pageservice"
	"github.com/sushihentaime/multiblog/internal/userservice"
)

type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	UserID string `json:"user_id"`
	// Stylesheet is optional CSS applied to every page of the blog.
	Stylesheet *string `json:"stylesheet,omitempty"`
}

type BlogFilter struct {
	ID         *string
	Title      *string
	UserID     *string
	Stylesheet *string
}

func (f BlogFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("title", f.Title).
		With("user_id", f.UserID).
		With("stylesheet", f.Stylesheet)
}

type BlogPatch struct {
	Title      *string `json:"title"`
	Stylesheet *string `json:"stylesheet"`
}

func (p BlogPatch) fields() common.Fields {
	return common.Fields{}.
		With("title", p.Title).
		With("stylesheet", p.Stylesheet)
}

var (
	blogFindFields   = []string{"id", "user_id", "title"}
	blogUpdateFields = []string{"title", "stylesheet"}
)

type BlogModel struct {
	conn common.DBTX
}

// UserFinder looks up the acting user. The user service implements it.
type UserFinder interface {
	GetUser(ctx context.Context, id string) (*userservice.User, error)
}

type BlogService struct {
	db     common.Pool
	m      *BlogModel
	pages  *pageservice.PageModel
	users  UserFinder
	mb     common.MessageProducer
	logger *slog.Logger

	// txTimeout bounds the blog creation transaction, zero means no bound.
	txTimeout time.Duration
}
