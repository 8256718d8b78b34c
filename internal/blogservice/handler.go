package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sushihentaime/multiblog/internal/common"
	"github.com/sushihentaime/multiblog/internal/pageservice"
	"github.com/sushihentaime/multiblog/internal/userservice"
)

var (
	ErrDuplicateTitle      = errors.New("a blog with this title already exists")
	ErrBlogNotCreated      = errors.New("blog not created")
	ErrIndexPageNotCreated = errors.New("index page not created")
)

// NewBlogService wires the blog service to the shared pool. mb may be nil, in which
// case no blog.created events are published.
func NewBlogService(db common.Pool, users UserFinder, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	return &BlogService{
		db:     db,
		m:      newBlogModel(db),
		pages:  pageservice.NewPageModel(db),
		users:  users,
		mb:     mb,
		logger: logger,
	}
}

// SetTxTimeout bounds how long the blog creation transaction may hold its connection.
func (s *BlogService) SetTxTimeout(d time.Duration) {
	s.txTimeout = d
}

// CreateBlog creates a blog together with its index page, atomically. The user must
// exist and the title must be unused, otherwise nothing is written.
func (s *BlogService) CreateBlog(ctx context.Context, title, userID string) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, title)
	v.Check(userID != "", "user_id", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.BlogExists(ctx, title)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrDuplicateTitle
	}

	blog, err := s.createBlogTx(ctx, title, userID)
	if err != nil {
		return nil, err
	}

	s.publishBlogCreated(ctx, blog, user)

	return blog, nil
}

// createBlogTx runs both inserts on one dedicated connection. The connection is
// returned to the pool and an uncommitted transaction is rolled back on every exit
// path, panics included.
func (s *BlogService) createBlogTx(ctx context.Context, title, userID string) (blog *Blog, err error) {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("could not roll back transaction: %w", rbErr))
		}
	}()

	blog, err = s.m.WithConn(tx).Insert(ctx, &Blog{
		ID:     common.NewID(),
		Title:  title,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrBlogNotCreated
		default:
			return nil, err
		}
	}

	_, err = s.pages.WithConn(tx).Insert(ctx, &pageservice.Page{
		ID:      common.NewID(),
		BlogID:  blog.ID,
		Title:   pageservice.IndexTitle,
		Content: pageservice.DefaultIndexPage(title),
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrIndexPageNotCreated
		default:
			return nil, fmt.Errorf("could not create index page: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit blog creation: %w", err)
	}
	committed = true

	return blog, nil
}

func (s *BlogService) publishBlogCreated(ctx context.Context, blog *Blog, user *userservice.User) {
	if s.mb == nil {
		return
	}

	msg, err := json.Marshal(common.BlogCreatedEvent{
		BlogID:   blog.ID,
		Title:    blog.Title,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		s.logger.Error("could not encode blog.created event", slog.String("blog_id", blog.ID), slog.String("error", err.Error()))
		return
	}

	// the blog is committed at this point, a lost event only costs the welcome mail
	err = s.mb.Publish(ctx, msg, common.BlogCreatedKey, common.BlogExchange)
	if err != nil {
		s.logger.Error("could not publish blog.created event", slog.String("blog_id", blog.ID), slog.String("error", err.Error()))
	}
}

// GetBlog returns the blog only if userID owns it.
func (s *BlogService) GetBlog(ctx context.Context, blogID, userID string) (*Blog, error) {
	return s.m.FindOne(ctx, BlogFilter{ID: &blogID, UserID: &userID})
}

func (s *BlogService) GetBlogByID(ctx context.Context, blogID string) (*Blog, error) {
	return s.m.FindOne(ctx, BlogFilter{ID: &blogID})
}

func (s *BlogService) GetBlogByTitle(ctx context.Context, title string) (*Blog, error) {
	return s.m.FindOne(ctx, BlogFilter{Title: &title})
}

// GetBlogsByUser returns every blog of a user, an empty slice when there are none.
func (s *BlogService) GetBlogsByUser(ctx context.Context, userID string) ([]Blog, error) {
	return s.m.Find(ctx, BlogFilter{UserID: &userID})
}

func (s *BlogService) BlogExists(ctx context.Context, title string) (bool, error) {
	return found(s.GetBlogByTitle(ctx, title))
}

func (s *BlogService) UserOwnsBlog(ctx context.Context, blogID, userID string) (bool, error) {
	return found(s.GetBlog(ctx, blogID, userID))
}

func (s *BlogService) UserOwnsBlogTitle(ctx context.Context, title, userID string) (bool, error) {
	return found(s.m.FindOne(ctx, BlogFilter{Title: &title, UserID: &userID}))
}

// UpdateBlog changes the title and/or stylesheet of a blog the user owns.
func (s *BlogService) UpdateBlog(ctx context.Context, blogID, userID string, patch BlogPatch) (*Blog, error) {
	v := common.NewValidator()
	if patch.Title != nil {
		validateTitle(v, *patch.Title)
	}
	if patch.Stylesheet != nil {
		validateStylesheet(v, *patch.Stylesheet)
	}
	v.Check(patch.Title != nil || patch.Stylesheet != nil, "blog", "nothing to update")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.GetBlog(ctx, blogID, userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, common.ErrForbidden
		default:
			return nil, err
		}
	}

	if patch.Title != nil && *patch.Title != blog.Title {
		exists, err := s.BlogExists(ctx, *patch.Title)
		if err != nil {
			return nil, err
		}

		if exists {
			return nil, ErrDuplicateTitle
		}
	}

	return s.m.Update(ctx, blogID, patch)
}

// DeleteBlog removes a blog the user owns. Its pages, posts and their interactions
// go with it through the schema's cascading foreign keys.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID string) (bool, error) {
	owns, err := s.UserOwnsBlog(ctx, blogID, userID)
	if err != nil {
		return false, err
	}

	if !owns {
		return false, common.ErrForbidden
	}

	return s.m.Delete(ctx, blogID)
}

// found turns a lookup result into an existence flag.
func found(_ *Blog, err error) (bool, error) {
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}
