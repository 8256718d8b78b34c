package postservice

import (
	"context"
	"errors"

	"github.com/sushihentaime/multiblog/internal/common"
)

func authorize(ctx context.Context, owners BlogOwnership, blogID, userID string) error {
	ok, err := owners.UserOwnsBlog(ctx, blogID, userID)
	if err != nil {
		return err
	}

	if !ok {
		return common.ErrForbidden
	}

	return nil
}

func NewPostService(db common.DBTX, owners BlogOwnership) *PostService {
	return &PostService{m: NewPostModel(db), owners: owners}
}

// CreatePost publishes a post on a blog the user owns.
func (s *PostService) CreatePost(ctx context.Context, content, blogID, userID string) (*Post, error) {
	v := common.NewValidator()
	validateContent(v, content, maxPostLength)
	common.ValidateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := authorize(ctx, s.owners, blogID, userID); err != nil {
		return nil, err
	}

	return s.m.Insert(ctx, &Post{
		ID:      common.NewID(),
		BlogID:  blogID,
		Content: common.SanitizeMarkdown(content),
	})
}

func (s *PostService) GetPostsByBlog(ctx context.Context, blogID string) ([]Post, error) {
	return s.m.Find(ctx, PostFilter{BlogID: &blogID})
}

// GetPost returns the post only if it belongs to blogID.
func (s *PostService) GetPost(ctx context.Context, postID, blogID string) (*Post, error) {
	return s.m.FindOne(ctx, PostFilter{ID: &postID, BlogID: &blogID})
}

func (s *PostService) BlogOwnsPost(ctx context.Context, postID, blogID string) (bool, error) {
	_, err := s.GetPost(ctx, postID, blogID)
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

// DeletePost removes a post of a blog the user owns, with its likes and comments.
func (s *PostService) DeletePost(ctx context.Context, postID, blogID, userID string) (bool, error) {
	if err := authorize(ctx, s.owners, blogID, userID); err != nil {
		return false, err
	}

	post, err := s.GetPost(ctx, postID, blogID)
	if err != nil {
		return false, err
	}

	return s.m.Delete(ctx, post.ID)
}

func NewLikeService(db common.DBTX, owners BlogOwnership) *LikeService {
	return &LikeService{m: NewLikeModel(db), posts: NewPostModel(db), owners: owners}
}

// CreateLike makes blogID like the post. The user must own blogID; the post may
// belong to any blog.
func (s *LikeService) CreateLike(ctx context.Context, postID, blogID, userID string) (*Like, error) {
	v := common.NewValidator()
	common.ValidateID(v, postID, "post_id")
	common.ValidateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := authorize(ctx, s.owners, blogID, userID); err != nil {
		return nil, err
	}

	if _, err := s.posts.FindOne(ctx, PostFilter{ID: &postID}); err != nil {
		return nil, err
	}

	return s.m.Insert(ctx, &Like{
		ID:     common.NewID(),
		PostID: postID,
		BlogID: blogID,
	})
}

// DeleteLike withdraws one like of blogID on the post.
func (s *LikeService) DeleteLike(ctx context.Context, postID, blogID, userID string) (bool, error) {
	if err := authorize(ctx, s.owners, blogID, userID); err != nil {
		return false, err
	}

	like, err := s.m.FindOne(ctx, LikeFilter{PostID: &postID, BlogID: &blogID})
	if err != nil {
		return false, err
	}

	return s.m.Delete(ctx, like.ID)
}

func (s *LikeService) GetLikesByPost(ctx context.Context, postID string) ([]Like, error) {
	return s.m.Find(ctx, LikeFilter{PostID: &postID})
}

func NewCommentService(db common.DBTX, owners BlogOwnership) *CommentService {
	return &CommentService{m: NewCommentModel(db), posts: NewPostModel(db), owners: owners}
}

// CreateComment comments on a post as blogID, which the user must own.
func (s *CommentService) CreateComment(ctx context.Context, content, postID, blogID, userID string) (*Comment, error) {
	v := common.NewValidator()
	validateContent(v, content, maxCommentLength)
	common.ValidateID(v, postID, "post_id")
	common.ValidateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := authorize(ctx, s.owners, blogID, userID); err != nil {
		return nil, err
	}

	if _, err := s.posts.FindOne(ctx, PostFilter{ID: &postID}); err != nil {
		return nil, err
	}

	return s.m.Insert(ctx, &Comment{
		ID:      common.NewID(),
		PostID:  postID,
		BlogID:  blogID,
		Content: common.SanitizeMarkdown(content),
	})
}

func (s *CommentService) GetComment(ctx context.Context, commentID string) (*Comment, error) {
	return s.m.FindOne(ctx, CommentFilter{ID: &commentID})
}

func (s *CommentService) GetCommentsByPost(ctx context.Context, postID string) ([]Comment, error) {
	return s.m.Find(ctx, CommentFilter{PostID: &postID})
}

// DeleteComment removes a comment if the user owns the blog that wrote it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID string) (bool, error) {
	comment, err := s.GetComment(ctx, commentID)
	if err != nil {
		return false, err
	}

	if err := authorize(ctx, s.owners, comment.BlogID, userID); err != nil {
		return false, err
	}

	return s.m.Delete(ctx, comment.ID)
}

func NewReplyService(db common.DBTX, owners BlogOwnership) *ReplyService {
	return &ReplyService{m: NewReplyModel(db), comments: NewCommentModel(db), owners: owners}
}

// CreateReply answers a comment. The comment must have been written by blogID and
// the user must own blogID.
func (s *ReplyService) CreateReply(ctx context.Context, content, atBlog, commentID, blogID, userID string) (*Reply, error) {
	v := common.NewValidator()
	validateContent(v, content, maxCommentLength)
	validateAtBlog(v, atBlog)
	common.ValidateID(v, commentID, "comment_id")
	common.ValidateID(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment, err := s.comments.FindOne(ctx, CommentFilter{ID: &commentID})
	if err != nil {
		return nil, err
	}

	if comment.BlogID != blogID {
		return nil, common.ErrForbidden
	}

	if err := authorize(ctx, s.owners, blogID, userID); err != nil {
		return nil, err
	}

	return s.m.Insert(ctx, &Reply{
		ID:        common.NewID(),
		CommentID: commentID,
		BlogID:    blogID,
		AtBlog:    atBlog,
		Content:   common.SanitizeMarkdown(content),
	})
}

func (s *ReplyService) GetRepliesByComment(ctx context.Context, commentID string) ([]Reply, error) {
	return s.m.Find(ctx, ReplyFilter{CommentID: &commentID})
}
