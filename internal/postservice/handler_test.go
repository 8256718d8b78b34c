package postservice

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/multiblog/internal/blogservice"
	"github.com/sushihentaime/multiblog/internal/common"
	"github.com/sushihentaime/multiblog/internal/pageservice"
	"github.com/sushihentaime/multiblog/internal/userservice"
)

type testEnv struct {
	db       *sql.DB
	blogs    *blogservice.BlogService
	posts    *PostService
	likes    *LikeService
	comments *CommentService
	replies  *ReplyService

	alice, bob         string
	aliceBlog, bobBlog *blogservice.Blog
}

func setupTestEnvironment(t *testing.T) *testEnv {
	db := common.TestDB("file://../../migrations", t)
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blogs := blogservice.NewBlogService(db, userservice.NewUserService(db), nil, logger)

	env := &testEnv{
		db:       db,
		blogs:    blogs,
		posts:    NewPostService(db, blogs),
		likes:    NewLikeService(db, blogs),
		comments: NewCommentService(db, blogs),
		replies:  NewReplyService(db, blogs),
	}

	var err error
	env.alice, err = common.InsertTestUser(db, "alice")
	require.NoError(t, err)
	env.bob, err = common.InsertTestUser(db, "bob")
	require.NoError(t, err)

	env.aliceBlog, err = blogs.CreateBlog(ctx, "My Blog", env.alice)
	require.NoError(t, err)
	env.bobBlog, err = blogs.CreateBlog(ctx, "Bobs Blog", env.bob)
	require.NoError(t, err)

	return env
}

func TestBlogScenario(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	assert.Equal(t, "My Blog", env.aliceBlog.Title)
	assert.Equal(t, env.alice, env.aliceBlog.UserID)

	index, err := pageservice.NewPageService(env.db, env.blogs).GetPage(ctx, pageservice.IndexTitle, env.aliceBlog.ID)
	require.NoError(t, err)
	assert.Contains(t, index.Content, "My Blog")

	post, err := env.posts.CreatePost(ctx, "hello", env.aliceBlog.ID, env.alice)
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, env.aliceBlog.ID, post.BlogID)

	like, err := env.likes.CreateLike(ctx, post.ID, env.aliceBlog.ID, env.bob)
	assert.Nil(t, like)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Equal(t, 0, common.CountRows(t, env.db, "likes"))
}

func TestCreatePost(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	testCases := []struct {
		name        string
		content     string
		blogID      string
		userID      string
		expectedErr error
	}{
		{
			name:    "owner",
			content: "hello<script>alert(1)</script>",
			blogID:  env.aliceBlog.ID,
			userID:  env.alice,
		},
		{
			name:        "not the owner",
			content:     "hello",
			blogID:      env.aliceBlog.ID,
			userID:      env.bob,
			expectedErr: common.ErrForbidden,
		},
		{
			name:        "unknown blog",
			content:     "hello",
			blogID:      common.NewID(),
			userID:      env.alice,
			expectedErr: common.ErrForbidden,
		},
		{
			name:        "empty content",
			content:     "",
			blogID:      env.aliceBlog.ID,
			userID:      env.alice,
			expectedErr: common.ValidationError{Errors: map[string]string{"content": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			post, err := env.posts.CreatePost(ctx, tc.content, tc.blogID, tc.userID)
			if tc.expectedErr != nil {
				assert.Nil(t, post)
				assert.Equal(t, tc.expectedErr, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "hello", post.Content)
		})
	}

	assert.Equal(t, 1, common.CountRows(t, env.db, "posts"))
}

func TestPostLookupsAndDelete(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	p1, err := env.posts.CreatePost(ctx, "first", env.aliceBlog.ID, env.alice)
	require.NoError(t, err)
	p2, err := env.posts.CreatePost(ctx, "second", env.aliceBlog.ID, env.alice)
	require.NoError(t, err)

	posts, err := env.posts.GetPostsByBlog(ctx, env.aliceBlog.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Post{*p1, *p2}, posts)

	posts, err = env.posts.GetPostsByBlog(ctx, env.bobBlog.ID)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	ok, err := env.posts.BlogOwnsPost(ctx, p1.ID, env.aliceBlog.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.posts.BlogOwnsPost(ctx, p1.ID, env.bobBlog.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.posts.GetPost(ctx, p1.ID, env.bobBlog.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	ok, err = env.posts.DeletePost(ctx, p1.ID, env.aliceBlog.ID, env.bob)
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrForbidden)

	ok, err = env.posts.DeletePost(ctx, p1.ID, env.bobBlog.ID, env.bob)
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	ok, err = env.posts.DeletePost(ctx, p1.ID, env.aliceBlog.ID, env.alice)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, common.CountRows(t, env.db, "posts"))
}

func TestLikes(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, "likeable", env.aliceBlog.ID, env.alice)
	require.NoError(t, err)

	like, err := env.likes.CreateLike(ctx, post.ID, env.bobBlog.ID, env.bob)
	require.NoError(t, err)
	assert.Equal(t, post.ID, like.PostID)
	assert.Equal(t, env.bobBlog.ID, like.BlogID)

	// likes are not unique per blog and post
	_, err = env.likes.CreateLike(ctx, post.ID, env.bobBlog.ID, env.bob)
	require.NoError(t, err)

	_, err = env.likes.CreateLike(ctx, common.NewID(), env.bobBlog.ID, env.bob)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	likes, err := env.likes.GetLikesByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 2)

	ok, err := env.likes.DeleteLike(ctx, post.ID, env.bobBlog.ID, env.alice)
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrForbidden)

	ok, err = env.likes.DeleteLike(ctx, post.ID, env.bobBlog.ID, env.bob)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = env.likes.DeleteLike(ctx, post.ID, env.aliceBlog.ID, env.alice)
	assert.False(t, ok)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	assert.Equal(t, 1, common.CountRows(t, env.db, "likes"))
}

func TestCommentsAndReplies(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, "discuss", env.aliceBlog.ID, env.alice)
	require.NoError(t, err)

	_, err = env.comments.CreateComment(ctx, "nice", post.ID, env.bobBlog.ID, env.alice)
	assert.ErrorIs(t, err, common.ErrForbidden)

	comment, err := env.comments.CreateComment(ctx, "nice<script>x</script>", post.ID, env.bobBlog.ID, env.bob)
	require.NoError(t, err)
	assert.Equal(t, "nice", comment.Content)

	comments, err := env.comments.GetCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []Comment{*comment}, comments)

	t.Run("reply", func(t *testing.T) {
		testCases := []struct {
			name        string
			commentID   string
			blogID      string
			userID      string
			expectedErr error
		}{
			{
				name:        "unknown comment",
				commentID:   common.NewID(),
				blogID:      env.bobBlog.ID,
				userID:      env.bob,
				expectedErr: common.ErrRecordNotFound,
			},
			{
				name:        "comment of another blog",
				commentID:   comment.ID,
				blogID:      env.aliceBlog.ID,
				userID:      env.alice,
				expectedErr: common.ErrForbidden,
			},
			{
				name:        "not the owner",
				commentID:   comment.ID,
				blogID:      env.bobBlog.ID,
				userID:      env.alice,
				expectedErr: common.ErrForbidden,
			},
			{
				name:      "owner",
				commentID: comment.ID,
				blogID:    env.bobBlog.ID,
				userID:    env.bob,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				reply, err := env.replies.CreateReply(ctx, "thanks", "My Blog", tc.commentID, tc.blogID, tc.userID)
				if tc.expectedErr != nil {
					assert.Nil(t, reply)
					assert.ErrorIs(t, err, tc.expectedErr)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, "My Blog", reply.AtBlog)
				assert.Equal(t, comment.ID, reply.CommentID)
			})
		}

		replies, err := env.replies.GetRepliesByComment(ctx, comment.ID)
		require.NoError(t, err)
		assert.Len(t, replies, 1)

		atBlog := "My Blog"
		addressed, err := NewReplyModel(env.db).Find(ctx, ReplyFilter{AtBlog: &atBlog})
		require.NoError(t, err)
		assert.Equal(t, replies, addressed)
	})

	t.Run("delete comment", func(t *testing.T) {
		ok, err := env.comments.DeleteComment(ctx, comment.ID, env.alice)
		assert.False(t, ok)
		assert.ErrorIs(t, err, common.ErrForbidden)

		ok, err = env.comments.DeleteComment(ctx, comment.ID, env.bob)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, 0, common.CountRows(t, env.db, "comments"))
		assert.Equal(t, 0, common.CountRows(t, env.db, "replies"))
	})
}

func TestDeleteBlogCascades(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	post, err := env.posts.CreatePost(ctx, "doomed", env.aliceBlog.ID, env.alice)
	require.NoError(t, err)
	_, err = env.likes.CreateLike(ctx, post.ID, env.bobBlog.ID, env.bob)
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, "rip", post.ID, env.bobBlog.ID, env.bob)
	require.NoError(t, err)

	ok, err := env.blogs.DeleteBlog(ctx, env.aliceBlog.ID, env.alice)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 0, common.CountRows(t, env.db, "posts"))
	assert.Equal(t, 0, common.CountRows(t, env.db, "likes"))
	assert.Equal(t, 0, common.CountRows(t, env.db, "comments"))
	assert.Equal(t, 1, common.CountRows(t, env.db, "pages"))
}

func TestImmutableUpdateNeverWrites(t *testing.T) {
	ctx := context.Background()
	id := common.NewID()

	// a nil connection panics on any statement
	post, err := NewPostModel(nil).Update(ctx, id, Post{Content: "edited"})
	assert.Nil(t, post)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	like, err := NewLikeModel(nil).Update(ctx, id, Like{BlogID: id})
	assert.Nil(t, like)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	comment, err := NewCommentModel(nil).Update(ctx, id, Comment{Content: "edited"})
	assert.Nil(t, comment)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)

	reply, err := NewReplyModel(nil).Update(ctx, id, Reply{Content: "edited"})
	assert.Nil(t, reply)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestPostModelAllowList(t *testing.T) {
	db := common.TestDB("file://../../migrations", t)

	posts, err := NewPostModel(db).Find(context.Background(), PostFilter{})
	assert.Nil(t, posts)
	assert.ErrorIs(t, err, common.ErrMalformedQuery)
}
