package main

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/multiblog/internal/common"
)

func TestHealthCheck(t *testing.T) {
	app := &application{config: testConfig(), logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/healthcheck")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
}

func TestHealthCheckPingsDatabase(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/healthcheck")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])

	require.NoError(t, db.Close())

	status, _, body = ts.get(t, "/v1/healthcheck")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "degraded", body["status"])
}

func TestRegisterUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	testCases := []struct {
		name           string
		input          any
		expectedStatus int
		expectedError  any
	}{
		{
			name:           "valid user",
			input:          registerUserRequest{Username: "alice", Email: "alice@example.com", Password: "Test_1234!"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate username",
			input:          registerUserRequest{Username: "alice", Email: "other@example.com", Password: "Test_1234!"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  map[string]any{"username": "this username is already taken"},
		},
		{
			name:           "weak password",
			input:          registerUserRequest{Username: "bob", Email: "bob@example.com", Password: "password"},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unknown field",
			input:          map[string]string{"username": "carol", "admin": "true"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `request body contains unknown field "admin"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/users", nil, tc.input)
			assert.Equal(t, tc.expectedStatus, status)

			if tc.expectedError != nil {
				assert.Equal(t, tc.expectedError, body["error"])
			}

			if status == http.StatusCreated {
				assert.NotEmpty(t, field(body, "user", "id"))
				assert.NotContains(t, body["user"], "password")
			}
		})
	}
}

func TestBlogHandlers(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	aliceID, alice := ts.registerUser(t, "alice")
	_, bob := ts.registerUser(t, "bob")

	status, _, _ := ts.post(t, "/v1/blogs", nil, createBlogRequest{Title: "My Blog"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, _, body := ts.post(t, "/v1/blogs", alice, createBlogRequest{Title: "My Blog"})
	require.Equal(t, http.StatusCreated, status)
	blogID := field(body, "blog", "id")
	assert.Equal(t, "My Blog", field(body, "blog", "title"))
	assert.Equal(t, aliceID, field(body, "blog", "user_id"))

	t.Run("duplicate title", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/blogs", bob, createBlogRequest{Title: "My Blog"})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, map[string]any{"title": "a blog with this title already exists"}, body["error"])
		assert.Equal(t, 1, common.CountRows(t, db, "blogs"))
	})

	t.Run("index page exists", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/blogs/"+blogID+"/pages/index")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, field(body, "page", "content"), "My Blog")
	})

	t.Run("lookups", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/blogs/"+blogID)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, blogID, field(body, "blog", "id"))

		status, _, body = ts.get(t, "/v1/blogs?title=My%20Blog")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, blogID, field(body, "blog", "id"))

		status, _, body = ts.get(t, "/v1/users/"+aliceID+"/blogs")
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, body["blogs"], 1)

		status, _, _ = ts.get(t, "/v1/blogs/"+common.NewID())
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("forbidden looks like not found", func(t *testing.T) {
		status, _, forbidden := ts.patch(t, "/v1/blogs/"+blogID, bob, map[string]string{"title": "Stolen"})
		assert.Equal(t, http.StatusNotFound, status)

		status, _, missing := ts.patch(t, "/v1/blogs/"+common.NewID(), bob, map[string]string{"title": "Stolen"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, missing, forbidden)

		status, _, _ = ts.delete(t, "/v1/blogs/"+blogID, bob)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("update", func(t *testing.T) {
		status, _, body := ts.patch(t, "/v1/blogs/"+blogID, alice, map[string]string{"stylesheet": "body { margin: 0; }"})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "body { margin: 0; }", field(body, "blog", "stylesheet"))

		status, _, _ = ts.patch(t, "/v1/blogs/"+blogID, alice, map[string]string{"user_id": common.NewID()})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("delete", func(t *testing.T) {
		status, _, _ := ts.delete(t, "/v1/blogs/"+blogID, alice)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, 0, common.CountRows(t, db, "blogs"))
		assert.Equal(t, 0, common.CountRows(t, db, "pages"))
	})
}

func TestPageHandlers(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := ts.registerUser(t, "alice")
	_, bob := ts.registerUser(t, "bob")

	_, _, body := ts.post(t, "/v1/blogs", alice, createBlogRequest{Title: "My Blog"})
	blogID := field(body, "blog", "id")
	pages := "/v1/blogs/" + blogID + "/pages"

	status, _, body := ts.post(t, pages, alice, createPageRequest{Title: "about", Content: "hi<script>x</script>"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "hi", field(body, "page", "content"))

	status, _, _ = ts.post(t, pages, bob, createPageRequest{Title: "contact", Content: "hi"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.post(t, pages, alice, createPageRequest{Title: "index", Content: "hi"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _, _ = ts.patch(t, pages+"/index", alice, map[string]string{"title": "home"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _, body = ts.patch(t, pages+"/about", alice, map[string]string{"title": "about-me"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "about-me", field(body, "page", "title"))

	status, _, _ = ts.delete(t, pages+"/index", alice)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _, _ = ts.delete(t, pages+"/about-me", alice)
	assert.Equal(t, http.StatusOK, status)

	status, _, body = ts.get(t, pages)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["pages"], 1)
}

func TestPostHandlers(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := ts.registerUser(t, "alice")
	_, bob := ts.registerUser(t, "bob")

	_, _, body := ts.post(t, "/v1/blogs", alice, createBlogRequest{Title: "My Blog"})
	aliceBlog := field(body, "blog", "id")
	_, _, body = ts.post(t, "/v1/blogs", bob, createBlogRequest{Title: "Bobs Blog"})
	bobBlog := field(body, "blog", "id")

	status, _, body := ts.post(t, "/v1/blogs/"+aliceBlog+"/posts", alice, createPostRequest{Content: "hello"})
	require.Equal(t, http.StatusCreated, status)
	postID := field(body, "post", "id")

	status, _, _ = ts.get(t, "/v1/blogs/"+aliceBlog+"/posts/"+postID)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.get(t, "/v1/blogs/"+bobBlog+"/posts/"+postID)
	assert.Equal(t, http.StatusNotFound, status)

	t.Run("likes", func(t *testing.T) {
		// bob cannot like as alice's blog
		status, _, _ := ts.post(t, "/v1/posts/"+postID+"/likes", bob, likeRequest{BlogID: aliceBlog})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, 0, common.CountRows(t, db, "likes"))

		status, _, _ = ts.post(t, "/v1/posts/"+postID+"/likes", bob, likeRequest{BlogID: bobBlog})
		assert.Equal(t, http.StatusCreated, status)

		status, _, body := ts.get(t, "/v1/posts/"+postID+"/likes")
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, body["likes"], 1)

		status, _, _ = ts.delete(t, "/v1/posts/"+postID+"/likes?blog_id="+bobBlog, bob)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, 0, common.CountRows(t, db, "likes"))
	})

	t.Run("comments and replies", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/posts/"+postID+"/comments", bob, createCommentRequest{BlogID: bobBlog, Content: "nice"})
		require.Equal(t, http.StatusCreated, status)
		commentID := field(body, "comment", "id")

		status, _, _ = ts.post(t, "/v1/comments/"+commentID+"/replies", alice, createReplyRequest{BlogID: aliceBlog, AtBlog: "Bobs Blog", Content: "thanks"})
		assert.Equal(t, http.StatusNotFound, status)

		status, _, _ = ts.post(t, "/v1/comments/"+commentID+"/replies", bob, createReplyRequest{BlogID: bobBlog, AtBlog: "My Blog", Content: "thanks"})
		assert.Equal(t, http.StatusCreated, status)

		status, _, body = ts.get(t, "/v1/comments/"+commentID+"/replies")
		assert.Equal(t, http.StatusOK, status)
		assert.Len(t, body["replies"], 1)

		status, _, _ = ts.delete(t, "/v1/comments/"+commentID, alice)
		assert.Equal(t, http.StatusNotFound, status)

		status, _, _ = ts.delete(t, "/v1/comments/"+commentID, bob)
		assert.Equal(t, http.StatusOK, status)
	})

	status, _, _ = ts.delete(t, "/v1/blogs/"+aliceBlog+"/posts/"+postID, alice)
	assert.Equal(t, http.StatusOK, status)

	status, _, body = ts.get(t, "/v1/blogs/"+aliceBlog+"/posts")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["posts"])
}
