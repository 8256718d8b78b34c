package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// users
	router.HandlerFunc(http.MethodPost, "/v1/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodGet, "/v1/users/:userID/blogs", app.getBlogsByUserHandler)

	// blogs
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.getBlogByTitleHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogID", app.getBlogHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/blogs/:blogID", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:blogID", app.requireAuthUser(app.deleteBlogHandler))

	// pages
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogID/pages", app.getBlogsPagesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:blogID/pages", app.requireAuthUser(app.createPageHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogID/pages/:title", app.getPageHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/blogs/:blogID/pages/:title", app.requireAuthUser(app.updatePageHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:blogID/pages/:title", app.requireAuthUser(app.deletePageHandler))

	// posts
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogID/posts", app.getPostsByBlogHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:blogID/posts", app.requireAuthUser(app.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:blogID/posts/:postID", app.getPostHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:blogID/posts/:postID", app.requireAuthUser(app.deletePostHandler))

	// likes, comments and replies
	router.HandlerFunc(http.MethodGet, "/v1/posts/:postID/likes", app.getLikesByPostHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:postID/likes", app.requireAuthUser(app.createLikeHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:postID/likes", app.requireAuthUser(app.deleteLikeHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:postID/comments", app.getCommentsByPostHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:postID/comments", app.requireAuthUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/comments/:commentID", app.requireAuthUser(app.deleteCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/comments/:commentID/replies", app.getRepliesByCommentHandler)
	router.HandlerFunc(http.MethodPost, "/v1/comments/:commentID/replies", app.requireAuthUser(app.createReplyHandler))

	return app.recoverPanic(app.logRequest(app.rateLimit(app.authenticate(router))))
}
