package main

import "net/http"

type createPostRequest struct {
	Content string `json:"content"`
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input createPostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	post, err := app.postService.CreatePost(r.Context(), input.Content, app.readParam(r, "blogID"), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := app.postService.GetPost(r.Context(), app.readParam(r, "postID"), app.readParam(r, "blogID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPostsByBlogHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.GetPostsByBlog(r.Context(), app.readParam(r, "blogID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	ok, err := app.postService.DeletePost(r.Context(), app.readParam(r, "postID"), app.readParam(r, "blogID"), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if !ok {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "post successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// likeRequest names the blog the like is given as.
type likeRequest struct {
	BlogID string `json:"blog_id"`
}

func (app *application) createLikeHandler(w http.ResponseWriter, r *http.Request) {
	var input likeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	like, err := app.likeService.CreateLike(r.Context(), app.readParam(r, "postID"), input.BlogID, user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"like": like}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteLikeHandler(w http.ResponseWriter, r *http.Request) {
	blogID := r.URL.Query().Get("blog_id")
	if blogID == "" {
		app.failedValidationErrorResponse(w, r, map[string]string{"blog_id": "must be provided"})
		return
	}

	user := app.getUserContext(r)

	ok, err := app.likeService.DeleteLike(r.Context(), app.readParam(r, "postID"), blogID, user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if !ok {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "like successfully removed"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getLikesByPostHandler(w http.ResponseWriter, r *http.Request) {
	likes, err := app.likeService.GetLikesByPost(r.Context(), app.readParam(r, "postID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"likes": likes}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createCommentRequest struct {
	BlogID  string `json:"blog_id"`
	Content string `json:"content"`
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	var input createCommentRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	comment, err := app.commentService.CreateComment(r.Context(), input.Content, app.readParam(r, "postID"), input.BlogID, user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getCommentsByPostHandler(w http.ResponseWriter, r *http.Request) {
	comments, err := app.commentService.GetCommentsByPost(r.Context(), app.readParam(r, "postID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	ok, err := app.commentService.DeleteComment(r.Context(), app.readParam(r, "commentID"), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if !ok {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "comment successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createReplyRequest struct {
	BlogID  string `json:"blog_id"`
	AtBlog  string `json:"at_blog"`
	Content string `json:"content"`
}

func (app *application) createReplyHandler(w http.ResponseWriter, r *http.Request) {
	var input createReplyRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	reply, err := app.replyService.CreateReply(r.Context(), input.Content, input.AtBlog, app.readParam(r, "commentID"), input.BlogID, user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"reply": reply}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getRepliesByCommentHandler(w http.ResponseWriter, r *http.Request) {
	replies, err := app.replyService.GetRepliesByComment(r.Context(), app.readParam(r, "commentID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"replies": replies}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
