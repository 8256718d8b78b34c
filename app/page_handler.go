package main

import (
	"net/http"

	"github.com/sushihentaime/multiblog/internal/pageservice"
)

type createPageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (app *application) createPageHandler(w http.ResponseWriter, r *http.Request) {
	var input createPageRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	page, err := app.pageService.CreatePage(r.Context(), input.Title, input.Content, app.readParam(r, "blogID"), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"page": page}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPageHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.pageService.GetPage(r.Context(), app.readParam(r, "title"), app.readParam(r, "blogID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"page": page}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogsPagesHandler(w http.ResponseWriter, r *http.Request) {
	pages, err := app.pageService.GetBlogsPages(r.Context(), app.readParam(r, "blogID"))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"pages": pages}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type updatePageRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (app *application) updatePageHandler(w http.ResponseWriter, r *http.Request) {
	var input updatePageRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)
	patch := pageservice.PagePatch{Title: input.Title, Content: input.Content}

	page, err := app.pageService.UpdatePage(r.Context(), app.readParam(r, "title"), app.readParam(r, "blogID"), user.ID, patch)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"page": page}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePageHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	ok, err := app.pageService.DeletePage(r.Context(), app.readParam(r, "title"), app.readParam(r, "blogID"), user.ID)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	if !ok {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "page successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
