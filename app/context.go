package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/multiblog/internal/userservice"
)

type contextKey struct{ name string }

var userContextKey = &contextKey{"user"}

// withUser attaches the authenticated user to the request.
func (app *application) withUser(r *http.Request, user *userservice.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

// getUserContext returns nil for anonymous requests.
func (app *application) getUserContext(r *http.Request) *userservice.User {
	user, _ := r.Context().Value(userContextKey).(*userservice.User)
	return user
}
