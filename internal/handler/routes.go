package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/inkwell/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, users *service.UserService, posts *service.PostService) {
	authH := NewAuthHandler(auth)
	userH := NewUserHandler(users)
	postH := NewPostHandler(posts)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /auth/register", authH.HandleRegister)
	mux.HandleFunc("POST /auth/login", authH.HandleLogin)
	mux.HandleFunc("POST /auth/logout", authH.HandleLogout)

	mux.Handle("GET /users/profile", protected(userH.HandleProfile))
	mux.Handle("PUT /users/profile", protected(userH.HandleUpdateProfile))
	mux.HandleFunc("GET /users/{id}/posts", postH.HandleListByUser)

	mux.Handle("POST /posts", protected(postH.HandleCreate))
	mux.HandleFunc("GET /posts", postH.HandleList)
	mux.HandleFunc("GET /posts/{id}", postH.HandleGet)
	mux.Handle("PUT /posts/{id}", protected(postH.HandleUpdate))
	mux.Handle("DELETE /posts/{id}", protected(postH.HandleDelete))
}

// Wrap applies the standard middleware chain around h.
func Wrap(logger *slog.Logger, h http.Handler) http.Handler {
	return RequestID(Logging(logger, Recover(logger, SecurityHeaders(h))))
}
