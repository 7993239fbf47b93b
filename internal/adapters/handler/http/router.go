package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rjoohappeh/forum-backend/internal/adapters/metrics"
	"github.com/rjoohappeh/forum-backend/internal/core/ports"
)

type RouterDeps struct {
	AuthHandler *AuthHandler
	UserHandler *UserHandler
	PostHandler *PostHandler
	TokenIssuer ports.TokenIssuer
	Metrics     *metrics.Collector
}

func NewHandler(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(StatusMetrics(deps.Metrics))

	requireAuth := BearerAuth(deps.TokenIssuer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", deps.AuthHandler.Signup)
		r.Post("/signin", deps.AuthHandler.Signin)
		r.Post("/refresh", deps.AuthHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Patch("/activate", deps.AuthHandler.Activate)
			r.Patch("/deactivate", deps.AuthHandler.Deactivate)
			r.Post("/logout", deps.AuthHandler.Logout)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/{id}", deps.UserHandler.GetByID)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", deps.PostHandler.List)
		r.Get("/user/{displayName}", deps.PostHandler.ListByDisplayName)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", deps.PostHandler.Create)
			r.Patch("/", deps.PostHandler.Update)
			r.Delete("/{id}", deps.PostHandler.Delete)
		})
	})

	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return r
}
