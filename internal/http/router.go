package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bruno-santana/minhas-financas-api/internal/http/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/http/user"
	"github.com/bruno-santana/minhas-financas-api/internal/metrics"
)

func New(
	users *user.Handler,
	entries *entry.Handler,
	httpMetrics *metrics.HTTP,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(httpMetrics.Middleware)

	router.Handle("/metrics", httpMetrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Route("/usuarios", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			users.Routes(r)
		})

		r.Route("/lancamentos", entries.Routes)
	})

	return router
}
