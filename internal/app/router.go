package app

import (
	"github.com/avc-dev/shortly/internal/handler"
	"github.com/avc-dev/shortly/internal/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newRouter настраивает маршруты и миддлвары приложения.
func newRouter(h *handler.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Gzip(logger))
	r.Use(middleware.Auth)

	r.Get("/ping", h.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Post("/shorten", h.CreateURL)
		r.Get("/expand/{code}", h.ExpandURL)
		r.Get("/stats/{code}", h.Stats)
		r.Delete("/url/{code}", h.DeleteURL)

		r.Route("/user", func(r chi.Router) {
			r.Post("/create", h.CreateUser)
			r.Get("/info", h.UserInfo)
			r.Get("/urls", h.UserURLs)
		})
	})

	// Переход по короткой ссылке
	r.Get("/{code}", h.GetURL)

	return r
}
