package handler

import (
	"net/http"

	"github.com/avc-dev/shortly/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// DeleteURL обрабатывает DELETE-запрос владельца на удаление ссылки.
func (h *Handler) DeleteURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.shortener.DeleteURL(r.Context(), code, middleware.Credential(r.Context())); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
