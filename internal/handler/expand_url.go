package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type ExpandResponse struct {
	OriginalURL string `json:"original_url"`
}

// ExpandURL возвращает оригинальный URL без перенаправления.
// Просмотр не считается переходом и не попадает в статистику.
func (h *Handler) ExpandURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	url, err := h.shortener.LookupURL(r.Context(), code)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ExpandResponse{OriginalURL: url})
}
