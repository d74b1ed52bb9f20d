package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// Ping проверяет доступность хранилища.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.shortener.Ping(r.Context()); err != nil {
		h.logger.Error("storage ping failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
