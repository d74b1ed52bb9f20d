package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avc-dev/shortly/internal/middleware"
	"github.com/avc-dev/shortly/internal/usecase"
	"go.uber.org/zap"
)

type ShortenRequest struct {
	URL           string `json:"url"`
	CustomCode    string `json:"custom_code,omitempty"`
	ExpiresInDays int    `json:"expires_in_days,omitempty"`
}

type ShortenResponse struct {
	ShortURL    string     `json:"short_url"`
	Code        string     `json:"code"`
	OriginalURL string     `json:"original_url"`
	IsCustom    bool       `json:"is_custom"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// CreateURL обрабатывает POST-запрос на создание короткой ссылки.
func (h *Handler) CreateURL(w http.ResponseWriter, r *http.Request) {
	var request ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("failed to decode JSON request",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	result, err := h.shortener.CreateShortURL(r.Context(), usecase.CreateInput{
		OriginalURL:   request.URL,
		Credential:    middleware.Credential(r.Context()),
		CustomCode:    request.CustomCode,
		ExpiresInDays: request.ExpiresInDays,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, ShortenResponse{
		ShortURL:    result.ShortURL,
		Code:        result.Link.ShortCode,
		OriginalURL: result.Link.OriginalURL,
		IsCustom:    result.Link.IsCustom,
		CreatedAt:   result.Link.CreatedAt,
		ExpiresAt:   result.Link.ExpiresAt,
	})
}
