package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/usecase"
	"go.uber.org/zap"
)

// Shortener - операции приложения, нужные HTTP-слою.
type Shortener interface {
	CreateShortURL(ctx context.Context, in usecase.CreateInput) (*usecase.CreateResult, error)
	ResolveURL(ctx context.Context, code string, info model.RequestInfo) (*model.ShortLink, error)
	LookupURL(ctx context.Context, code string) (string, error)
	LinkStats(ctx context.Context, code, credential string) (*usecase.LinkStats, error)
	DeleteURL(ctx context.Context, code, credential string) error
	CreateUser(ctx context.Context, email string) (*usecase.UserAccount, error)
	UserInfo(ctx context.Context, credential string) (*usecase.UserInfo, error)
	UserURLs(ctx context.Context, credential string, limit, offset int) (*usecase.UserURLsResult, error)
	BuildShortURL(code string) string
	Ping(ctx context.Context) error
}

type Handler struct {
	shortener Shortener
	logger    *zap.Logger
}

func New(shortener Shortener, logger *zap.Logger) *Handler {
	return &Handler{
		shortener: shortener,
		logger:    logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError переводит ошибки приложения в HTTP-статусы.
// Неузнанные ошибки считаются внутренними и не раскрываются клиенту.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, usecase.ErrInvalidURL),
		errors.Is(err, usecase.ErrInvalidCustomCode):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, usecase.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "valid api key or token required"
	case errors.Is(err, usecase.ErrForbidden):
		status = http.StatusForbidden
		message = "access denied"
	case errors.Is(err, usecase.ErrNotFound):
		status = http.StatusNotFound
		message = "short url not found"
	case errors.Is(err, usecase.ErrExpired):
		status = http.StatusGone
		message = "short url expired"
	case errors.Is(err, usecase.ErrCodeTaken):
		status = http.StatusConflict
		message = "custom code already taken"
	case errors.Is(err, usecase.ErrEmailTaken):
		status = http.StatusConflict
		message = "email already registered"
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
	}

	h.writeJSON(w, status, errorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}
