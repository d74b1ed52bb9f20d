package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/avc-dev/shortly/internal/middleware"
	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Email string `json:"email,omitempty"`
}

type CreateUserResponse struct {
	APIKey    string    `json:"api_key"`
	Token     string    `json:"token,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser регистрирует владельца ссылок и выдаёт учётные данные.
// API-ключ возвращается только в этом ответе.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("failed to decode JSON request",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	account, err := h.shortener.CreateUser(r.Context(), request.Email)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, CreateUserResponse{
		APIKey:    account.APIKey,
		Token:     account.Token,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	})
}

type UserInfoResponse struct {
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	TotalURLs   int64     `json:"total_urls"`
	TotalClicks int64     `json:"total_clicks"`
}

// UserInfo возвращает сводку по аккаунту аутентифицированного пользователя.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.shortener.UserInfo(r.Context(), middleware.Credential(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, UserInfoResponse{
		Email:       info.Email,
		CreatedAt:   info.CreatedAt,
		TotalURLs:   info.TotalURLs,
		TotalClicks: info.TotalClicks,
	})
}

type UserURLsResponse struct {
	Total int64             `json:"total"`
	URLs  []ShortenResponse `json:"urls"`
}

// UserURLs возвращает активные ссылки пользователя, новые - первыми.
func (h *Handler) UserURLs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	result, err := h.shortener.UserURLs(r.Context(), middleware.Credential(r.Context()), limit, offset)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	urls := make([]ShortenResponse, len(result.Links))
	for i, link := range result.Links {
		urls[i] = ShortenResponse{
			ShortURL:    h.shortener.BuildShortURL(link.ShortCode),
			Code:        link.ShortCode,
			OriginalURL: link.OriginalURL,
			IsCustom:    link.IsCustom,
			CreatedAt:   link.CreatedAt,
			ExpiresAt:   link.ExpiresAt,
		}
	}

	h.writeJSON(w, http.StatusOK, UserURLsResponse{
		Total: result.Total,
		URLs:  urls,
	})
}

// queryInt читает неотрицательный числовой параметр query,
// мусор трактуется как ноль.
func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
