package handler

import (
	"net/http"
	"time"

	"github.com/avc-dev/shortly/internal/middleware"
	"github.com/go-chi/chi/v5"
)

type ClickResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	SourceAddr string    `json:"source_addr"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
}

type StatsResponse struct {
	Code         string           `json:"code"`
	ShortURL     string           `json:"short_url"`
	OriginalURL  string           `json:"original_url"`
	CreatedAt    time.Time        `json:"created_at"`
	ExpiresAt    *time.Time       `json:"expires_at,omitempty"`
	TotalClicks  int64            `json:"total_clicks"`
	DailyClicks  map[string]int64 `json:"daily_clicks"`
	RecentClicks []ClickResponse  `json:"recent_clicks"`
}

// Stats возвращает статистику переходов по короткому коду.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	stats, err := h.shortener.LinkStats(r.Context(), code, middleware.Credential(r.Context()))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	recent := make([]ClickResponse, len(stats.RecentClicks))
	for i, click := range stats.RecentClicks {
		recent[i] = ClickResponse{
			Timestamp:  click.Timestamp,
			SourceAddr: click.SourceAddr,
			UserAgent:  click.UserAgent,
			Referrer:   click.Referrer,
		}
	}

	h.writeJSON(w, http.StatusOK, StatsResponse{
		Code:         stats.Link.ShortCode,
		ShortURL:     stats.ShortURL,
		OriginalURL:  stats.Link.OriginalURL,
		CreatedAt:    stats.Link.CreatedAt,
		ExpiresAt:    stats.Link.ExpiresAt,
		TotalClicks:  stats.TotalClicks,
		DailyClicks:  stats.DailyClicks,
		RecentClicks: recent,
	})
}
