package handler

import (
	"net"
	"net/http"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/go-chi/chi/v5"
)

// GetURL перенаправляет по короткому коду на оригинальный URL
// и учитывает переход.
func (h *Handler) GetURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.shortener.ResolveURL(r.Context(), code, requestInfo(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, link.OriginalURL, http.StatusFound)
}

// requestInfo собирает атрибуты перехода для статистики.
func requestInfo(r *http.Request) model.RequestInfo {
	addr := r.Header.Get("X-Real-IP")
	if addr == "" {
		addr = r.RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
	}

	return model.RequestInfo{
		SourceAddr: addr,
		UserAgent:  r.UserAgent(),
		Referrer:   r.Referer(),
	}
}
