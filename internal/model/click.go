package model

import "time"

// ClickEvent представляет одну запись аналитики перехода по короткой ссылке.
// Записи никогда не изменяются и удаляются только каскадно вместе со ссылкой.
type ClickEvent struct {
	ID         int64     `json:"id"`
	LinkID     int64     `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	SourceAddr string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
}

// RequestInfo содержит данные запроса, захваченные для аналитики.
// Все поля опциональны и не валидируются.
type RequestInfo struct {
	SourceAddr string
	UserAgent  string
	Referrer   string
}
