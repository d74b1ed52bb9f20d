package model

import "time"

// ShortLink представляет одну запись сокращения URL.
// OriginalURL и ShortCode неизменяемы после создания, ClickCount
// увеличивается при каждом отслеживаемом переходе.
type ShortLink struct {
	ID          int64      `json:"id"`
	OriginalURL string     `json:"original_url"`
	ShortCode   string     `json:"short_code"`
	OwnerID     *int64     `json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"-"`
	ClickCount  int64      `json:"click_count"`
	IsCustom    bool       `json:"is_custom"`
}

// Expired сообщает, истёк ли срок действия ссылки.
// Ссылка без expires_at не истекает никогда.
func (l *ShortLink) Expired() bool {
	return l.ExpiresAt != nil && time.Now().After(*l.ExpiresAt)
}
