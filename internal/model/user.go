package model

import "time"

// User представляет владельца коротких ссылок.
// Для анонимных ссылок владелец отсутствует.
type User struct {
	ID        int64     `json:"-"`
	APIKey    string    `json:"api_key"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"-"`
}
