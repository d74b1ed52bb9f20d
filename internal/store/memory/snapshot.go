package memory

import (
	"time"

	"github.com/avc-dev/shortly/internal/model"
)

// Snapshot - полное сериализуемое состояние хранилища.
// Используется файловым хранилищем для сохранения между перезапусками.
type Snapshot struct {
	Counter int64           `json:"counter"`
	Links   []LinkRecord    `json:"links"`
	Users   []UserRecord    `json:"users"`
	Clicks  []ClickRecord   `json:"clicks"`
}

// LinkRecord - запись ссылки со всеми полями, включая скрытые из API.
type LinkRecord struct {
	ID          int64      `json:"id"`
	OriginalURL string     `json:"original_url"`
	ShortCode   string     `json:"short_code"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	ClickCount  int64      `json:"click_count"`
	IsCustom    bool       `json:"is_custom"`
}

// UserRecord - запись пользователя для снапшота.
type UserRecord struct {
	ID        int64     `json:"id"`
	APIKey    string    `json:"api_key"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// ClickRecord - запись события перехода для снапшота.
type ClickRecord struct {
	ID         int64     `json:"id"`
	LinkID     int64     `json:"link_id"`
	Timestamp  time.Time `json:"timestamp"`
	SourceAddr string    `json:"source_addr,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
}

// Snapshot снимает копию текущего состояния под мьютексом.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{Counter: s.counter}

	for _, link := range s.links {
		snap.Links = append(snap.Links, LinkRecord{
			ID:          link.ID,
			OriginalURL: link.OriginalURL,
			ShortCode:   link.ShortCode,
			OwnerID:     link.OwnerID,
			CreatedAt:   link.CreatedAt,
			ExpiresAt:   link.ExpiresAt,
			IsActive:    link.IsActive,
			ClickCount:  link.ClickCount,
			IsCustom:    link.IsCustom,
		})
	}

	for _, user := range s.users {
		snap.Users = append(snap.Users, UserRecord{
			ID:        user.ID,
			APIKey:    user.APIKey,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			IsActive:  user.IsActive,
		})
	}

	for linkID, events := range s.clicks {
		for _, event := range events {
			snap.Clicks = append(snap.Clicks, ClickRecord{
				ID:         event.ID,
				LinkID:     linkID,
				Timestamp:  event.Timestamp,
				SourceAddr: event.SourceAddr,
				UserAgent:  event.UserAgent,
				Referrer:   event.Referrer,
			})
		}
	}

	return snap
}

// Restore загружает состояние из снапшота, замещая текущее.
func (s *Store) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.links = make(map[int64]*model.ShortLink)
	s.byCode = make(map[string]int64)
	s.users = make(map[int64]*model.User)
	s.byAPIKey = make(map[string]int64)
	s.byEmail = make(map[string]int64)
	s.clicks = make(map[int64][]model.ClickEvent)
	s.counter = snap.Counter
	s.nextLinkID = 0
	s.nextUserID = 0
	s.nextClickID = 0

	for _, rec := range snap.Links {
		link := &model.ShortLink{
			ID:          rec.ID,
			OriginalURL: rec.OriginalURL,
			ShortCode:   rec.ShortCode,
			OwnerID:     rec.OwnerID,
			CreatedAt:   rec.CreatedAt,
			ExpiresAt:   rec.ExpiresAt,
			IsActive:    rec.IsActive,
			ClickCount:  rec.ClickCount,
			IsCustom:    rec.IsCustom,
		}
		s.links[link.ID] = link
		if link.IsActive {
			s.byCode[link.ShortCode] = link.ID
		}
		if link.ID > s.nextLinkID {
			s.nextLinkID = link.ID
		}
	}

	for _, rec := range snap.Users {
		user := &model.User{
			ID:        rec.ID,
			APIKey:    rec.APIKey,
			Email:     rec.Email,
			CreatedAt: rec.CreatedAt,
			IsActive:  rec.IsActive,
		}
		s.users[user.ID] = user
		s.byAPIKey[user.APIKey] = user.ID
		if user.Email != nil {
			s.byEmail[*user.Email] = user.ID
		}
		if user.ID > s.nextUserID {
			s.nextUserID = user.ID
		}
	}

	for _, rec := range snap.Clicks {
		s.clicks[rec.LinkID] = append(s.clicks[rec.LinkID], model.ClickEvent{
			ID:         rec.ID,
			LinkID:     rec.LinkID,
			Timestamp:  rec.Timestamp,
			SourceAddr: rec.SourceAddr,
			UserAgent:  rec.UserAgent,
			Referrer:   rec.Referrer,
		})
		if rec.ID > s.nextClickID {
			s.nextClickID = rec.ID
		}
	}
}
