// Package memory реализует хранилище коротких ссылок в памяти процесса.
// Используется в тестах и при запуске без базы данных.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
)

// Store хранит все данные в памяти под общим мьютексом.
// Мьютекс обеспечивает те же гарантии атомарности, что частичный
// уникальный индекс и атомарный инкремент в PostgreSQL.
type Store struct {
	mu sync.Mutex

	links  map[int64]*model.ShortLink
	byCode map[string]int64 // только активные записи

	users    map[int64]*model.User
	byAPIKey map[string]int64
	byEmail  map[string]int64

	clicks map[int64][]model.ClickEvent

	counter     int64
	nextLinkID  int64
	nextUserID  int64
	nextClickID int64
}

// New создаёт пустое хранилище в памяти.
func New() *Store {
	return &Store{
		links:    make(map[int64]*model.ShortLink),
		byCode:   make(map[string]int64),
		users:    make(map[int64]*model.User),
		byAPIKey: make(map[string]int64),
		byEmail:  make(map[string]int64),
		clicks:   make(map[int64][]model.ClickEvent),
	}
}

// CreateLink вставляет запись; проверка кода и вставка выполняются
// под одним захватом мьютекса.
func (s *Store) CreateLink(_ context.Context, link *model.ShortLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byCode[link.ShortCode]; taken {
		return fmt.Errorf("code %s: %w", link.ShortCode, store.ErrCodeExists)
	}

	s.nextLinkID++
	link.ID = s.nextLinkID
	link.CreatedAt = time.Now()
	link.IsActive = true

	stored := *link
	s.links[link.ID] = &stored
	s.byCode[link.ShortCode] = link.ID

	return nil
}

func (s *Store) FindActiveByCode(_ context.Context, code string) (*model.ShortLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCode[code]
	if !ok {
		return nil, fmt.Errorf("code %s: %w", code, store.ErrNotFound)
	}

	link := *s.links[id]
	return &link, nil
}

func (s *Store) IncrementClicks(_ context.Context, linkID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[linkID]
	if !ok {
		return 0, fmt.Errorf("link %d: %w", linkID, store.ErrNotFound)
	}

	link.ClickCount++
	return link.ClickCount, nil
}

func (s *Store) SoftDelete(_ context.Context, linkID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[linkID]
	if !ok || !link.IsActive {
		return nil
	}

	link.IsActive = false
	delete(s.byCode, link.ShortCode)

	return nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID int64, limit, offset int) ([]model.ShortLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.activeByOwner(ownerID)
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	if offset >= len(owned) {
		return []model.ShortLink{}, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}

	result := make([]model.ShortLink, len(owned))
	for i, link := range owned {
		result[i] = *link
	}

	return result, nil
}

func (s *Store) CountByOwner(_ context.Context, ownerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.activeByOwner(ownerID))), nil
}

func (s *Store) activeByOwner(ownerID int64) []*model.ShortLink {
	var owned []*model.ShortLink
	for _, link := range s.links {
		if link.IsActive && link.OwnerID != nil && *link.OwnerID == ownerID {
			owned = append(owned, link)
		}
	}
	return owned
}

func (s *Store) RecordClick(_ context.Context, event *model.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[event.LinkID]; !ok {
		return fmt.Errorf("link %d: %w", event.LinkID, store.ErrNotFound)
	}

	s.nextClickID++
	event.ID = s.nextClickID
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	s.clicks[event.LinkID] = append(s.clicks[event.LinkID], *event)
	return nil
}

func (s *Store) RecentClicks(_ context.Context, linkID int64, limit int) ([]model.ClickEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.clicks[linkID]
	result := make([]model.ClickEvent, 0, limit)
	for i := len(events) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, events[i])
	}

	return result, nil
}

func (s *Store) ClicksByDay(_ context.Context, linkID int64) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDay := make(map[string]int64)
	for _, event := range s.clicks[linkID] {
		byDay[event.Timestamp.Format("2006-01-02")]++
	}

	return byDay, nil
}

func (s *Store) CountClicks(_ context.Context, linkID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.clicks[linkID])), nil
}

func (s *Store) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Email != nil {
		if _, taken := s.byEmail[*user.Email]; taken {
			return fmt.Errorf("email %s: %w", *user.Email, store.ErrEmailExists)
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	user.IsActive = true

	stored := *user
	s.users[user.ID] = &stored
	s.byAPIKey[user.APIKey] = user.ID
	if user.Email != nil {
		s.byEmail[*user.Email] = user.ID
	}

	return nil
}

func (s *Store) FindUserByAPIKey(_ context.Context, key string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byAPIKey[key]
	if !ok || !s.users[id].IsActive {
		return nil, fmt.Errorf("api key: %w", store.ErrNotFound)
	}

	user := *s.users[id]
	return &user, nil
}

func (s *Store) FindUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || !user.IsActive {
		return nil, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
	}

	result := *user
	return &result, nil
}

func (s *Store) TotalClicksByOwner(_ context.Context, ownerID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, link := range s.links {
		if link.IsActive && link.OwnerID != nil && *link.OwnerID == ownerID {
			total += link.ClickCount
		}
	}

	return total, nil
}

// NextID лениво инициализирует счётчик начальным значением
// и атомарно выдаёт следующее.
func (s *Store) NextID(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counter == 0 {
		s.counter = store.CounterSeed
	}
	s.counter++

	return s.counter, nil
}

// Ping для хранилища в памяти всегда успешен.
func (s *Store) Ping(_ context.Context) error {
	return nil
}
