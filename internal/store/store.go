// Package store определяет интерфейс хранилища коротких ссылок
// и общие для всех реализаций ошибки.
package store

import (
	"context"
	"errors"

	"github.com/avc-dev/shortly/internal/model"
)

var (
	// ErrNotFound возвращается, когда активная запись не найдена.
	// Мягко удалённые записи считаются отсутствующими.
	ErrNotFound = errors.New("not found")
	// ErrCodeExists возвращается при попытке вставить короткий код,
	// уже занятый активной записью.
	ErrCodeExists = errors.New("short code already exists")
	// ErrEmailExists возвращается при регистрации уже занятого email.
	ErrEmailExists = errors.New("email already registered")
)

const (
	// CounterName - имя единственной строки счётчика аллокатора.
	CounterName = "url_counter"
	// CounterSeed - начальное значение счётчика. Первое выделение
	// возвращает CounterSeed+1; значения никогда не переиспользуются,
	// в том числе между перезапусками.
	CounterSeed = int64(100_000_000_000)
)

// LinkStore описывает операции над записями коротких ссылок.
type LinkStore interface {
	// CreateLink вставляет новую запись и заполняет ID и CreatedAt.
	// Проверка занятости кода и вставка атомарны: из двух конкурентных
	// вставок одного кода ровно одна получает ErrCodeExists.
	CreateLink(ctx context.Context, link *model.ShortLink) error
	// FindActiveByCode возвращает активную запись по коду или ErrNotFound.
	FindActiveByCode(ctx context.Context, code string) (*model.ShortLink, error)
	// IncrementClicks атомарно увеличивает счётчик переходов
	// и возвращает новое значение.
	IncrementClicks(ctx context.Context, linkID int64) (int64, error)
	// SoftDelete помечает запись неактивной. Идемпотентна.
	SoftDelete(ctx context.Context, linkID int64) error
	// ListByOwner возвращает активные ссылки владельца, новые первыми.
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.ShortLink, error)
	// CountByOwner возвращает число активных ссылок владельца.
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}

// ClickStore описывает операции над записями аналитики переходов.
type ClickStore interface {
	// RecordClick добавляет событие перехода и заполняет ID и Timestamp.
	RecordClick(ctx context.Context, event *model.ClickEvent) error
	// RecentClicks возвращает последние события по ссылке, новые первыми.
	RecentClicks(ctx context.Context, linkID int64, limit int) ([]model.ClickEvent, error)
	// ClicksByDay возвращает число переходов по дням (ключ YYYY-MM-DD).
	ClicksByDay(ctx context.Context, linkID int64) (map[string]int64, error)
	// CountClicks возвращает общее число событий по ссылке.
	CountClicks(ctx context.Context, linkID int64) (int64, error)
}

// UserStore описывает операции над владельцами ссылок.
type UserStore interface {
	// CreateUser вставляет пользователя и заполняет ID и CreatedAt.
	CreateUser(ctx context.Context, user *model.User) error
	// FindUserByAPIKey возвращает активного пользователя по API-ключу.
	FindUserByAPIKey(ctx context.Context, key string) (*model.User, error)
	// FindUserByID возвращает активного пользователя по идентификатору.
	FindUserByID(ctx context.Context, id int64) (*model.User, error)
	// TotalClicksByOwner возвращает суммарное число переходов
	// по активным ссылкам владельца.
	TotalClicksByOwner(ctx context.Context, ownerID int64) (int64, error)
}

// Allocator выдаёт глобально уникальные, строго возрастающие идентификаторы
// для автоматически генерируемых кодов.
type Allocator interface {
	// NextID атомарно увеличивает счётчик и возвращает новое значение.
	// Два конкурентных вызова никогда не получают одно значение.
	NextID(ctx context.Context) (int64, error)
}

// Store объединяет все операции хранилища.
type Store interface {
	LinkStore
	ClickStore
	UserStore
	Allocator

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
