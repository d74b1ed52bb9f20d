// Package usecase содержит бизнес-логику сервиса коротких ссылок:
// оркестрацию валидатора, аллокатора, хранилища и кэша.
package usecase

import (
	"context"
	"net/url"

	"github.com/avc-dev/shortly/internal/cache"
	"github.com/avc-dev/shortly/internal/config"
	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"go.uber.org/zap"
)

// Generator выдаёт свободные короткие коды для автогенерации.
type Generator interface {
	Generate(ctx context.Context) (string, error)
}

// Credentials разрешает учётные данные и выпускает новые.
type Credentials interface {
	ResolveOwner(ctx context.Context, credential string) (*model.User, error)
	NewAPIKey() (string, error)
	IssueToken(userID int64) (string, error)
}

// Shortener реализует операции сервиса поверх хранилища и кэша.
// Кэш используется только как ускоритель: любое изменение состояния
// и авторитетные проверки всегда идут через хранилище.
type Shortener struct {
	store  store.Store
	cache  cache.Cache
	gen    Generator
	auth   Credentials
	cfg    *config.Config
	logger *zap.Logger
}

// New создаёт новый экземпляр Shortener.
func New(s store.Store, c cache.Cache, gen Generator, auth Credentials, cfg *config.Config, logger *zap.Logger) *Shortener {
	return &Shortener{
		store:  s,
		cache:  c,
		gen:    gen,
		auth:   auth,
		cfg:    cfg,
		logger: logger,
	}
}

// BuildShortURL собирает абсолютный короткий URL из базового адреса и кода.
func (u *Shortener) BuildShortURL(code string) string {
	shortURL, err := url.JoinPath(u.cfg.BaseURL.String(), code)
	if err != nil {
		// Базовый URL валидируется при загрузке конфигурации
		return u.cfg.BaseURL.String() + "/" + code
	}
	return shortURL
}

// Ping проверяет доступность хранилища.
func (u *Shortener) Ping(ctx context.Context) error {
	if err := u.store.Ping(ctx); err != nil {
		return wrapStorage(err)
	}
	return nil
}
