package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"go.uber.org/zap"
)

// UserAccount - учётные данные только что созданного пользователя.
// API-ключ показывается единственный раз, при создании.
type UserAccount struct {
	APIKey    string
	Token     string
	Email     *string
	CreatedAt time.Time
}

// UserInfo - сводка по аккаунту владельца.
type UserInfo struct {
	Email       *string
	CreatedAt   time.Time
	TotalURLs   int64
	TotalClicks int64
}

// CreateUser регистрирует нового владельца ссылок. Email опционален,
// но должен быть уникален.
func (u *Shortener) CreateUser(ctx context.Context, email string) (*UserAccount, error) {
	apiKey, err := u.auth.NewAPIKey()
	if err != nil {
		u.logger.Error("failed to generate api key", zap.Error(err))
		return nil, wrapStorage(err)
	}

	user := &model.User{APIKey: apiKey}
	if email != "" {
		user.Email = &email
	}

	if err := u.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		u.logger.Error("failed to create user", zap.Error(err))
		return nil, wrapStorage(err)
	}

	token, err := u.auth.IssueToken(user.ID)
	if err != nil {
		// Ключ уже создан и работает, токен - лишь удобная альтернатива
		u.logger.Warn("failed to issue token", zap.Error(err))
	}

	return &UserAccount{
		APIKey:    user.APIKey,
		Token:     token,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UserInfo возвращает сводку по аккаунту: число активных ссылок
// и суммарные переходы.
func (u *Shortener) UserInfo(ctx context.Context, credential string) (*UserInfo, error) {
	if credential == "" {
		return nil, ErrUnauthorized
	}

	owner, err := u.resolveOwner(ctx, credential)
	if err != nil {
		return nil, err
	}

	totalURLs, err := u.store.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	totalClicks, err := u.store.TotalClicksByOwner(ctx, owner.ID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	return &UserInfo{
		Email:       owner.Email,
		CreatedAt:   owner.CreatedAt,
		TotalURLs:   totalURLs,
		TotalClicks: totalClicks,
	}, nil
}
