package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/service"
	"github.com/avc-dev/shortly/internal/store"
	"github.com/avc-dev/shortly/internal/validate"
	"go.uber.org/zap"
)

// CreateInput - параметры создания короткой ссылки.
type CreateInput struct {
	OriginalURL   string
	Credential    string // API-ключ или Bearer-токен, пусто для анонимных ссылок
	CustomCode    string
	ExpiresInDays int
}

// CreateResult - созданная запись вместе с абсолютным коротким URL.
type CreateResult struct {
	Link     *model.ShortLink
	ShortURL string
}

// CreateShortURL создаёт короткую ссылку: валидирует URL, разрешает
// владельца, выбирает код (пользовательский или от аллокатора) и
// сохраняет запись. Кэш заполняется только после успешной вставки.
func (u *Shortener) CreateShortURL(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if err := validate.URL(in.OriginalURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	owner, err := u.resolveOwner(ctx, in.Credential)
	if err != nil {
		return nil, err
	}

	code := in.CustomCode
	isCustom := code != ""
	if isCustom {
		if err := validate.CustomCode(code); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCustomCode, err)
		}
	} else {
		code, err = u.gen.Generate(ctx)
		if err != nil {
			u.logger.Error("failed to generate short code", zap.Error(err))
			return nil, wrapStorage(err)
		}
	}

	link := &model.ShortLink{
		OriginalURL: in.OriginalURL,
		ShortCode:   code,
		IsCustom:    isCustom,
	}
	if owner != nil {
		link.OwnerID = &owner.ID
	}
	if in.ExpiresInDays > 0 {
		expiresAt := time.Now().AddDate(0, 0, in.ExpiresInDays)
		link.ExpiresAt = &expiresAt
	}

	// Проверка занятости кода и вставка атомарны на уровне хранилища:
	// из двух конкурентных созданий одного кода ровно одно успешно.
	if err := u.store.CreateLink(ctx, link); err != nil {
		if errors.Is(err, store.ErrCodeExists) {
			return nil, fmt.Errorf("%w: %s", ErrCodeTaken, code)
		}
		u.logger.Error("failed to create short URL",
			zap.String("original_url", in.OriginalURL),
			zap.Error(err),
		)
		return nil, wrapStorage(err)
	}

	u.cache.Set(ctx, link.ShortCode, link.OriginalURL)

	return &CreateResult{
		Link:     link,
		ShortURL: u.BuildShortURL(link.ShortCode),
	}, nil
}

// resolveOwner переводит учётные данные во владельца, приводя ошибки
// к таксономии usecase.
func (u *Shortener) resolveOwner(ctx context.Context, credential string) (*model.User, error) {
	owner, err := u.auth.ResolveOwner(ctx, credential)
	if errors.Is(err, service.ErrUnknownCredential) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		u.logger.Error("failed to resolve owner", zap.Error(err))
		return nil, wrapStorage(err)
	}
	return owner, nil
}
