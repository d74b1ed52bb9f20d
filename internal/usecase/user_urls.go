package usecase

import (
	"context"

	"github.com/avc-dev/shortly/internal/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// UserURLsResult - страница ссылок владельца и общее число его ссылок.
type UserURLsResult struct {
	Links []model.ShortLink
	Total int64
}

// UserURLs возвращает активные ссылки владельца, новые первыми.
// Лимит по умолчанию 50, максимум 100.
func (u *Shortener) UserURLs(ctx context.Context, credential string, limit, offset int) (*UserURLsResult, error) {
	if credential == "" {
		return nil, ErrUnauthorized
	}

	owner, err := u.resolveOwner(ctx, credential)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	links, err := u.store.ListByOwner(ctx, owner.ID, limit, offset)
	if err != nil {
		return nil, wrapStorage(err)
	}

	total, err := u.store.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	return &UserURLsResult{
		Links: links,
		Total: total,
	}, nil
}
