package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"go.uber.org/zap"
)

const recentClicksLimit = 10

// LinkStats - агрегированная статистика по одной ссылке.
type LinkStats struct {
	Link         *model.ShortLink
	ShortURL     string
	TotalClicks  int64
	DailyClicks  map[string]int64
	RecentClicks []model.ClickEvent
}

// LinkStats возвращает статистику переходов по коду. Статистика
// анонимных ссылок открыта всем, именных - только владельцу.
func (u *Shortener) LinkStats(ctx context.Context, code, credential string) (*LinkStats, error) {
	link, err := u.store.FindActiveByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, wrapStorage(err)
	}

	if link.OwnerID != nil {
		if credential == "" {
			return nil, ErrForbidden
		}
		owner, err := u.resolveOwner(ctx, credential)
		if err != nil {
			return nil, err
		}
		if *link.OwnerID != owner.ID {
			return nil, ErrForbidden
		}
	}

	total, err := u.store.CountClicks(ctx, link.ID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	daily, err := u.store.ClicksByDay(ctx, link.ID)
	if err != nil {
		return nil, wrapStorage(err)
	}

	recent, err := u.store.RecentClicks(ctx, link.ID, recentClicksLimit)
	if err != nil {
		u.logger.Warn("failed to load recent clicks",
			zap.String("code", code),
			zap.Error(err),
		)
		recent = nil
	}

	return &LinkStats{
		Link:         link,
		ShortURL:     u.BuildShortURL(link.ShortCode),
		TotalClicks:  total,
		DailyClicks:  daily,
		RecentClicks: recent,
	}, nil
}
