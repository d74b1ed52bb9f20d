package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"go.uber.org/zap"
)

// ResolveURL разрешает короткий код в оригинальный URL с учётом перехода:
// запись аналитики и инкремент счётчика выполняются через хранилище,
// кэш здесь не используется как короткий путь.
//
// Запись аналитики - best-effort: её сбой логируется и никогда
// не превращает успешный редирект в ошибку.
func (u *Shortener) ResolveURL(ctx context.Context, code string, info model.RequestInfo) (*model.ShortLink, error) {
	link, err := u.findActive(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := u.store.RecordClick(ctx, &model.ClickEvent{
		LinkID:     link.ID,
		SourceAddr: info.SourceAddr,
		UserAgent:  info.UserAgent,
		Referrer:   info.Referrer,
	}); err != nil {
		u.logger.Warn("failed to record click",
			zap.String("code", code),
			zap.Error(err),
		)
	}

	count, err := u.store.IncrementClicks(ctx, link.ID)
	if err != nil {
		u.logger.Error("failed to increment clicks",
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, wrapStorage(err)
	}
	link.ClickCount = count

	u.cache.Set(ctx, link.ShortCode, link.OriginalURL)

	return link, nil
}

// LookupURL - нетрекаемый быстрый путь: сначала кэш, затем хранилище.
// Попадание в кэш не увеличивает счётчик переходов.
func (u *Shortener) LookupURL(ctx context.Context, code string) (string, error) {
	if url, ok := u.cache.Get(ctx, code); ok {
		return url, nil
	}

	link, err := u.findActive(ctx, code)
	if err != nil {
		return "", err
	}

	u.cache.Set(ctx, link.ShortCode, link.OriginalURL)

	return link.OriginalURL, nil
}

// findActive загружает активную запись и проверяет срок действия.
// Истёкшая ссылка отличима от отсутствующей.
func (u *Shortener) findActive(ctx context.Context, code string) (*model.ShortLink, error) {
	link, err := u.store.FindActiveByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		u.logger.Error("failed to find link",
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, wrapStorage(err)
	}

	if link.Expired() {
		return nil, fmt.Errorf("%w: %s", ErrExpired, code)
	}

	return link, nil
}
