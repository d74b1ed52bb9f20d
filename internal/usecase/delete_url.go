package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/shortly/internal/store"
	"go.uber.org/zap"
)

// DeleteURL мягко удаляет ссылку владельца и инвалидирует кэш.
// Чужая или отсутствующая ссылка неразличимы для вызывающего.
func (u *Shortener) DeleteURL(ctx context.Context, code, credential string) error {
	if credential == "" {
		return ErrUnauthorized
	}

	owner, err := u.resolveOwner(ctx, credential)
	if err != nil {
		return err
	}

	link, err := u.store.FindActiveByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if err != nil {
		return wrapStorage(err)
	}

	if link.OwnerID == nil || *link.OwnerID != owner.ID {
		return fmt.Errorf("%w: %s", ErrNotFound, code)
	}

	if err := u.store.SoftDelete(ctx, link.ID); err != nil {
		u.logger.Error("failed to delete link",
			zap.String("code", code),
			zap.Error(err),
		)
		return wrapStorage(err)
	}

	u.cache.Invalidate(ctx, code)

	return nil
}
