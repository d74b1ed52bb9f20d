package usecase

import (
	"errors"
	"fmt"
)

// Таксономия ошибок сервиса. Каждая ошибка стабильно отображается
// обработчиками в один HTTP-статус.
var (
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidCustomCode  = errors.New("invalid custom code")
	ErrCodeTaken          = errors.New("custom code already exists")
	ErrUnauthorized       = errors.New("invalid API key")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("short URL not found")
	ErrExpired            = errors.New("short URL has expired")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func wrapStorage(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
