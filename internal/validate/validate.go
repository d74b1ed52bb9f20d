// Package validate содержит чистые проверки входных данных сервиса:
// оригинальных URL и пользовательских коротких кодов.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL      = errors.New("URL cannot be empty")
	ErrMalformedURL  = errors.New("invalid URL format")
	ErrScheme        = errors.New("only HTTP and HTTPS URLs are allowed")
	ErrBlockedHost   = errors.New("domain is not allowed")
	ErrCodeLength    = errors.New("custom code must be between 3 and 16 characters")
	ErrCodeCharacter = errors.New("custom code can only contain letters, numbers, hyphens, and underscores")
)

// blockedHosts проверяются как подстроки хоста в нижнем регистре.
// Проверка намеренно широкая: любой хост, содержащий эти подстроки,
// отклоняется.
var blockedHosts = []string{"localhost", "127.0.0.1", "0.0.0.0"}

const (
	minCodeLength = 3
	maxCodeLength = 16
)

// URL проверяет, что строка является абсолютным HTTP(S) URL
// с непустым и не заблокированным хостом.
func URL(s string) error {
	if s == "" {
		return ErrEmptyURL
	}

	parsed, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrScheme
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return ErrMalformedURL
	}

	for _, blocked := range blockedHosts {
		if strings.Contains(host, blocked) {
			return fmt.Errorf("host %q: %w", host, ErrBlockedHost)
		}
	}

	return nil
}

// CustomCode проверяет формат пользовательского короткого кода:
// от 3 до 16 символов из набора [A-Za-z0-9_-].
func CustomCode(s string) error {
	if len(s) < minCodeLength || len(s) > maxCodeLength {
		return ErrCodeLength
	}

	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return fmt.Errorf("character %q: %w", c, ErrCodeCharacter)
		}
	}

	return nil
}
