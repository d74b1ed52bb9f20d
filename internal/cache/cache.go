// Package cache реализует необязательный кэш соответствий
// короткий код -> оригинальный URL перед основным хранилищем.
//
// Кэш никогда не является источником истины: любая ошибка бэкенда
// деградирует до промаха и не доходит до вызывающего кода.
package cache

import "context"

// Cache - абстракция кэша для оркестратора. Реализации не возвращают
// ошибок: недоступный бэкенд неотличим от промаха.
type Cache interface {
	// Get возвращает закэшированный URL и признак попадания.
	Get(ctx context.Context, code string) (string, bool)
	// Set сохраняет соответствие с TTL реализации. Ошибки проглатываются.
	Set(ctx context.Context, code, url string)
	// Invalidate удаляет запись. Ошибки проглатываются.
	Invalidate(ctx context.Context, code string)
}

// Noop - реализация без бэкенда: всегда промах, записи игнорируются.
// Логика оркестратора идентична при любом варианте кэша.
type Noop struct{}

// NewNoop создаёт кэш-заглушку.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) Get(_ context.Context, _ string) (string, bool) { return "", false }

func (Noop) Set(_ context.Context, _, _ string) {}

func (Noop) Invalidate(_ context.Context, _ string) {}
