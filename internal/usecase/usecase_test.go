package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/avc-dev/shortly/internal/cache"
	"github.com/avc-dev/shortly/internal/config"
	"github.com/avc-dev/shortly/internal/service"
	"github.com/avc-dev/shortly/internal/store/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCache - кэш в памяти, фиксирующий операции для проверок.
type fakeCache struct {
	mu          sync.Mutex
	data        map[string]string
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, code string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.data[code]
	return url, ok
}

func (c *fakeCache) Set(_ context.Context, code, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[code] = url
}

func (c *fakeCache) Invalidate(_ context.Context, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, code)
	c.invalidated = append(c.invalidated, code)
}

// newTestShortener собирает usecase поверх хранилища в памяти.
func newTestShortener(t *testing.T, c cache.Cache) (*Shortener, *memory.Store) {
	t.Helper()

	s := memory.New()
	auth := service.NewAuthService(s, "test-secret")
	gen := service.NewCodeGenerator(s)

	u := New(s, c, gen, auth, config.NewDefaultConfig(), zap.NewNop())
	return u, s
}

// createTestUser регистрирует пользователя и возвращает его API-ключ.
func createTestUser(t *testing.T, u *Shortener, email string) string {
	t.Helper()

	account, err := u.CreateUser(context.Background(), email)
	require.NoError(t, err)
	return account.APIKey
}
