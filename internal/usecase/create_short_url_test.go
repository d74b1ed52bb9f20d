package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShortURL(t *testing.T) {
	ctx := context.Background()

	t.Run("auto code is seven chars and cached", func(t *testing.T) {
		c := newFakeCache()
		u, _ := newTestShortener(t, c)

		res, err := u.CreateShortURL(ctx, CreateInput{OriginalURL: "https://example.com/path?q=1"})
		require.NoError(t, err)

		assert.Len(t, res.Link.ShortCode, 7)
		assert.Equal(t, "https://example.com/path?q=1", res.Link.OriginalURL)
		assert.Nil(t, res.Link.OwnerID)
		assert.False(t, res.Link.IsCustom)
		assert.True(t, strings.HasSuffix(res.ShortURL, "/"+res.Link.ShortCode))

		cached, ok := c.Get(ctx, res.Link.ShortCode)
		assert.True(t, ok)
		assert.Equal(t, res.Link.OriginalURL, cached)
	})

	t.Run("invalid URLs rejected before storage", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		tests := []string{
			"",
			"not-a-url",
			"ftp://example.com",
			"http://localhost/admin",
			"https://127.0.0.1:9000",
		}
		for _, raw := range tests {
			_, err := u.CreateShortURL(ctx, CreateInput{OriginalURL: raw})
			assert.ErrorIs(t, err, ErrInvalidURL, raw)
		}
	})

	t.Run("unknown credential rejected", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		_, err := u.CreateShortURL(ctx, CreateInput{
			OriginalURL: "https://example.com",
			Credential:  "no-such-key",
		})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("owner recorded for authenticated create", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())
		key := createTestUser(t, u, "owner@example.com")

		res, err := u.CreateShortURL(ctx, CreateInput{
			OriginalURL: "https://example.com",
			Credential:  key,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Link.OwnerID)
	})

	t.Run("expiry set from days", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		res, err := u.CreateShortURL(ctx, CreateInput{
			OriginalURL:   "https://example.com",
			ExpiresInDays: 7,
		})
		require.NoError(t, err)
		require.NotNil(t, res.Link.ExpiresAt)
		assert.True(t, res.Link.ExpiresAt.After(res.Link.CreatedAt))
	})

	t.Run("custom code accepted", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		res, err := u.CreateShortURL(ctx, CreateInput{
			OriginalURL: "https://example.com",
			CustomCode:  "my-url_1",
		})
		require.NoError(t, err)
		assert.Equal(t, "my-url_1", res.Link.ShortCode)
		assert.True(t, res.Link.IsCustom)
	})

	t.Run("malformed custom code rejected", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		for _, code := range []string{"ab", strings.Repeat("a", 17), "inv@lid"} {
			_, err := u.CreateShortURL(ctx, CreateInput{
				OriginalURL: "https://example.com",
				CustomCode:  code,
			})
			assert.ErrorIs(t, err, ErrInvalidCustomCode, code)
		}
	})

	t.Run("taken custom code conflicts", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		_, err := u.CreateShortURL(ctx, CreateInput{OriginalURL: "https://a.example.com", CustomCode: "promo"})
		require.NoError(t, err)

		_, err = u.CreateShortURL(ctx, CreateInput{OriginalURL: "https://b.example.com", CustomCode: "promo"})
		assert.ErrorIs(t, err, ErrCodeTaken)
	})
}

func TestCreateShortURL_Concurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("auto codes never collide", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		const workers = 50
		codes := make(chan string, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := u.CreateShortURL(ctx, CreateInput{OriginalURL: "https://example.com"})
				assert.NoError(t, err)
				codes <- res.Link.ShortCode
			}()
		}
		wg.Wait()
		close(codes)

		seen := make(map[string]struct{}, workers)
		for code := range codes {
			_, dup := seen[code]
			assert.False(t, dup, "duplicate code %s", code)
			seen[code] = struct{}{}
		}
		assert.Len(t, seen, workers)
	})

	t.Run("same custom code won by exactly one", func(t *testing.T) {
		u, _ := newTestShortener(t, newFakeCache())

		const workers = 20
		results := make(chan error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := u.CreateShortURL(ctx, CreateInput{
					OriginalURL: "https://example.com",
					CustomCode:  "contested",
				})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var won, lost int
		for err := range results {
			switch {
			case err == nil:
				won++
			default:
				assert.ErrorIs(t, err, ErrCodeTaken)
				lost++
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, workers-1, lost)
	})
}
