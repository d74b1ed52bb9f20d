package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shortly.json")

	// Первый "запуск": создаём данные
	first, err := New(path, zap.NewNop())
	require.NoError(t, err)

	id, err := first.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.CounterSeed+1, id)

	link := &model.ShortLink{OriginalURL: "https://example.com", ShortCode: "abc1234"}
	require.NoError(t, first.CreateLink(ctx, link))
	_, err = first.IncrementClicks(ctx, link.ID)
	require.NoError(t, err)

	// Второй "запуск": состояние восстановлено из файла
	second, err := New(path, zap.NewNop())
	require.NoError(t, err)

	found, err := second.FindActiveByCode(ctx, "abc1234")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", found.OriginalURL)
	assert.Equal(t, int64(1), found.ClickCount)

	// Счётчик никогда не переиспользует значения после перезапуска
	next, err := second.NextID(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, id)
}

func TestNew_MissingFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	s, err := New(path, zap.NewNop())
	require.NoError(t, err)

	_, err = s.FindActiveByCode(context.Background(), "nothing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestNew_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := New(path, zap.NewNop())
	assert.Error(t, err)
}
