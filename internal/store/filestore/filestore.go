// Package filestore добавляет к хранилищу в памяти сохранение состояния
// в JSON-файл: снапшот записывается после каждой мутации и загружается
// при старте, поэтому ссылки и значение счётчика переживают перезапуск.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/avc-dev/shortly/internal/model"
	"github.com/avc-dev/shortly/internal/store/memory"
	"go.uber.org/zap"
)

// Store оборачивает memory.Store и сериализует его состояние в файл.
type Store struct {
	*memory.Store

	path   string
	logger *zap.Logger
	saveMu sync.Mutex
}

// New загружает состояние из файла (если он существует) и возвращает
// готовое хранилище.
func New(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		Store:  memory.New(),
		path:   path,
		logger: logger,
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load file store: %w", err)
	}

	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var snap memory.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	s.Store.Restore(&snap)
	return nil
}

// persist записывает полный снапшот на диск. Ошибка записи логируется,
// но не прерывает уже применённую операцию.
func (s *Store) persist() {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := json.MarshalIndent(s.Store.Snapshot(), "", "  ")
	if err != nil {
		s.logger.Error("failed to marshal store snapshot", zap.Error(err))
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Error("failed to write store snapshot",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}
}

func (s *Store) CreateLink(ctx context.Context, link *model.ShortLink) error {
	if err := s.Store.CreateLink(ctx, link); err != nil {
		return err
	}
	s.persist()
	return nil
}

func (s *Store) IncrementClicks(ctx context.Context, linkID int64) (int64, error) {
	count, err := s.Store.IncrementClicks(ctx, linkID)
	if err != nil {
		return 0, err
	}
	s.persist()
	return count, nil
}

func (s *Store) SoftDelete(ctx context.Context, linkID int64) error {
	if err := s.Store.SoftDelete(ctx, linkID); err != nil {
		return err
	}
	s.persist()
	return nil
}

func (s *Store) RecordClick(ctx context.Context, event *model.ClickEvent) error {
	if err := s.Store.RecordClick(ctx, event); err != nil {
		return err
	}
	s.persist()
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return err
	}
	s.persist()
	return nil
}

func (s *Store) NextID(ctx context.Context) (int64, error) {
	id, err := s.Store.NextID(ctx)
	if err != nil {
		return 0, err
	}
	s.persist()
	return id, nil
}
