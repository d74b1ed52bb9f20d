package app

import (
	"context"
	"fmt"

	"github.com/avc-dev/shortly/internal/cache"
	"github.com/avc-dev/shortly/internal/config"
	"github.com/avc-dev/shortly/internal/config/db"
	"github.com/avc-dev/shortly/internal/handler"
	"github.com/avc-dev/shortly/internal/migrations"
	"github.com/avc-dev/shortly/internal/service"
	"github.com/avc-dev/shortly/internal/store"
	"github.com/avc-dev/shortly/internal/store/filestore"
	"github.com/avc-dev/shortly/internal/store/memory"
	"github.com/avc-dev/shortly/internal/store/postgres"
	"github.com/avc-dev/shortly/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// initDependencies инициализирует все зависимости приложения.
// Возвращённая функция освобождает подключения при остановке.
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*handler.Handler, func(), error) {
	storage, closeStorage, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	lookupCache, closeCache := initCache(cfg, logger)

	authService := service.NewAuthService(storage, cfg.JWTSecret)
	codeGenerator := service.NewCodeGenerator(storage)
	shortener := usecase.New(storage, lookupCache, codeGenerator, authService, cfg, logger)
	h := handler.New(shortener, logger)

	cleanup := func() {
		closeCache()
		closeStorage()
	}

	return h, cleanup, nil
}

// initStorage выбирает хранилище: PostgreSQL при заданном DSN,
// файловое при заданном пути, иначе память.
func initStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, func(), error) {
	switch {
	case cfg.DatabaseDSN != "":
		database, err := db.NewConfig(cfg.DatabaseDSN).Connect(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := migrations.NewMigrator(database.DB(), logger).RunUp(); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		logger.Info("using postgres storage")
		return postgres.New(database.DB(), logger), database.Close, nil

	case cfg.FileStoragePath != "":
		fileStore, err := filestore.New(cfg.FileStoragePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file store: %w", err)
		}

		logger.Info("using file storage", zap.String("path", cfg.FileStoragePath))
		return fileStore, func() {}, nil

	default:
		logger.Info("using in-memory storage")
		return memory.New(), func() {}, nil
	}
}

// initCache подключает Redis, если он настроен. Без Redis кэш
// вырождается в заглушку, сервис полностью работоспособен.
func initCache(cfg *config.Config, logger *zap.Logger) (cache.Cache, func()) {
	if cfg.RedisURL == "" {
		return cache.NewNoop(), func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid redis URL, cache disabled", zap.Error(err))
		return cache.NewNoop(), func() {}
	}

	client := redis.NewClient(opts)
	logger.Info("using redis lookup cache", zap.String("addr", opts.Addr))

	return cache.NewRedis(client, cfg.CacheTTL, logger), func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}
