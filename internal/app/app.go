package app

import (
	"context"

	"github.com/avc-dev/shortly/internal/config"
	"github.com/avc-dev/shortly/internal/handler"
	"go.uber.org/zap"
)

// App собирает конфигурацию, логгер и зависимости сервиса.
type App struct {
	config  *config.Config
	logger  *zap.Logger
	handler *handler.Handler
	cleanup func()
}

// New создаёт приложение из аргументов командной строки и окружения.
func New(ctx context.Context, args []string) (*App, error) {
	cfg, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	h, cleanup, err := initDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		handler: h,
		cleanup: cleanup,
	}, nil
}

// Run запускает приложение и блокируется до остановки сервера.
func Run(ctx context.Context, args []string) error {
	app, err := New(ctx, args)
	if err != nil {
		return err
	}
	defer app.logger.Sync()
	defer app.cleanup()

	return app.start(ctx)
}
