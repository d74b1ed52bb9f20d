package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// start запускает HTTP-сервер и корректно останавливает его
// при отмене контекста.
func (a *App) start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.ServerAddress.String(),
		Handler: newRouter(a.handler, a.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("address", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("graceful shutdown failed", zap.Error(err))
		return server.Close()
	}

	return nil
}
