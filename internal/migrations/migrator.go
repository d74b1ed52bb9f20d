package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed schema/*.sql
var migrationFiles embed.FS

// Migrator применяет миграции схемы, зашитые в бинарник.
type Migrator struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMigrator(db *sql.DB, logger *zap.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "schema")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return instance, nil
}

// RunUp применяет все неприменённые миграции.
func (m *Migrator) RunUp() error {
	m.logger.Info("starting database migrations")

	instance, err := m.instance()
	if err != nil {
		return err
	}
	defer instance.Close()

	err = instance.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logger.Info("migrations applied successfully")
	return nil
}

// Version возвращает текущую версию схемы.
func (m *Migrator) Version() (uint, bool, error) {
	instance, err := m.instance()
	if err != nil {
		return 0, false, err
	}
	defer instance.Close()

	return instance.Version()
}
