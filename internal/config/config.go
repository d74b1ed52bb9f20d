// Package config загружает конфигурацию приложения из флагов командной
// строки и переменных окружения. Переменные окружения имеют приоритет.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит настройки приложения.
type Config struct {
	ServerAddress   NetworkAddress `env:"SERVER_ADDRESS"`
	BaseURL         URLPrefix      `env:"BASE_URL"`
	DatabaseDSN     string         `env:"DATABASE_DSN"`
	RedisURL        string         `env:"REDIS_URL"`
	FileStoragePath string         `env:"FILE_STORAGE_PATH"`
	JWTSecret       string         `env:"JWT_SECRET"`
	CacheTTL        time.Duration  `env:"CACHE_TTL"`
}

// NewDefaultConfig возвращает конфигурацию со значениями по умолчанию.
func NewDefaultConfig() *Config {
	return &Config{
		ServerAddress: NetworkAddress{Host: "localhost", Port: 8080},
		BaseURL:       URLPrefix("http://localhost:8080"),
		JWTSecret:     "dev-secret-key",
		CacheTTL:      time.Hour,
	}
}

// Load читает конфигурацию из флагов и окружения.
func Load(args []string) (*Config, error) {
	cfg := NewDefaultConfig()

	fs := flag.NewFlagSet("shortly", flag.ContinueOnError)
	fs.Var(&cfg.ServerAddress, "a", "address to run HTTP server")
	fs.Var(&cfg.BaseURL, "b", "base URL for shortened URLs")
	fs.StringVar(&cfg.DatabaseDSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "r", "", "Redis URL for the lookup cache")
	fs.StringVar(&cfg.FileStoragePath, "f", "", "path to file storage")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "secret for signing tokens")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "cache entry TTL")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
