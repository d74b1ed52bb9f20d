package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultTTL - время жизни записи по умолчанию.
	DefaultTTL = time.Hour
	// opTimeout ограничивает каждую операцию с Redis, чтобы недоступный
	// бэкенд стоил запросу миллисекунды задержки, а не блокировки.
	opTimeout = 300 * time.Millisecond

	keyPrefix = "url:"
)

// Redis реализует Cache поверх Redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis создаёт кэш поверх готового клиента. Нулевой ttl
// заменяется на DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Redis) Get(ctx context.Context, code string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	url, err := c.client.Get(ctx, keyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Debug("cache get failed, treating as miss",
			zap.String("code", code),
			zap.Error(err),
		)
		return "", false
	}

	return url, true
}

func (c *Redis) Set(ctx context.Context, code, url string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, keyPrefix+code, url, c.ttl).Err(); err != nil {
		c.logger.Debug("cache set failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}
}

func (c *Redis) Invalidate(ctx context.Context, code string) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, keyPrefix+code).Err(); err != nil {
		c.logger.Debug("cache invalidate failed",
			zap.String("code", code),
			zap.Error(err),
		)
	}
}
