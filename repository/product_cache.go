package repository

import (
	"context"
	"encoding/json"
	"time"

	"checkout-service/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productCachePrefix = "product:detail:"

// CachedProductRepository is a read-through Redis cache in front of the
// catalog. It serves the advisory product lookups made while building a cart;
// the checkout transaction never reads through it, so a stale entry can only
// ever produce a friendlier early rejection, never an oversell. Entries are
// dropped after checkout decrements stock.
type CachedProductRepository struct {
	inner  ProductRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProductRepository wraps inner with a Redis cache.
func NewCachedProductRepository(inner ProductRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, redis: client, ttl: ttl, logger: logger}
}

func (c *CachedProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := productCachePrefix + id.String()

	if data, err := c.redis.Get(ctx, key).Result(); err == nil {
		var p models.Product
		if err := json.Unmarshal([]byte(data), &p); err == nil {
			return &p, nil
		}
		c.logger.Warn("Dropping unreadable product cache entry", zap.String("key", key))
		c.redis.Del(ctx, key)
	}

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache product", zap.String("key", key), zap.Error(err))
		}
	}
	return p, nil
}

// Invalidate drops cache entries for the given products. Called after a
// checkout commit changes their stock. Best-effort: TTL bounds staleness if
// Redis is unreachable.
func (c *CachedProductRepository) Invalidate(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productCachePrefix+id.String())
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}
