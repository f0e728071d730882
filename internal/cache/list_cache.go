package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"task-tracker/internal/metrics"
)

type backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uint) error
}

// ListCache keeps the full list of a resource in Redis. Reads by id go
// straight to the backend; every write drops the cached list.
type ListCache[T any] struct {
	base     backend[T]
	redis    *redis.Client
	resource string
	ttl      time.Duration
	logger   *zap.Logger
}

func NewListCache[T any](base backend[T], client *redis.Client, resource string, ttl time.Duration, logger *zap.Logger) *ListCache[T] {
	if base == nil {
		panic("cache.NewListCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &ListCache[T]{base: base, redis: client, resource: resource, ttl: ttl, logger: logger}
}

func listKey(resource string) string {
	return "tasktracker:" + resource + ":list"
}

func (c *ListCache[T]) List(ctx context.Context) ([]T, error) {
	if items, ok := c.load(ctx); ok {
		return items, nil
	}

	items, err := c.base.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, items)
	return items, nil
}

func (c *ListCache[T]) Get(ctx context.Context, id uint) (*T, error) {
	return c.base.Get(ctx, id)
}

func (c *ListCache[T]) Create(ctx context.Context, item *T) error {
	if err := c.base.Create(ctx, item); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *ListCache[T]) Update(ctx context.Context, item *T) error {
	if err := c.base.Update(ctx, item); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *ListCache[T]) Delete(ctx context.Context, id uint) error {
	if err := c.base.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *ListCache[T]) load(ctx context.Context) ([]T, bool) {
	raw, err := c.redis.Get(ctx, listKey(c.resource)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncrementCacheLookup(c.resource, "miss")
		} else {
			metrics.IncrementCacheLookup(c.resource, "error")
			c.logger.Warn("list cache read failed", zap.String("resource", c.resource), zap.Error(err))
		}
		return nil, false
	}

	items := make([]T, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		metrics.IncrementCacheLookup(c.resource, "error")
		c.logger.Warn("list cache entry corrupt", zap.String("resource", c.resource), zap.Error(err))
		return nil, false
	}
	metrics.IncrementCacheLookup(c.resource, "hit")
	return items, true
}

func (c *ListCache[T]) store(ctx context.Context, items []T) {
	payload, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("list cache encode failed", zap.String("resource", c.resource), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, listKey(c.resource), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("list cache write failed", zap.String("resource", c.resource), zap.Error(err))
	}
}

func (c *ListCache[T]) evict(ctx context.Context) {
	if err := c.redis.Del(ctx, listKey(c.resource)).Err(); err != nil {
		c.logger.Warn("list cache evict failed", zap.String("resource", c.resource), zap.Error(err))
	}
}
