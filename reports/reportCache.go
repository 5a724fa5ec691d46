package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/sirupsen/logrus"
)

const (
	cacheKeyPrefix     = "workshop:report:"
	cacheKeySet        = "workshop:report-keys"
	cacheGenerationKey = "workshop:report-generation"
)

// RedisCache keeps computed reports in redis under a generation counter.
// Invalidate bumps the counter, which orphans every earlier entry, and then
// drops the keys recorded in a set. Cache failures are logged and treated as
// misses.
type RedisCache struct {
	ttl    time.Duration
	logger *logrus.Logger
}

func NewRedisCache(ttl time.Duration, logger *logrus.Logger) *RedisCache {
	return &RedisCache{ttl: ttl, logger: logger}
}

func (c *RedisCache) Generation(ctx context.Context) (int64, bool) {
	generation, err := config.GetRedisCounter(ctx, cacheGenerationKey)
	if err != nil {
		c.warn("Generation", cacheGenerationKey, err)
		return 0, false
	}
	return generation, true
}

func (c *RedisCache) Get(ctx context.Context, generation int64, key string, dest any) bool {
	found, err := config.GetRedisObject(ctx, fullKey(generation, key), dest)
	if err != nil {
		c.warn("Get", key, err)
		return false
	}
	return found
}

func (c *RedisCache) Set(ctx context.Context, generation int64, key string, value any) {
	cacheKey := fullKey(generation, key)
	if err := config.SetRedisObject(ctx, cacheKey, value, c.ttl); err != nil {
		c.warn("Set", key, err)
		return
	}
	if err := config.AddRedisSet(ctx, cacheKeySet, cacheKey); err != nil {
		c.warn("Set", key, err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := config.IncrRedisCounter(ctx, cacheGenerationKey); err != nil {
		c.warn("Invalidate", cacheGenerationKey, err)
	}
	keys, err := config.GetRedisSetMembers(ctx, cacheKeySet)
	if err != nil {
		c.warn("Invalidate", cacheKeySet, err)
		return
	}
	keys = append(keys, cacheKeySet)
	if err := config.RemoveRedisKey(ctx, keys...); err != nil {
		c.warn("Invalidate", cacheKeySet, err)
	}
}

func fullKey(generation int64, key string) string {
	return fmt.Sprintf("%s%d:%s", cacheKeyPrefix, generation, key)
}

func (c *RedisCache) warn(funcName string, key string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.WithFields(logrus.Fields{
		"module":   "reports",
		"funcName": funcName,
		"key":      key,
	}).Warn("report cache: " + err.Error())
}
