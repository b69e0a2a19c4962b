package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/supplier-directory/internal/config"
)

const (
	redisCachePrefix = "sheetcache"
	redisCacheGenKey = redisCachePrefix + ":gen"
)

// NewRedisClient connects to Redis using the provided configuration.
func NewRedisClient(cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}
	return client
}

// RedisCache keeps table snapshots in Redis with the configured TTL.
// Clear bumps a generation counter instead of scanning keys; stale
// generations age out via the TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache builds a Redis-backed Cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) key(gen int64, table string) string {
	return redisCachePrefix + ":" + strconv.FormatInt(gen, 10) + ":" + table
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, redisCacheGenKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, table string) ([]Record, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(gen, table)).Bytes()
	if err != nil {
		return nil, false
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false
	}
	return recs, true
}

func (c *RedisCache) Set(ctx context.Context, table string, recs []Record) {
	gen, err := c.generation(ctx)
	if err != nil {
		return
	}
	raw, err := json.Marshal(recs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(gen, table), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("cache set failed", zap.String("table", table), zap.Error(err))
	}
}

func (c *RedisCache) Clear(ctx context.Context) {
	if err := c.client.Incr(ctx, redisCacheGenKey).Err(); err != nil {
		c.logger.Debug("cache clear failed", zap.Error(err))
	}
}
