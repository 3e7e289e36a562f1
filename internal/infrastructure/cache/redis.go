package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

const (
	keyPrefix = "jala:cache:"
	tagPrefix = "jala:tag:"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisCache(ctx context.Context, addr, password string, ttl time.Duration, log logger.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client, ttl: ttl, logger: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		c.logger.Error("cache get failed", "key", key, "error", err)
		return nil, false, err
	}
	return raw, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, tags ...string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyPrefix+key, value, c.ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagPrefix+tag, keyPrefix+key)
			pipe.Expire(ctx, tagPrefix+tag, 2*c.ttl)
		}
		return nil
	})
	if err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
	return err
}

func (c *RedisCache) EvictByTag(ctx context.Context, tag string) error {
	keys, err := c.client.SMembers(ctx, tagPrefix+tag).Result()
	if err != nil {
		c.logger.Error("cache tag lookup failed", "tag", tag, "error", err)
		return err
	}
	keys = append(keys, tagPrefix+tag)
	if err = c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache evict failed", "tag", tag, "error", err)
		return err
	}
	c.logger.Debug("cache tag evicted", "tag", tag, "keys", len(keys)-1)
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
