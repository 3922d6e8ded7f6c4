package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
)

const DefaultPrefix = "calltracker:"

// Client is a KeyValueStore over Redis string keys. All keys live under
// prefix so Clear never touches data owned by other applications.
type Client struct {
	rdb    *redis.Client
	prefix string
	logger zerolog.Logger
}

func NewClient(addr, password string, db int, prefix string, logger zerolog.Logger) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewClientFromRedis(rdb, prefix, logger)
}

func NewClientFromRedis(rdb *redis.Client, prefix string, logger zerolog.Logger) *Client {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Client{
		rdb:    rdb,
		prefix: prefix,
		logger: logger.With().Str("component", "redis").Logger(),
	}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entity.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (c *Client) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, c.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the prefix.
func (c *Client) Clear(ctx context.Context) error {
	var cursor uint64
	removed := 0
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			removed += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug().Str("prefix", c.prefix).Int("keys", removed).Msg("redis store cleared")
	return nil
}
