package xredis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get if the key doesn't exist.
var ErrNotFound = errors.New("redis key not found")

type Client interface {
	Exist(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Single object
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context, addr string) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}

///// COMMON FEATURE
func (c *client) Keys(ctx context.Context, pattern string) ([]string, error) {
	return c.redisClient.Keys(ctx, pattern).Result()
}

func (c *client) Exist(ctx context.Context, key string) (bool, error) {
	n, err := c.redisClient.Exists(ctx, key).Uint64()
	if err != nil {
		return false, err
	}

	return n == 1, nil
}

func (c *client) Del(ctx context.Context, key ...string) error {
	if len(key) == 0 {
		return nil
	}

	err := c.redisClient.Del(ctx, key...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}

///// SINGLE OBJECT
func (c *client) Get(ctx context.Context, key string) (string, error) {
	value, err := c.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}

	return value, err
}

func (c *client) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.redisClient.Set(ctx, key, value, ttl).Err()
}
