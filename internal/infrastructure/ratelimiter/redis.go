package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisOpTimeout = 500 * time.Millisecond

// Redis keeps bucket state in Redis so several API instances share limits.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) GetterSetter {
	return &Redis{client: client}
}

func (r *Redis) Get(key string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}

	return val, nil
}

func (r *Redis) Set(key string, value int) error {
	return r.SetWithExpiration(key, value, 0)
}

func (r *Redis) SetWithExpiration(key string, value int, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	// go-redis reads a negative expiration as KEEPTTL
	if ttl < 0 {
		ttl = 0
	}

	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
