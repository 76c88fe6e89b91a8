package ratelimiter

import (
	"errors"
	"time"
)

// ErrCacheMiss means the key is absent or expired. The limiter treats it as a
// fresh, full bucket.
var ErrCacheMiss = errors.New("ratelimiter: cache miss")

// GetterSetter stores bucket state as integers under string keys. Both the
// in-memory and the redis store must be safe for concurrent use.
type GetterSetter interface {
	Get(key string) (int, error)
	// Set stores value without expiry.
	Set(key string, value int) error
	// SetWithExpiration stores value for ttl; a ttl <= 0 behaves like Set.
	SetWithExpiration(key string, value int, ttl time.Duration) error
	Close() error
}

var (
	_ GetterSetter = (*InMemory)(nil)
	_ GetterSetter = (*Redis)(nil)
)
