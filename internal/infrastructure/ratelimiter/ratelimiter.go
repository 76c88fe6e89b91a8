package ratelimiter

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	bucketKeyPrefix   = "rl:bucket:"
	lastFillKeyPrefix = "rl:fill:"
	defaultSourceKey  = "X-RateLimit-Key"
	defaultCacheTTL   = 10 * time.Second
)

type Limiter interface {
	Allow(sourceKey string) bool
	GetSourceKey(r *http.Request) string
	Remaining(sourceKey string) int
	GetMaxBurst() int
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	Cache            GetterSetter
	CacheTTL         time.Duration
	SourceHeaderKey  string
	Now              func() time.Time
	// Context bounds the default in-memory cache's sweeper.
	Context context.Context
}

// RateLimiter is a token bucket per source key. Bucket state lives in the
// cache so several instances can share it through redis.
type RateLimiter struct {
	perMilli  float64
	maxBurst  int
	cache     GetterSetter
	cacheTTL  time.Duration
	sourceKey string
	now       func() time.Time

	locks sync.Map // source key -> *sync.Mutex
}

type bucket struct {
	tokens   int
	lastFill int64 // unix millis
}

func New(options Options) Limiter {
	if options.Now == nil {
		options.Now = time.Now
	}

	if options.Cache == nil {
		ctx := options.Context
		if ctx == nil {
			ctx = context.Background()
		}
		options.Cache = NewInMemory(ctx, options.Now)
	}

	if options.CacheTTL <= 0 {
		options.CacheTTL = defaultCacheTTL
	}
	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}
	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	return &RateLimiter{
		perMilli:  float64(options.MaxRatePerSecond) / 1000.0,
		maxBurst:  options.MaxBurst,
		cache:     options.Cache,
		cacheTTL:  options.CacheTTL,
		sourceKey: options.SourceHeaderKey,
		now:       options.Now,
	}
}

// Allow takes one token if there is one.
func (rl *RateLimiter) Allow(sourceKey string) bool {
	allowed := false
	rl.update(sourceKey, func(b *bucket) {
		if b.tokens > 0 {
			b.tokens--
			allowed = true
		}
	})
	return allowed
}

// Remaining reports the tokens left after refill without taking one.
func (rl *RateLimiter) Remaining(sourceKey string) int {
	var left int
	rl.update(sourceKey, func(b *bucket) { left = b.tokens })
	return left
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

// GetSourceKey uses the configured header, taking the first hop of a
// forwarded chain, and falls back to the remote address.
func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	key := r.Header.Get(rl.sourceKey)
	if key == "" {
		return r.RemoteAddr
	}

	if first, _, found := strings.Cut(key, ","); found {
		return strings.TrimSpace(first)
	}
	return key
}

// update loads the bucket, refills it, lets fn adjust it and writes it back
// when anything changed. The per-key lock makes that sequence atomic within
// this process.
func (rl *RateLimiter) update(sourceKey string, fn func(*bucket)) {
	mu := rl.lockFor(sourceKey)
	mu.Lock()
	defer mu.Unlock()

	loaded := rl.load(sourceKey)
	current := rl.refill(loaded, rl.now().UnixMilli())
	fn(&current)

	if current != loaded {
		rl.store(sourceKey, current)
	}
}

func (rl *RateLimiter) lockFor(sourceKey string) *sync.Mutex {
	mu, _ := rl.locks.LoadOrStore(sourceKey, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// load fails open: a miss or a cache error yields a full bucket.
func (rl *RateLimiter) load(sourceKey string) bucket {
	tokens, tokErr := rl.cache.Get(bucketKeyPrefix + sourceKey)
	lastFill, fillErr := rl.cache.Get(lastFillKeyPrefix + sourceKey)

	if err := errors.Join(tokErr, fillErr); err != nil {
		return bucket{tokens: rl.maxBurst, lastFill: rl.now().UnixMilli()}
	}

	return bucket{tokens: tokens, lastFill: int64(lastFill)}
}

func (rl *RateLimiter) store(sourceKey string, b bucket) {
	_ = rl.cache.SetWithExpiration(bucketKeyPrefix+sourceKey, b.tokens, rl.cacheTTL)
	_ = rl.cache.SetWithExpiration(lastFillKeyPrefix+sourceKey, int(b.lastFill), rl.cacheTTL)
}

// refill adds whole tokens for the elapsed time. lastFill only moves by
// the time those tokens cost so partial progress is kept between calls.
func (rl *RateLimiter) refill(b bucket, now int64) bucket {
	elapsed := now - b.lastFill
	if elapsed <= 0 || rl.perMilli <= 0 {
		return b
	}

	whole := math.Floor(float64(elapsed) * rl.perMilli)
	if whole < 1 {
		return b
	}

	if b.tokens+int(whole) >= rl.maxBurst {
		return bucket{tokens: rl.maxBurst, lastFill: now}
	}

	return bucket{
		tokens:   b.tokens + int(whole),
		lastFill: b.lastFill + int64(whole/rl.perMilli),
	}
}
