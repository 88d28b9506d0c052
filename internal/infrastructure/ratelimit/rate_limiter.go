package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a refilling token bucket guarding one key.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// RateLimiter keeps one bucket per key (here: wallet address).
type RateLimiter struct {
	buckets    map[string]*TokenBucket
	maxTokens  int
	refillRate int
	refillTime time.Duration
	mutex      sync.RWMutex
}

func NewRateLimiter(maxTokens, refillRate int, refillTime time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*TokenBucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
	}
}

func newTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token for the key if one is available and reports the
// wait time until the next token otherwise.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mutex.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = newTokenBucket(rl.maxTokens, rl.refillRate, rl.refillTime)
		rl.buckets[key] = bucket
	}
	rl.mutex.Unlock()

	return bucket.allow()
}

func (tb *TokenBucket) allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()

	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	nextRefill := tb.lastRefill.Add(tb.refillTime)
	return false, nextRefill.Sub(now)
}

// Cleanup drops buckets idle for several refill windows, to bound memory.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		idle := time.Since(bucket.lastRefill) > 10*bucket.refillTime
		bucket.mutex.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
}
