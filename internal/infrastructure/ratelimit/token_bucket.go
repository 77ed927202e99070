package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket holds up to capacity tokens and regains refillRate per second
type tokenBucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastUsed   time.Time
}

func newTokenBucket(capacity, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     capacity,
		lastRefill: now,
		lastUsed:   now,
	}
}

// take consumes one token if available. Must be called with the limiter lock held.
func (b *tokenBucket) take(now time.Time) (allowed bool, remaining int) {
	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.lastRefill = now
	}
	b.lastUsed = now

	if b.tokens < 1 {
		return false, 0
	}
	b.tokens--
	return true, int(b.tokens)
}

// Limiter keeps one token bucket per client key
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*tokenBucket
	capacity    float64
	refillRate  float64
	idleTTL     time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

// NewLimiter allows bursts of capacity requests per client, refilled at refillRate per second
func NewLimiter(capacity int, refillRate float64) *Limiter {
	return &Limiter{
		buckets:     make(map[string]*tokenBucket),
		capacity:    float64(capacity),
		refillRate:  refillRate,
		idleTTL:     30 * time.Minute,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// Allow consumes a token for client and reports the tokens left
func (l *Limiter) Allow(client string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, ok := l.buckets[client]
	if !ok {
		bucket = newTokenBucket(l.capacity, l.refillRate, now)
		l.buckets[client] = bucket
	}

	allowed, remaining := bucket.take(now)
	l.evictIdle(now)
	return allowed, remaining
}

// Clients returns the number of tracked clients
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// evictIdle drops buckets unused for idleTTL, at most once per idleTTL/3
func (l *Limiter) evictIdle(now time.Time) {
	if now.Sub(l.lastCleanup) < l.idleTTL/3 {
		return
	}
	for client, bucket := range l.buckets {
		if now.Sub(bucket.lastUsed) > l.idleTTL {
			delete(l.buckets, client)
		}
	}
	l.lastCleanup = now
}
