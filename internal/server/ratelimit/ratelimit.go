// Package ratelimit throttles dashboard clients with per-endpoint token
// buckets. The login endpoint carries the tightest budget since it is the
// only surface that accepts password guesses; entry appends and batch
// normalization get moderate write budgets, and reads share the default.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket. Tokens refill continuously at rate per second up
// to capacity, and each admitted request consumes one.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64 // tokens per second
	tokens   float64
	filledAt time.Time
}

func newBucket(capacity int, rate float64) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		filledAt: time.Now(),
	}
}

// take refills the bucket for the elapsed time, then consumes one token if
// available. remaining and reset describe the bucket after the attempt;
// reset is when the bucket would be full again.
func (b *bucket) take() (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.filledAt).Seconds()*b.rate)
	b.filledAt = now

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	reset = now
	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.rate
		reset = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, int(b.tokens), reset
}

// Info describes the rate limit state reported back to the client.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Exempt          map[string]bool // clients never limited, e.g. localhost
	EndpointConfigs []EndpointConfig
}

// clientBucket pairs a bucket with the last time its client was seen, so
// idle buckets can be pruned.
type clientBucket struct {
	bucket   *bucket
	lastSeen time.Time
}

// Limiter hands out one bucket per client and endpoint and prunes the ones a
// client has not touched for a while.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	config  *Config
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a rate limiter with the given configuration. A nil
// config enables limiting with the dashboard defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			EndpointConfigs: DefaultEndpointConfigs(),
		}
	}

	l := &Limiter{
		clients: make(map[string]*clientBucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.ticker = time.NewTicker(config.CleanupInterval)
		l.stop = make(chan struct{})
		go l.pruneLoop()
	}

	return l
}

// Allow reports whether a request from the given client may proceed against
// the endpoint, along with the limit state for the response headers.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Exempt[clientID] {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}

	// Unlimited endpoint, e.g. the health check.
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + " " + method + " " + endpoint
	allowed, remaining, reset := l.bucketFor(key, endpointConfig).take()

	info := Info{
		Allowed:   allowed,
		Limit:     endpointConfig.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		if retryAfter := time.Until(reset); retryAfter > 0 {
			info.RetryAfter = retryAfter
		}
	}
	return allowed, info
}

// bucketFor returns the bucket for a client+endpoint key, creating it sized
// to the endpoint's burst (or its limit) on first use.
func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	cb, ok := l.clients[key]
	if !ok {
		capacity := ec.Burst
		if capacity <= 0 {
			capacity = ec.Limit
		}
		cb = &clientBucket{bucket: newBucket(capacity, float64(ec.Limit)/ec.Window.Seconds())}
		l.clients[key] = cb
	}
	cb.lastSeen = time.Now()
	return cb.bucket
}

func (l *Limiter) pruneLoop() {
	for {
		select {
		case <-l.ticker.C:
			l.prune()
		case <-l.stop:
			return
		}
	}
}

// prune drops buckets whose client has been idle for over an hour.
func (l *Limiter) prune() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, cb := range l.clients {
		if cb.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Stop stops the prune goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
