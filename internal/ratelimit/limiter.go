// Package ratelimit provides per-IP request limiting: Redis-backed when a
// Redis URL is configured (so limits hold across replicas), with an
// in-memory token-bucket fallback otherwise or when Redis is unreachable.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration
type Config struct {
	RequestsPerMin int
	Burst          int
}

// DefaultConfig returns default rate limiting configuration
func DefaultConfig() Config {
	return Config{
		RequestsPerMin: 60,
		Burst:          10,
	}
}

// Result represents the outcome of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter limits requests per client IP
type RateLimiter struct {
	config       Config
	redisLimiter *redis_rate.Limiter

	fallback      map[string]*rate.Limiter
	fallbackSeen  map[string]time.Time
	fallbackMutex sync.Mutex
}

// NewRateLimiter creates a limiter. redisURL may be empty, in which case only
// the in-memory fallback is used.
func NewRateLimiter(redisURL string, config Config) *RateLimiter {
	rl := &RateLimiter{
		config:       config,
		fallback:     make(map[string]*rate.Limiter),
		fallbackSeen: make(map[string]time.Time),
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("Invalid Redis URL, using in-memory rate limiting", "error", err)
		} else {
			rl.redisLimiter = redis_rate.NewLimiter(redis.NewClient(opts))
			slog.Info("Redis rate limiter initialized")
		}
	} else {
		slog.Info("Redis not configured, using in-memory rate limiting")
	}

	go rl.cleanupFallback()

	return rl
}

// Allow checks whether the given IP may make a request now
func (rl *RateLimiter) Allow(ctx context.Context, ip string) Result {
	if rl.redisLimiter != nil {
		res, err := rl.redisLimiter.Allow(ctx, "ratelimit:ip:"+ip,
			redis_rate.Limit{
				Rate:   rl.config.RequestsPerMin,
				Period: time.Minute,
				Burst:  rl.config.Burst,
			})
		if err == nil {
			return Result{
				Allowed:    res.Allowed > 0,
				Remaining:  res.Remaining,
				RetryAfter: res.RetryAfter,
			}
		}
		slog.Warn("Redis rate limit check failed, falling back to in-memory", "error", err)
	}

	return rl.allowFallback(ip)
}

func (rl *RateLimiter) allowFallback(ip string) Result {
	rl.fallbackMutex.Lock()
	limiter, ok := rl.fallback[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(rl.config.RequestsPerMin)/60), rl.config.Burst)
		rl.fallback[ip] = limiter
	}
	rl.fallbackSeen[ip] = time.Now()
	rl.fallbackMutex.Unlock()

	if limiter.Allow() {
		return Result{Allowed: true, Remaining: int(limiter.Tokens())}
	}
	return Result{Allowed: false, RetryAfter: time.Second}
}

// cleanupFallback drops in-memory limiters for IPs idle longer than an hour
func (rl *RateLimiter) cleanupFallback() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-time.Hour)
		rl.fallbackMutex.Lock()
		for ip, seen := range rl.fallbackSeen {
			if seen.Before(cutoff) {
				delete(rl.fallback, ip)
				delete(rl.fallbackSeen, ip)
			}
		}
		rl.fallbackMutex.Unlock()
	}
}
