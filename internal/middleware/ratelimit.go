package middleware

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RateLimitConfig defines the limit for a route or group.
type RateLimitConfig struct {
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on
}

// entry tracks request count and window end for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// RateLimiter is an in-memory fixed-window rate limiter.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	config  RateLimitConfig
	stopCh  chan struct{}
	once    sync.Once
}

// NewRateLimiter creates a rate limiter with the given config and starts its
// background cleanup. Call Stop to release it.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		entries: make(map[string]*entry),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}
	go rl.cleanup(5 * time.Minute)
	return rl
}

// hit counts one request for key and reports how many remain in the
// current window (negative once the limit is exceeded).
func (rl *RateLimiter) hit(key string) (remaining int, windowEnd time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, exists := rl.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(rl.config.Window)}
		rl.entries[key] = e
	}
	e.count++
	return rl.config.Max - e.count, e.windowEnd
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		remaining, windowEnd := rl.hit(rl.config.KeyFn(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(windowEnd.Unix(), 10))

		if remaining < 0 {
			retryAfter := int(time.Until(windowEnd).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED",
				fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter))
		}

		return c.Next()
	}
}

// allow counts one request for key and reports whether it fits the limit.
func (rl *RateLimiter) allow(key string) bool {
	remaining, _ := rl.hit(key)
	return remaining >= 0
}

// Stop ends the background cleanup loop.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, e := range rl.entries {
				if now.After(e.windowEnd) {
					delete(rl.entries, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// NewDashboardRateLimiter limits dashboard data requests per IP. Returns nil
// when perMinute is 0 (limiting disabled).
func NewDashboardRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return NewRateLimiter(RateLimitConfig{
		Max:    perMinute,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
}
