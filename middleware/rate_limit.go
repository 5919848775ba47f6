package middleware

import (
	"html"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"turn2law_web/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the burst size: how many requests a fresh client may make at once
	Requests int
	// Window is the time it takes to refill a full bucket of Requests
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is shown when the limit is exceeded. It may be an i18n key.
	Message string
	// HXTarget, when set, retargets htmx requests so the message lands in
	// that element instead of replacing the triggering one
	HXTarget string
}

type rateLimitEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key
type RateLimiter struct {
	config    RateLimitConfig
	store     map[string]*rateLimitEntry
	mu        sync.Mutex
	now       func() time.Time
	nextSweep time.Time
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	if config.Requests < 1 {
		config.Requests = 1
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	return &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
		now:    time.Now,
	}
}

func (rl *RateLimiter) every() rate.Limit {
	return rate.Every(rl.config.Window / time.Duration(rl.config.Requests))
}

// allow takes a token for key. When the bucket is empty it returns false
// and how long until the next token.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.store[key]
	if !ok {
		entry = &rateLimitEntry{limiter: rate.NewLimiter(rl.every(), rl.config.Requests)}
		rl.store[key] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops buckets idle for longer than a full window. They would be
// full again anyway. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Before(rl.nextSweep) {
		return
	}
	for key, entry := range rl.store {
		if now.Sub(entry.lastSeen) > rl.config.Window {
			delete(rl.store, key)
		}
	}
	rl.nextSweep = now.Add(rl.config.Window)
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryAfter := rl.allow(rl.config.KeyFunc(c))
			if ok {
				return next(c)
			}

			c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			message := i18n.T(c.Request().Context(), rl.config.Message)
			if c.Request().Header.Get("HX-Request") == "true" {
				if rl.config.HXTarget != "" {
					c.Response().Header().Set("HX-Retarget", rl.config.HXTarget)
					c.Response().Header().Set("HX-Reswap", "innerHTML")
				}
				return c.HTML(http.StatusTooManyRequests, `<div class="alert alert-error" role="alert"><span>`+html.EscapeString(message)+`</span></div>`)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, message)
		}
	}
}

// NewWaitlistRateLimiter limits waitlist submissions per IP. Rejections
// render into the form's notice slot.
func NewWaitlistRateLimiter(requests int, window time.Duration) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Requests: requests,
		Window:   window,
		Message:  "waitlist.error.rate_limited",
		HXTarget: "#waitlist-notice",
	})
}
