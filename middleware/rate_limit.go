package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"didimdol_landing_go/models"
	"didimdol_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// MessageKey is the i18n key of the message returned when the limit is exceeded
	MessageKey string
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window limiter shared by the routes it wraps
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.Mutex
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.MessageKey == "" {
		config.MessageKey = "api.rate_limited"
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
		now:    time.Now,
	}

	go rl.cleanup()

	return rl
}

// Allow records a hit for key and reports whether it is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	entry, exists := rl.store[key]
	if !exists || now.After(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(rl.config.Window),
		}
		return true
	}

	if entry.count >= rl.config.Requests {
		return false
	}
	entry.count++
	return true
}

// Middleware returns the rate limiting middleware.
// JSON callers get a {"error": ...} body; form posts get an HTTP error
// rendered by the server's error handler.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(rl.config.KeyFunc(c)) {
				return next(c)
			}

			msg := i18n.T(c.Request().Context(), rl.config.MessageKey)
			c.Response().Header().Set("Retry-After", retryAfter(rl.config.Window))
			if WantsJSON(c) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: msg})
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, msg)
		}
	}
}

// Len returns the number of tracked keys
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.store)
}

// sweep drops expired entries
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, entry := range rl.store {
		if now.After(entry.expiresAt) {
			delete(rl.store, key)
		}
	}
}

// cleanup removes expired entries every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		rl.sweep()
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// WantsJSON reports whether the caller expects a JSON error body:
// anything under /api or a request that accepts or sends JSON.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.HasPrefix(req.URL.Path, "/api/") {
		return true
	}
	if strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		return true
	}
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

// PublicFormRateLimiter limits consultation submissions to 10 per minute per IP.
// It wraps both the JSON relay and the form fallback, so they share one budget.
var PublicFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests:   10,
	Window:     1 * time.Minute,
	MessageKey: "api.rate_limited",
})
