package httputil

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// ipRateLimiterStore holds per-IP rate limiters.
type ipRateLimiterStore struct {
	limiters sync.Map // map[string]*ipRateLimiterEntry
	rps      float64
	burst    int
}

type ipRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// IPRateLimitMiddleware enforces a token bucket per client IP on unauthenticated
// endpoints such as login, password reset and the contact form. scope names the
// endpoint group in logs.
//
// Stale limiters are evicted by a background goroutine that exits when ctx is done.
// Rejected requests get 429 with a Retry-After header.
func IPRateLimitMiddleware(
	ctx context.Context,
	scope string,
	rps float64,
	burst int,
	logger *slog.Logger,
) gin.HandlerFunc {
	store := &ipRateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, limiterCleanupInterval, limiterIdleTimeout)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP, time.Now())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			if logger != nil {
				logger.Debug("rate limit exceeded",
					slog.String("scope", scope),
					slog.String("client_ip", clientIP),
					slog.Int("retry_after", retryAfter))
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Too many requests from this IP. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

func (s *ipRateLimiterStore) getLimiter(ip string, now time.Time) *rate.Limiter {
	if val, ok := s.limiters.Load(ip); ok {
		entry := val.(*ipRateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &ipRateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(ip, entry)
	return actual.(*ipRateLimiterEntry).limiter
}

func (s *ipRateLimiterStore) evictIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*ipRateLimiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle {
			s.limiters.Delete(key)
		}
		return true
	})
}

func (s *ipRateLimiterStore) cleanupStale(ctx context.Context, interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.evictIdle(now.Add(-idleTimeout))
		}
	}
}
