package serper

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// MaxRetryAfter caps how long a single 429 backoff may wait.
	MaxRetryAfter = 30 * time.Second
)

// RateLimiter throttles outgoing requests with a token bucket.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive rate disables throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{bucket: rate.NewLimiter(limit, 1)}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// retryDelay returns how long to wait before retrying a 429 response.
// attempt is zero-based.
func retryDelay(resp *http.Response, attempt int, base time.Duration) time.Duration {
	if resp != nil {
		if s := resp.Header.Get(HeaderRetryAfter); s != "" {
			if seconds, err := strconv.Atoi(s); err == nil && seconds >= 0 {
				return min(time.Duration(seconds)*time.Second, MaxRetryAfter)
			}
		}
	}
	return min(base<<attempt, MaxRetryAfter)
}
