package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles calls against the narrative provider API. A single
// token bucket is shared by every worker; all requests hit one endpoint, so
// there is nothing to partition by.
type Limiter struct {
	bucket *rate.Limiter
}

// NewLimiter creates a limiter. A zero or negative rate disables
// throttling.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a request may proceed or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.bucket == nil {
		return ctx.Err()
	}
	return l.bucket.Wait(ctx)
}

// Allow reports whether a request may proceed right now.
func (l *Limiter) Allow() bool {
	if l.bucket == nil {
		return true
	}
	return l.bucket.Allow()
}
