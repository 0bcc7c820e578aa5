// ABOUTME: Retry utilities for API calls with exponential backoff
// ABOUTME: Shared by embedding and answer clients for consistent retry behavior
package util

import (
	"math/rand/v2"
	"net/http"
	"time"
)

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift (max 30 for safety)
	if attempt > 30 {
		attempt = 30
	}
	// Exponential: 2^attempt * base
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	// Cap at 30 seconds
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	// Add jitter: -25% to +25% using auto-seeded math/rand/v2
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// RetryPolicy describes how a remote call is retried: how many attempts are
// made, how long the base delay is, and which HTTP status codes count as
// transient. Non-retryable failures convert to errors immediately.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy returns the standard policy: 3 attempts, 2s base delay
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second}
}

// RetryableStatus reports whether an HTTP status code is transient
// (429 or any 5xx) and therefore worth another attempt
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Do runs fn up to MaxAttempts times, sleeping with exponential backoff
// between attempts. fn reports whether its failure is retryable; a
// non-retryable failure stops immediately. The last error is returned
// after the final attempt fails, never silently dropped.
func (p RetryPolicy) Do(fn func(attempt int) (retryable bool, err error)) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			time.Sleep(CalculateBackoff(p.BaseDelay, attempt))
		}

		retryable, err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return lastErr
		}
	}
	return lastErr
}
