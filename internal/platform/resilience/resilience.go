// Package resilience provides bounded retry with exponential backoff and the
// circuit breaker that guards the database.
package resilience

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sony/gobreaker"
)

// ErrAttemptsExhausted is returned by Retry when every attempt failed with a
// retryable error.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// RetryConfig holds retry parameters.
type RetryConfig struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	// RetryIf decides whether an error is worth another attempt. Nil retries everything.
	RetryIf func(error) bool
}

// Retry runs fn up to MaxAttempts times with exponential backoff plus jitter
// between attempts. A non-retryable error is returned immediately. When the
// attempts run out the last error is joined with ErrAttemptsExhausted.
func Retry(ctx context.Context, cfg RetryConfig, fn func(attempt int) error) error {
	attempts := max(cfg.MaxAttempts, 1)
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(lastErr) {
			return lastErr
		}

		if attempt < attempts-1 {
			if wait := backoff(cfg.InitialBackoff, attempt); wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
				}
			}
		}
	}
	return errors.Join(ErrAttemptsExhausted, lastErr)
}

func backoff(initial time.Duration, attempt int) time.Duration {
	if initial <= 0 {
		return 0
	}
	base := initial << attempt
	return base + rand.N(base/2+1)
}

// BreakerSettings configures NewCircuitBreaker.
type BreakerSettings struct {
	Name    string
	Timeout time.Duration
	// IsSuccessful classifies errors that must not trip the breaker, such as
	// business rule violations returned from inside a transaction.
	IsSuccessful func(error) bool
}

// NewCircuitBreaker creates a circuit breaker that opens once at least five
// requests were seen and 60% of them failed.
func NewCircuitBreaker(s BreakerSettings) *gobreaker.CircuitBreaker {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: s.IsSuccessful,
	})
}
