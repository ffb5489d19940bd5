package database

import (
	"context"
	"math/rand/v2"
	"time"

	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxAttempts  int
	BaseInterval time.Duration
	MaxInterval  time.Duration
	JitterFactor float64 // 0.0-1.0 of the backoff added at random
	// RetryConflicts also retries unique violations, for inserts that compute their own key
	RetryConflicts bool
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  5,
		BaseInterval: 100 * time.Millisecond,
		MaxInterval:  2 * time.Second,
		JitterFactor: 0.2,
	}
}

// Retrier reruns statements that failed with a transient database error,
// backing off exponentially between attempts
type Retrier struct {
	config      RetryConfig
	errorMapper *ErrorMapper
	clock       coreport.TimeProvider
	logger      coreport.Logger
}

// NewRetrier creates a new Retrier
func NewRetrier(config RetryConfig, errorMapper *ErrorMapper, clock coreport.TimeProvider, logger coreport.Logger) *Retrier {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Retrier{
		config:      config,
		errorMapper: errorMapper,
		clock:       clock,
		logger:      logger,
	}
}

// Do runs operation until it succeeds, fails permanently or the attempts run out.
// Cancellation during a backoff returns ctx.Err().
func (r *Retrier) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if !r.retryable(err) {
			return err
		}
		if attempt == r.config.MaxAttempts {
			break
		}

		backoff := r.backoff(attempt)
		r.logger.Warn("Transient database error, retrying operation", map[string]any{
			"attempt":      attempt,
			"max_attempts": r.config.MaxAttempts,
			"error":        err.Error(),
			"retry_after":  backoff.String(),
		})

		if waitErr := r.clock.Wait(ctx, coreport.Duration(backoff)); waitErr != nil {
			r.logger.Warn("Retry canceled", map[string]any{
				"attempt": attempt,
				"error":   waitErr.Error(),
			})
			return waitErr
		}
	}

	r.logger.Error("All retry attempts failed", map[string]any{
		"attempts": r.config.MaxAttempts,
		"error":    err.Error(),
	})
	return err
}

func (r *Retrier) retryable(err error) bool {
	if r.errorMapper.IsTransient(err) {
		return true
	}
	return r.config.RetryConflicts && r.errorMapper.IsUniqueViolation(err)
}

// backoff doubles the base interval per attempt, capped at MaxInterval, plus jitter
func (r *Retrier) backoff(attempt int) time.Duration {
	backoff := r.config.BaseInterval << uint(attempt-1)
	if backoff > r.config.MaxInterval || backoff <= 0 {
		backoff = r.config.MaxInterval
	}
	if r.config.JitterFactor > 0 {
		backoff += time.Duration(float64(backoff) * r.config.JitterFactor * rand.Float64())
	}
	return backoff
}
