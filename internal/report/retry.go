package report

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// RetryConfig controls the backoff applied to flaky downloads.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Factor      float64
	Jitter      float64
}

// DefaultRetryConfig returns the default download retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:  3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     10 * time.Second,
		Factor:      2.0,
		Jitter:      0.1,
	}
}

// retryableFunc reports via the bool return whether a failure is worth
// retrying.
type retryableFunc func(ctx context.Context) (retryable bool, err error)

// withRetry runs fn with exponential backoff and jitter. Non-retryable
// failures return immediately.
func withRetry(ctx context.Context, config *RetryConfig, fn retryableFunc) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	var err error
	var retryable bool
	wait := config.InitialWait

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		retryable, err = fn(ctx)
		if err == nil {
			return nil
		}

		if !retryable {
			return err
		}

		if attempt == config.MaxRetries {
			return fmt.Errorf("max retries exceeded: %w", err)
		}

		jitter := 1.0 + (config.Jitter * (2*rand.Float64() - 1))
		wait = time.Duration(float64(wait) * config.Factor * jitter)
		if wait > config.MaxWait {
			wait = config.MaxWait
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return err
}
