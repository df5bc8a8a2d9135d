// Package retry wraps cenkalti/backoff with a small attempt-bounded API.
//
// Callers provide the operation, a Config bounding the attempts and delays,
// and a predicate deciding which failures are worth retrying. Non-retryable
// failures surface immediately.
package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config bounds the retry behavior.
type Config struct {
	MaxAttempts  uint64        // total attempts, including the first
	InitialDelay time.Duration // delay before the first retry
	MaxDelay     time.Duration // ceiling for a single backoff interval
}

// DefaultConfig matches the schedule API defaults: 4 attempts starting at 1s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  4,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
	}
}

// Retryable reports whether an error is transient and worth another attempt.
type Retryable func(error) bool

// Do runs op, retrying with exponential backoff and jitter while retryable
// returns true. It returns nil on the first success, or the last error once
// attempts are exhausted or a non-retryable error occurs.
func Do(op func() error, cfg Config, retryable Retryable) error {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialDelay
	bo.MaxInterval = cfg.MaxDelay
	bo.MaxElapsedTime = 0 // bounded by attempts, not wall time

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(wrapped, backoff.WithMaxRetries(bo, cfg.MaxAttempts-1))
}
