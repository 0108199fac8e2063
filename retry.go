package plantdb

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryBaseDelay is the first Fibonacci backoff step used by Retry.
var RetryBaseDelay = 1 * time.Second

// Retry executes task with Fibonacci backoff up to 5 retries.
// If retries are exhausted, gaveUpTask is invoked (when not nil) and the final error is returned.
// Only idempotent reads (the snapshot load) go through Retry.
func Retry(ctx context.Context, task func(ctx context.Context) error, gaveUpTask func(ctx context.Context)) error {
	b := retry.NewFibonacci(RetryBaseDelay)
	if err := retry.Do(ctx, retry.WithMaxRetries(5, b), task); err != nil {
		log.Warn(err.Error() + ", gave up")
		if gaveUpTask != nil {
			gaveUpTask(ctx)
		}
		return err
	}
	return nil
}

// ShouldRetry reports whether the error is retryable (non-nil and not a known permanent failure).
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	// Context cancellations/timeouts are permanent from the caller's POV.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch CodeOf(err) {
	case InvalidRecord, DuplicateKey, NotFound, Unauthorized, EmptyQuery, InvalidFilter:
		return false
	}
	return true
}

// RetryableError marks err as retryable for Retry when ShouldRetry agrees, otherwise returns it as-is.
func RetryableError(err error) error {
	if ShouldRetry(err) {
		return retry.RetryableError(err)
	}
	return err
}
