package rpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/goran-ethernal/LendingIndexor/pkg/config"
)

// transientMarkers are fragments of error messages that providers use for
// conditions that go away on their own.
var transientMarkers = []string{
	"timeout",
	"deadline exceeded",
	"429",
	"too many requests",
	"rate limit",
	"502",
	"503",
	"504",
	"bad gateway",
	"service unavailable",
	"connection pool",
	"no available connection",
	"header not found",
}

// retryableError reports whether err is worth another attempt. A reverted call
// or an oversized log query fails the same way every time and is returned to
// the caller at once.
func retryableError(err error) bool {
	if err == nil || IsRevertError(err) {
		return false
	}
	if ok, _ := IsTooManyResultsError(err); ok {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// calculateBackoff returns the wait before attempt. The first attempt never
// waits; later ones grow by BackoffMultiplier up to MaxBackoff with ±25% jitter.
func calculateBackoff(attempt int, cfg *config.RetryConfig) time.Duration {
	if attempt <= 1 {
		return 0
	}

	backoff := math.Min(
		float64(cfg.InitialBackoff.Duration)*math.Pow(cfg.BackoffMultiplier, float64(attempt-2)),
		float64(cfg.MaxBackoff.Duration),
	)

	jitter := backoff * 0.25 * (rand.Float64()*2 - 1) //nolint:gosec
	return time.Duration(math.Max(backoff+jitter, 0))
}

// retryWithBackoff runs fn until it succeeds, fails with an error that is not
// retryable, or cfg.MaxAttempts is reached. A nil cfg runs fn once.
func retryWithBackoff(ctx context.Context, cfg *config.RetryConfig, method string, fn func() error) error {
	if cfg == nil {
		return fn()
	}

	start := time.Now()
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if wait := calculateBackoff(attempt, cfg); wait > 0 {
			RPCRetryInc(method)

			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s: cancelled while waiting for attempt %d/%d: %w",
					method, attempt, cfg.MaxAttempts, errors.Join(ctx.Err(), lastErr))
			}
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: cancelled before attempt %d/%d: %w", method, attempt, cfg.MaxAttempts, err)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !retryableError(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%s: all %d attempts failed after %v: %w",
		method, cfg.MaxAttempts, time.Since(start).Round(time.Millisecond), lastErr)
}
