// Package retry implements bounded retries with exponential backoff and
// error classification shared by the fetch and search clients.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Retryable HTTP status codes: transient server errors and rate limiting.
var retryableStatusCodes = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

const (
	backoffMin = 2 * time.Second
	backoffMax = 10 * time.Second
)

// StatusError is an HTTP response with a non-success status code
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// AuthError indicates an API rejected our credentials. Never retried.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// IsRetryable determines if an error is transient and worth retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return retryableStatusCodes[statusErr.Code]
	}

	// Transient network errors
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return false
}

// Classify maps an error to a human-readable category for error records
func Classify(err error) string {
	if err == nil {
		return "Unknown"
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return "Auth Failure"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == 429:
			return "Rate Limiting"
		case statusErr.Code == 401 || statusErr.Code == 403:
			return "Auth Failure"
		default:
			return "API Error"
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "Timeout"
		}
		return "Transient Network"
	}

	return "Unknown"
}

// Do calls fn up to maxAttempts times, backing off exponentially between
// attempts (2s minimum, 10s cap). Non-retryable errors return immediately.
func Do(ctx context.Context, maxAttempts int, fn func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		if !IsRetryable(err) || attempt == maxAttempts {
			return err
		}

		delay := backoffMin << (attempt - 1)
		if delay > backoffMax {
			delay = backoffMax
		}

		slog.Warn("retrying after error",
			"attempt", attempt,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return err
}
