package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	maxRetries = 3
	retryDelay = time.Second
)

// HTTP responses where retrying cannot help.
var permanentStatusCodes = map[int]bool{
	400: true,
	401: true,
	403: true,
	404: true,
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// markPermanent flags an error so withRetry fails fast on it.
func markPermanent(err error) error {
	return &permanentError{err: err}
}

// withRetry runs call up to maxRetries+1 times with exponential backoff
// between attempts. A retry restarts only the single call, never the
// surrounding protocol. Permanent errors and context cancellation stop
// the loop immediately.
func withRetry(ctx context.Context, call func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := call()
		if err == nil {
			return text, nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return "", err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
	}
	return "", fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}
