package service

import (
	"context"
	"time"
)

// Retry policy of the document/RPC clients. The REST binding is not
// wrapped: its requests are single-shot.
const (
	MaxRetries  = 3
	RetryPeriod = 1 * time.Second
)

// Retry invokes op up to MaxRetries times with a fixed delay between
// attempts. An application error from the remote side (any ServiceError)
// is returned immediately and never retried; transport failures exhaust
// the retry budget and surface as a single remote_unavailable error
// wrapping the last failure. This is the only place retries happen —
// higher layers must not add their own backoff.
func Retry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, NewRemoteUnavailableError("remote call aborted", ctx.Err())
			case <-time.After(RetryPeriod):
			}
		}

		v, err := op()
		if err == nil {
			return v, nil
		}
		if ToServiceError(err) != nil {
			return zero, err
		}
		lastErr = err
	}

	return zero, NewRemoteUnavailableError("remote call failed after retries", lastErr)
}

// RetryVoid is Retry for operations without a result.
func RetryVoid(ctx context.Context, op func() error) error {
	_, err := Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
