package api

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	errs "github.com/sagiphub/reliefhub-go/internal/errors"
)

// Retry policy for mutating calls (create, withdraw). Reads are not retried
// inline; the polling cadence retries those for free.
const (
	retryMaxAttempts  = 4
	retryBaseInterval = 200 * time.Millisecond
	retryMaxInterval  = 5 * time.Second
)

// withRetry runs op, retrying recoverable failures with exponential backoff.
// Irrecoverable errors (4xx, credential mismatch, validation) fail
// immediately and are returned unwrapped.
func withRetry(ctx context.Context, op func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = retryBaseInterval
	exp.MaxInterval = retryMaxInterval
	exp.Reset()

	bo := backoff.WithContext(backoff.WithMaxRetries(exp, retryMaxAttempts-1), ctx)
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errs.IsRecoverable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, bo)
}
