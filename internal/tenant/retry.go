// tenant/retry.go
package tenant

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryWithBackoff runs op up to maxAttempts times with exponential
// delays between attempts (initial, 2*initial, 4*initial, ...). The
// final error is returned after exhaustion. Errors wrapped in
// backoff.Permanent stop the retry immediately.
func retryWithBackoff[T any](op func() (T, error), maxAttempts uint64, initial time.Duration) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = 1 * time.Hour
	b.MaxElapsedTime = 0
	b.Reset()

	return backoff.RetryWithData(op, backoff.WithMaxRetries(b, maxAttempts-1))
}
