package download

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Retry defaults for the stream query
const (
	DefaultMaxAttempts  = 5
	DefaultRetryBackoff = 500 * time.Millisecond
)

// RetryPolicy bounds how often a transient failure is retried
type RetryPolicy struct {
	// MaxAttempts counts the first call; values below 1 mean one attempt.
	MaxAttempts int

	// Retryable selects the errors worth another attempt. Nil retries nothing.
	Retryable func(error) bool

	// Backoff builds the delay schedule for one Do call. Nil means no delay.
	Backoff func() backoff.BackOff
}

// DefaultRetryPolicy retries ErrStreamingDataMissing up to five attempts
// with a constant delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		Retryable:   IsStreamingDataMissing,
		Backoff: func() backoff.BackOff {
			return backoff.NewConstantBackOff(DefaultRetryBackoff)
		},
	}
}

// IsStreamingDataMissing reports whether err is the transient stream query failure
func IsStreamingDataMissing(err error) bool {
	return errors.Is(err, ErrStreamingDataMissing)
}

// Do calls op until it succeeds, fails with a non-retryable error, or the
// attempts run out. It returns the number of attempts made and the last error.
func (p RetryPolicy) Do(ctx context.Context, logger *zap.Logger, op func() error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var schedule backoff.BackOff = &backoff.ZeroBackOff{}
	if p.Backoff != nil {
		schedule = p.Backoff()
	}
	schedule = backoff.WithContext(backoff.WithMaxRetries(schedule, uint64(maxAttempts-1)), ctx)

	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		err := op()
		if err != nil && !p.retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, schedule, func(err error, next time.Duration) {
		logger.Debug("retrying",
			zap.Int("attempt", attempts),
			zap.Int("max_attempts", maxAttempts),
			zap.Duration("next", next),
			zap.Error(err),
		)
	})
	return attempts, err
}

func (p RetryPolicy) retryable(err error) bool {
	return p.Retryable != nil && p.Retryable(err)
}
