package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy controls the retry/backoff behaviour (spec.md §4.J).
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultPolicy matches spec.md §4.J's stated defaults: 3 attempts, 100ms
// initial delay, 2s cap, multiplicative ×2 backoff.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, InitialDelay: 100 * time.Millisecond, MaxDelay: 2 * time.Second}
}

// Do runs fn, retrying on a Retryable-classified error per Policy with
// exponential backoff and jitter. Permanent errors are returned immediately
// without retry (spec.md §4.J). The reporter, if non-nil, is informed of
// every attempt so it can aggregate {retries, given_up, permanent,
// success_after_retry} counts (spec.md §4.J, §7).
func Do(ctx context.Context, policy Policy, reporter *Reporter, path string, fn func() error) error {
	delay := policy.InitialDelay
	if delay <= 0 {
		delay = DefaultPolicy().InitialDelay
	}
	maxAttempts := policy.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultPolicy().MaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 && reporter != nil {
				reporter.recordSuccessAfterRetry(path)
			}
			return nil
		}

		class := Classify(lastErr)
		if class == Permanent {
			if reporter != nil {
				reporter.recordPermanent(path, attempt)
			}
			return lastErr
		}

		if attempt == maxAttempts {
			if reporter != nil {
				reporter.recordGaveUp(path, attempt)
			}
			return lastErr
		}

		if reporter != nil {
			reporter.recordRetry(path, attempt)
		}

		wait := jitter(delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
	return lastErr
}

// jitter returns d plus up to 20% random jitter, to avoid thundering-herd
// retries across many concurrently-failing file operations.
func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	spread := d / 5
	if spread <= 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(spread)))
}
