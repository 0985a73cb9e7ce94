package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Sleeper waits for d or until ctx is done. Tests swap it for a fake clock.
type Sleeper func(ctx context.Context, d time.Duration) error

// RealSleep is the wall-clock Sleeper.
func RealSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryProvider is a decorator that retries transient errors according to
// a RetryConfig policy.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	sleep  Sleeper
}

// RetryOption customises a RetryProvider.
type RetryOption func(*RetryProvider)

// WithSleeper replaces the wall-clock sleeper.
func WithSleeper(s Sleeper) RetryOption {
	return func(r *RetryProvider) { r.sleep = s }
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig, opts ...RetryOption) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	r := &RetryProvider{inner: p, config: cfg, sleep: RealSleep}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if lastErr != nil && ctx.Err() != nil {
			return nil, aborted(lastErr, err)
		}
		lastErr = err

		if !r.shouldRetry(err, &invalidRetried) {
			return nil, err
		}

		// Last attempt: no sleep.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.Backoff(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return nil, aborted(lastErr, context.DeadlineExceeded)
		}
		if err := r.sleep(ctx, wait); err != nil {
			return nil, aborted(lastErr, err)
		}
	}

	return nil, lastErr
}

// aborted keeps the last provider error in the chain when the context ends
// the retry loop, so a rate limit still reads as one.
func aborted(last, cause error) error {
	return fmt.Errorf("%w (retry aborted: %w)", last, cause)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry allows transient failures and a single retry of a malformed
// reply. A rejected key or request fails immediately.
func (r *RetryProvider) shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	return IsTransient(err)
}

// Backoff computes the wait before the attempt following the given one.
// With Multiplier 1 and no jitter the schedule is fixed.
func (r *RetryProvider) Backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if r.config.MaxWait > 0 && rl.RetryAfter > r.config.MaxWait {
			return r.config.MaxWait
		}
		return rl.RetryAfter
	}

	mult := r.config.Multiplier
	if mult <= 0 {
		mult = 1
	}
	wait := float64(r.config.InitialWait) * math.Pow(mult, float64(attempt))
	if r.config.MaxWait > 0 && wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	if r.config.Jitter > 0 {
		wait += wait * r.config.Jitter * (2*rand.Float64() - 1)
	}

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
