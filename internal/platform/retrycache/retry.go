// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retrycache

import (
	"context"
	"time"
)

// # Retry Policy

// Policy controls how a remote call is attempted.
//
// MaxRetries is the total attempt budget, not the number of extra attempts.
// After failed attempt i (i < MaxRetries) the wait is BaseDelay × i, so the
// backoff is linear with no jitter and no cap.
type Policy struct {
	// MaxRetries is the total number of attempts. Values below 1 mean 1.
	MaxRetries int

	// BaseDelay is multiplied by the attempt number to get the wait.
	BaseDelay time.Duration

	// IsRetryable classifies a failure. Nil means every failure is retryable.
	IsRetryable func(error) bool

	// Sleep waits between attempts. Nil means a timer that honours ctx.
	Sleep func(ctx context.Context, delay time.Duration) error

	// OnAttemptFailed is invoked after every failed attempt (for logging).
	OnAttemptFailed func(attempt int, err error)
}

// Retry executes fn until it succeeds or the attempt budget is spent.
//
// The error of the final attempt is returned unchanged. A failure rejected by
// IsRetryable is returned immediately. If the context is cancelled during a
// backoff wait, the context error is returned.
func Retry(ctx context.Context, policy Policy, fn func(context.Context) error) error {
	attempts := policy.attempts()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if policy.OnAttemptFailed != nil {
			policy.OnAttemptFailed(attempt, err)
		}

		if attempt == attempts || !policy.retryable(err) {
			break
		}

		if err := policy.sleep(ctx, policy.BaseDelay*time.Duration(attempt)); err != nil {
			return err
		}
	}

	return lastErr
}

// WorstCaseDelay is the total time spent waiting when every attempt fails.
func (policy Policy) WorstCaseDelay() time.Duration {
	n := policy.attempts()
	return policy.BaseDelay * time.Duration(n*(n-1)/2)
}

func (policy Policy) attempts() int {
	if policy.MaxRetries < 1 {
		return 1
	}
	return policy.MaxRetries
}

func (policy Policy) retryable(err error) bool {
	if policy.IsRetryable == nil {
		return true
	}
	return policy.IsRetryable(err)
}

func (policy Policy) sleep(ctx context.Context, delay time.Duration) error {
	if policy.Sleep != nil {
		return policy.Sleep(ctx, delay)
	}
	return SleepContext(ctx, delay)
}

// SleepContext blocks for delay or until ctx is done.
func SleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
