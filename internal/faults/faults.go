package faults

import (
	"context"
	"errors"
	"time"
)

// TransientError marks a failure that is worth retrying: network drops,
// timeouts, 5xx responses, rate limits that will clear on their own.
// Logical failures (not found, conflict, bad template) are never transient.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err (or anything it wraps) is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Retry runs fn up to attempts times, sleeping between attempts with a
// doubling backoff starting at initial. Only transient failures are retried;
// any other error is returned immediately. The last transient error is
// returned once the budget is exhausted.
func Retry(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	delay := initial
	var err error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn()
		if err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
