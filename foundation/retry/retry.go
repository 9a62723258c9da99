// Package retry runs operations against flaky collaborators (the Redis
// recent-lookups store, startup pings) with bounded backoff.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/vortex-fintech/go-iban/foundation/iban"
)

// Policy describes how an operation is retried.
type Policy struct {
	Name string

	// Exponential backoff; used when Attempts is zero.
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	Randomization   float64
	MaxElapsed      time.Duration

	// Fixed-delay retries; used when Attempts > 0.
	Attempts int
	Delay    time.Duration
}

var (
	// Init is meant for startup dependencies: a few seconds of patience.
	Init = Policy{
		Name:            "init",
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      2.0,
		MaxInterval:     5 * time.Second,
		Randomization:   0.5,
		MaxElapsed:      20 * time.Second,
	}

	// Fast is meant for request paths.
	Fast = Policy{
		Name:     "fast",
		Attempts: 3,
		Delay:    200 * time.Millisecond,
	}
)

// PermanentError wraps a non-retryable error.
type PermanentError struct {
	err error
}

func (e PermanentError) Error() string {
	if e.err == nil {
		return "permanent error"
	}
	return e.err.Error()
}

func (e PermanentError) Unwrap() error { return e.err }

// Permanent marks an error as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	if IsPermanent(err) {
		return err
	}
	return PermanentError{err: err}
}

// IsPermanent reports whether err must not be retried. Besides explicitly
// marked errors this covers context errors and IBAN validation failures,
// which give the same answer on every attempt.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	var pe PermanentError
	if errors.As(err, &pe) {
		return true
	}
	var bpe *backoff.PermanentError
	if errors.As(err, &bpe) {
		return true
	}
	return errors.Is(err, iban.ErrInvalid) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Do runs fn under p until it succeeds, returns a permanent error, or the
// policy or ctx gives up.
func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	if p.Attempts > 0 {
		return doFixed(ctx, p, fn)
	}
	return doExponential(ctx, p, fn)
}

// RetryInit retries fn with the Init policy.
func RetryInit(ctx context.Context, fn func() error) error {
	return Do(ctx, Init, func(context.Context) error { return fn() })
}

// RetryFast retries fn with the Fast policy.
func RetryFast(ctx context.Context, fn func() error) error {
	return Do(ctx, Fast, func(context.Context) error { return fn() })
}

func doExponential(ctx context.Context, p Policy, fn func(context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.InitialInterval
	exp.Multiplier = p.Multiplier
	exp.MaxInterval = p.MaxInterval
	exp.RandomizationFactor = p.Randomization
	exp.Reset()

	type unit struct{}
	op := func() (unit, error) {
		if err := ctx.Err(); err != nil {
			return unit{}, backoff.Permanent(err)
		}
		err := fn(ctx)
		if err != nil && IsPermanent(err) {
			var bpe *backoff.PermanentError
			if errors.As(err, &bpe) {
				return unit{}, err
			}
			return unit{}, backoff.Permanent(err)
		}
		return unit{}, err
	}

	opts := []backoff.RetryOption{backoff.WithBackOff(exp)}
	if p.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(p.MaxElapsed))
	}
	_, err := backoff.Retry(ctx, op, opts...)
	return err
}

func doFixed(ctx context.Context, p Policy, fn func(context.Context) error) error {
	var err error
	for i := 0; i < p.Attempts; i++ {
		if err = ctx.Err(); err != nil {
			return err
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if IsPermanent(err) {
			return err
		}
		if i == p.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}
	return err
}
