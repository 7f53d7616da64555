package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
)

// Policy is the retry budget for a single call.
type Policy struct {
	// MaxAttempts is the total number of invocations, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// Delay is the fixed pause between consecutive attempts.
	Delay time.Duration
}

// ExhaustedError is returned when every attempt of the budget failed.
type ExhaustedError struct {
	Op       string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: exhausted after %d attempt(s): %v", e.Op, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// IsExhausted reports whether err (or anything it wraps) is an *ExhaustedError.
func IsExhausted(err error) bool {
	var ex *ExhaustedError
	return errors.As(err, &ex)
}

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs fn under policy p. op names the operation in logs and errors.
//
// It returns the first successful value, the unwrapped error of a Permanent
// failure, ctx.Err() if ctx ends first, or an *ExhaustedError.
func Do[T any](ctx context.Context, p Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero, result T

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	// A private context lets a permanent failure stop the backoff loop.
	loopCtx, stop := context.WithCancel(ctx)
	defer stop()

	var (
		attempts  int
		permanent error
	)

	operation := func() error {
		attempts++
		v, err := fn(ctx)
		if err == nil {
			result = v
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			permanent = perm.err
			stop()
		}
		return err
	}

	var b backoff.BackOff
	if maxAttempts == 1 {
		// WithMaxRetries treats 0 as unlimited.
		b = &backoff.StopBackOff{}
	} else {
		b = backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(maxAttempts-1))
	}

	notify := func(err error, next time.Duration) {
		logging.LogRetry(op, attempts, maxAttempts, next, err)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, loopCtx), notify)
	if err == nil {
		return result, nil
	}
	if permanent != nil {
		return zero, permanent
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}
	return zero, &ExhaustedError{Op: op, Attempts: attempts, Last: err}
}

// Run is Do for operations without a result.
func Run(ctx context.Context, p Policy, op string, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, p, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
