// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package flow composes units of work into pipelines.
//
// A [Step] turns one value into the next and may fail. Connectors
// combine steps into larger steps: [Pipe2] and [Pipe3] chain across
// types, [Sequential] chains over one type, [Parallel], [Settle] and
// [Race] fan out, [Fallback], [Retry], [Deadline] and [Breaker] wrap a
// step with a recovery policy. Since every connector returns a plain
// Step, pipelines nest arbitrarily:
//
//	fetch := flow.Retry(3, flow.Deadline(time.Second, fetchUser))
//	load := flow.Pipe2(fetch, flow.Parallel(loadOrders, loadInvoices))
//
// Connectors which dispatch steps onto other goroutines contain step
// panics, surfacing them as errors; on the caller's goroutine a panic
// stays the caller's to handle.
package flow

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/binaryshapes/mixor/fault"
)

var (
	// ErrNoSteps is returned by connectors that need at least one step
	// to mean anything.
	ErrNoSteps = fault.New("flow", "no_steps", "")

	// ErrDeadlineExceeded is returned by [Deadline] when the step ran
	// out of time and was abandoned.
	ErrDeadlineExceeded = fault.New("flow", "deadline_exceeded", "")
)

// Step is the unit of composition: a function from I to O which may
// fail. Steps receive the context of the pipeline run and are expected
// to honor its cancellation.
type Step[I, O any] func(context.Context, I) (O, error)

// Transform lifts a pure function into a [Step] that never fails.
func Transform[I, O any](fn func(context.Context, I) O) Step[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		return fn(ctx, in), nil
	}
}

// Effect lifts a side effect into a [Step] that passes its input
// through unchanged.
func Effect[T any](fn func(context.Context, T) error) Step[T, T] {
	return func(ctx context.Context, in T) (T, error) {
		var zero T
		if err := fn(ctx, in); err != nil {
			return zero, err
		}
		return in, nil
	}
}

// Pipe2 feeds the output of first into second.
func Pipe2[A, B, C any](first Step[A, B], second Step[B, C]) Step[A, C] {
	return func(ctx context.Context, in A) (C, error) {
		var zero C

		b, err := first(ctx, in)
		if err != nil {
			return zero, err
		}
		return second(ctx, b)
	}
}

// Pipe3 feeds the output of first into second and its output into
// third.
func Pipe3[A, B, C, D any](first Step[A, B], second Step[B, C], third Step[C, D]) Step[A, D] {
	return Pipe2(Pipe2(first, second), third)
}

// Sequential runs steps in order over one type, feeding each output to
// the next step and stopping at the first failure. With no steps it is
// the identity.
func Sequential[T any](steps ...Step[T, T]) Step[T, T] {
	return func(ctx context.Context, in T) (T, error) {
		var zero T

		v := in
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return zero, err
			}

			var err error
			v, err = step(ctx, v)
			if err != nil {
				return zero, err
			}
		}
		return v, nil
	}
}

// Parallel runs every step concurrently on the same input and collects
// their outputs in declaration order. The first failure cancels the
// remaining steps and fails the whole fan-out. Each step receives its
// own copy of the input value; inputs holding references still share
// what they point at.
func Parallel[I, O any](steps ...Step[I, O]) Step[I, []O] {
	return func(ctx context.Context, in I) ([]O, error) {
		if len(steps) == 0 {
			return nil, nil
		}

		out := make([]O, len(steps))
		g, gctx := errgroup.WithContext(ctx)
		for i, step := range steps {
			i, step := i, step
			g.Go(func() error {
				v, err := call(gctx, step, in)
				if err != nil {
					return err
				}
				out[i] = v
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Race runs every step concurrently on the same input and returns the
// first success, cancelling the rest. When every step fails the errors
// are joined in declaration order.
func Race[I, O any](steps ...Step[I, O]) Step[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		var zero O
		if len(steps) == 0 {
			return zero, fault.New("flow", "no_steps", "race needs at least one step")
		}

		raceCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		type outcome struct {
			idx int
			out O
			err error
		}

		results := make(chan outcome, len(steps))
		for i, step := range steps {
			i, step := i, step
			go func() {
				out, err := call(raceCtx, step, in)
				results <- outcome{idx: i, out: out, err: err}
			}()
		}

		errs := make([]error, len(steps))
		for range steps {
			res := <-results
			if res.err == nil {
				return res.out, nil
			}
			errs[res.idx] = res.err
		}
		return zero, errors.Join(errs...)
	}
}

// Fallback tries each step in order on the same input and returns the
// first success. When every step fails the errors are joined in
// declaration order.
func Fallback[I, O any](steps ...Step[I, O]) Step[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		var zero O
		if len(steps) == 0 {
			return zero, fault.New("flow", "no_steps", "fallback needs at least one step")
		}

		errs := make([]error, 0, len(steps))
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				return zero, errors.Join(errs...)
			}

			out, err := step(ctx, in)
			if err == nil {
				return out, nil
			}
			errs = append(errs, err)
		}
		return zero, errors.Join(errs...)
	}
}

// Retry reruns a failing step up to attempts times and returns the
// last error when every attempt fails. A [fault.Fault] marks misuse
// rather than a transient failure, so it aborts the remaining attempts
// immediately. Attempts below one are treated as one.
func Retry[I, O any](attempts int, step Step[I, O]) Step[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		var zero O
		if attempts < 1 {
			attempts = 1
		}

		var last error
		for i := 0; i < attempts; i++ {
			if err := ctx.Err(); err != nil {
				return zero, errors.Join(last, err)
			}

			out, err := step(ctx, in)
			if err == nil {
				return out, nil
			}
			last = err

			var f *fault.Fault
			if errors.As(err, &f) {
				break
			}
		}
		return zero, last
	}
}

// Deadline bounds a step to d. The step runs on its own goroutine with
// a context expiring at the deadline; if it is still running then, the
// connector abandons it and fails with [ErrDeadlineExceeded]. An
// abandoned step keeps its goroutine until it honors the cancelled
// context.
func Deadline[I, O any](d time.Duration, step Step[I, O]) Step[I, O] {
	return func(ctx context.Context, in I) (O, error) {
		var zero O

		dctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type outcome struct {
			out O
			err error
		}

		done := make(chan outcome, 1)
		go func() {
			out, err := call(dctx, step, in)
			done <- outcome{out: out, err: err}
		}()

		select {
		case res := <-done:
			return res.out, res.err
		case <-dctx.Done():
			return zero, fault.Wrap("flow", "deadline_exceeded", "step abandoned", dctx.Err())
		}
	}
}

// call runs step, converting a panic into an error. Goroutine panics
// cannot be recovered by the pipeline's caller, so connectors that
// dispatch onto other goroutines must contain them here.
func call[I, O any](ctx context.Context, step Step[I, O], in I) (out O, err error) {
	defer fault.Recover(&err)
	return step(ctx, in)
}
