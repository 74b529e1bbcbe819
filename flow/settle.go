// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package flow

import (
	"context"
	"errors"
	"sync"
)

// Settle runs every step concurrently on the same input and waits for
// all of them to finish, failures included. This is the counterpart to
// [Parallel] for fan-outs whose steps must run to completion: a failing
// step neither cancels nor hides the others.
//
// Outputs land in declaration order and a failed step leaves the zero
// value in its slot. The step error is every failure joined in
// declaration order, alongside the partial outputs. A panicking step
// settles as a failure.
func Settle[I, O any](steps ...Step[I, O]) Step[I, []O] {
	return func(ctx context.Context, in I) ([]O, error) {
		if len(steps) == 0 {
			return nil, nil
		}

		out := make([]O, len(steps))
		errs := make([]error, len(steps))

		var wg sync.WaitGroup
		for i, step := range steps {
			i, step := i, step
			wg.Add(1)
			go func() {
				defer wg.Done()
				out[i], errs[i] = call(ctx, step, in)
			}()
		}
		wg.Wait()

		return out, errors.Join(errs...)
	}
}
