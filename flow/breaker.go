// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package flow

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/binaryshapes/mixor/fault"
)

// ErrCircuitOpen is returned by a [Breaker] step while its circuit
// refuses load.
var ErrCircuitOpen = fault.New("flow", "circuit_open", "")

type breakerOptions struct {
	tripAfter     uint32
	openTimeout   time.Duration
	halfOpenMax   uint32
	resetInterval time.Duration
}

// BreakerOption configures a [Breaker].
type BreakerOption func(*breakerOptions)

// TripAfter sets how many consecutive failures open the circuit.
func TripAfter(n uint32) BreakerOption {
	return func(o *breakerOptions) {
		o.tripAfter = n
	}
}

// OpenStateTimeout sets how long an open circuit refuses load before
// admitting probe calls again.
func OpenStateTimeout(d time.Duration) BreakerOption {
	return func(o *breakerOptions) {
		o.openTimeout = d
	}
}

// HalfOpenRequests sets how many probe calls a half-open circuit admits
// before it decides to close or reopen.
func HalfOpenRequests(n uint32) BreakerOption {
	return func(o *breakerOptions) {
		o.halfOpenMax = n
	}
}

// CountResetInterval sets how often a closed circuit forgets its
// failure counts.
func CountResetInterval(d time.Duration) BreakerOption {
	return func(o *breakerOptions) {
		o.resetInterval = d
	}
}

// Breaker guards step with a named circuit breaker. While the circuit
// is closed calls pass through and failures are counted; once the trip
// threshold is reached the circuit opens and calls fail fast with
// [ErrCircuitOpen] without running the step. After the open state
// timeout the circuit admits probe calls, closing again on success.
//
// One Breaker value holds one circuit, so the returned step must be
// reused across calls for the breaker to see them.
func Breaker[I, O any](name string, step Step[I, O], opts ...BreakerOption) Step[I, O] {
	o := &breakerOptions{
		tripAfter:   5,
		openTimeout: time.Minute,
		halfOpenMax: 1,
	}
	for _, opt := range opts {
		opt(o)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: o.halfOpenMax,
		Interval:    o.resetInterval,
		Timeout:     o.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= o.tripAfter
		},
	})

	return func(ctx context.Context, in I) (O, error) {
		v, err := cb.Execute(func() (any, error) {
			return step(ctx, in)
		})
		if err != nil {
			var zero O
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return zero, fault.Wrap("flow", "circuit_open", "breaker "+name+" refused the call", err)
			}
			return zero, err
		}

		out, _ := v.(O)
		return out, nil
	}
}
