// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestBus_On(t *testing.T) {
	t.Run("will deliver events to listeners in subscription order", func(t *testing.T) {
		bus := NewBus()

		var order []string
		_, err := bus.On(SignalStart, func(e Event) {
			order = append(order, "first:"+e.ComponentID)
		})
		if !assert.Nil(t, err) {
			return
		}

		_, err = bus.On(SignalStart, func(e Event) {
			order = append(order, "second:"+e.ComponentID)
		})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalStart, ComponentID: "value:1"})

		if !assert.Equal(t, []string{"first:value:1", "second:value:1"}, order) {
			return
		}
	})

	t.Run("will not deliver events carrying another signal", func(t *testing.T) {
		bus := NewBus()

		var calls int
		_, err := bus.On(SignalFinish, func(Event) {
			calls++
		})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalStart})
		bus.Emit(context.Background(), Event{Signal: SignalError})

		if !assert.Equal(t, 0, calls) {
			return
		}
	})

	t.Run("will return an unsubscribe function that removes the listener", func(t *testing.T) {
		bus := NewBus()

		var calls int
		stop, err := bus.On(SignalFinish, func(Event) {
			calls++
		})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalFinish})

		stop()
		stop()

		bus.Emit(context.Background(), Event{Signal: SignalFinish})

		if !assert.Equal(t, 1, calls) {
			return
		}
	})

	t.Run("if the listener cap for the signal is reached", func(t *testing.T) {
		bus := NewBus(MaxListeners(2))

		for i := 0; i < 2; i++ {
			_, err := bus.On(SignalStart, func(Event) {})
			if !assert.Nil(t, err) {
				return
			}
		}

		_, err := bus.On(SignalStart, func(Event) {})
		if !assert.ErrorIs(t, err, ErrListenerOverflow) {
			return
		}

		// Other signals keep their own budget.
		_, err = bus.On(SignalFinish, func(Event) {})
		if !assert.Nil(t, err) {
			return
		}
	})

	t.Run("will panic if the listener is nil", func(t *testing.T) {
		bus := NewBus()

		assert.Panics(t, func() {
			_, _ = bus.On(SignalStart, nil)
		})
	})
}

func TestBus_Once(t *testing.T) {
	t.Run("will deliver only the first matching event", func(t *testing.T) {
		bus := NewBus()

		var calls int
		_, err := bus.Once(SignalError, func(Event) {
			calls++
		})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalError})
		bus.Emit(context.Background(), Event{Signal: SignalError})

		if !assert.Equal(t, 1, calls) {
			return
		}

		stats := bus.Stats()
		if !assert.Zero(t, stats.Listeners[SignalError]) {
			return
		}
	})

	t.Run("will allow unsubscribing before any delivery", func(t *testing.T) {
		bus := NewBus()

		var calls int
		stop, err := bus.Once(SignalError, func(Event) {
			calls++
		})
		if !assert.Nil(t, err) {
			return
		}

		stop()
		bus.Emit(context.Background(), Event{Signal: SignalError})

		if !assert.Equal(t, 0, calls) {
			return
		}
	})
}

func TestBus_Emit(t *testing.T) {
	t.Run("will recover a panicking listener", func(t *testing.T) {
		bus := NewBus()

		_, err := bus.On(SignalError, func(Event) {
			panic("boom")
		})
		if !assert.Nil(t, err) {
			return
		}

		var delivered bool
		_, err = bus.On(SignalError, func(Event) {
			delivered = true
		})
		if !assert.Nil(t, err) {
			return
		}

		assert.NotPanics(t, func() {
			bus.Emit(context.Background(), Event{Signal: SignalError})
		})

		if !assert.True(t, delivered) {
			return
		}
	})

	t.Run("will allow a listener to subscribe during delivery", func(t *testing.T) {
		bus := NewBus()

		var nested bool
		_, err := bus.On(SignalStart, func(Event) {
			_, onErr := bus.On(SignalFinish, func(Event) {
				nested = true
			})
			assert.Nil(t, onErr)
		})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalStart})
		bus.Emit(context.Background(), Event{Signal: SignalFinish})

		if !assert.True(t, nested) {
			return
		}
	})
}

func TestBus_Stats(t *testing.T) {
	t.Run("will report listener and emission counts per signal", func(t *testing.T) {
		bus := NewBus()

		_, err := bus.On(SignalStart, func(Event) {})
		if !assert.Nil(t, err) {
			return
		}

		_, err = bus.On(SignalStart, func(Event) {})
		if !assert.Nil(t, err) {
			return
		}

		_, err = bus.On(SignalError, func(Event) {})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalStart})
		bus.Emit(context.Background(), Event{Signal: SignalStart})
		bus.Emit(context.Background(), Event{Signal: SignalFinish})

		stats := bus.Stats()

		if !assert.Equal(t, map[Signal]int{SignalStart: 2, SignalError: 1}, stats.Listeners) {
			return
		}
		if !assert.Equal(t, map[Signal]uint64{SignalStart: 2, SignalFinish: 1}, stats.Emitted) {
			return
		}
	})

	t.Run("will omit signals whose listeners were all removed", func(t *testing.T) {
		bus := NewBus()

		stop, err := bus.On(SignalStart, func(Event) {})
		if !assert.Nil(t, err) {
			return
		}
		stop()

		stats := bus.Stats()
		if !assert.Empty(t, stats.Listeners) {
			return
		}
	})
}

func TestBus_Clear(t *testing.T) {
	t.Run("will remove all listeners and reset counters", func(t *testing.T) {
		bus := NewBus()

		var calls int
		_, err := bus.On(SignalStart, func(Event) {
			calls++
		})
		if !assert.Nil(t, err) {
			return
		}

		bus.Emit(context.Background(), Event{Signal: SignalStart})
		bus.Clear()
		bus.Emit(context.Background(), Event{Signal: SignalStart})

		if !assert.Equal(t, 1, calls) {
			return
		}

		stats := bus.Stats()
		if !assert.Empty(t, stats.Listeners) {
			return
		}

		// Clear resets emission counters too, so the post clear emit
		// is the only one counted.
		if !assert.Equal(t, map[Signal]uint64{SignalStart: 1}, stats.Emitted) {
			return
		}
	})
}

func TestBus_Concurrency(t *testing.T) {
	t.Run("will support concurrent subscription and emission", func(t *testing.T) {
		bus := NewBus(MaxListeners(256))

		var eg errgroup.Group
		for i := 0; i < 64; i++ {
			i := i
			eg.Go(func() error {
				sig := SignalStart
				if i%2 == 0 {
					sig = SignalFinish
				}

				stop, err := bus.On(sig, func(Event) {})
				if err != nil {
					return err
				}

				bus.Emit(context.Background(), Event{
					Signal:      sig,
					ComponentID: fmt.Sprintf("value:%d", i),
				})

				if i%4 == 0 {
					stop()
				}
				return nil
			})
		}

		if !assert.Nil(t, eg.Wait()) {
			return
		}

		stats := bus.Stats()
		if !assert.Equal(t, uint64(32), stats.Emitted[SignalStart]) {
			return
		}
		if !assert.Equal(t, uint64(32), stats.Emitted[SignalFinish]) {
			return
		}
	})
}
