// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracing

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/binaryshapes/mixor/fault"
	"github.com/binaryshapes/mixor/tracelog"
)

// DefaultMaxListeners is the per signal listener cap applied when the
// bus is constructed without the [MaxListeners] option.
const DefaultMaxListeners = 64

// ErrListenerOverflow is returned by On and Once when a signal already
// has as many listeners as the bus allows.
var ErrListenerOverflow = fault.New("tracing", "listener_overflow", "")

// Handler consumes events delivered by a [Bus]. Handlers run on the
// emitting goroutine and must not be nil.
type Handler func(Event)

type options struct {
	logHandler   slog.Handler
	maxListeners int
}

// Option configures a [Bus].
type Option func(*options)

// LogHandler sets the slog.Handler used for bus lifecycle logs. The
// handler is wrapped so records carry any active trace context.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = tracelog.NewHandler(h)
	}
}

// MaxListeners overrides the per signal listener cap. Values below one
// are ignored.
func MaxListeners(n int) Option {
	return func(o *options) {
		if n < 1 {
			return
		}
		o.maxListeners = n
	}
}

type subscription struct {
	id    uint64
	fn    Handler
	once  bool
	fired atomic.Bool
}

// Bus is an in-process event bus for invocation lifecycle events.
//
// Delivery is synchronous: Emit invokes every listener of the event's
// signal, in subscription order, on the calling goroutine before it
// returns. All methods are safe for concurrent use.
type Bus struct {
	log *slog.Logger
	max int

	mu        sync.Mutex
	seq       uint64
	listeners map[Signal][]*subscription
	emitted   map[Signal]uint64
}

// NewBus returns an empty bus.
func NewBus(opts ...Option) *Bus {
	o := &options{
		logHandler:   tracelog.Noop(),
		maxListeners: DefaultMaxListeners,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Bus{
		log:       slog.New(o.logHandler),
		max:       o.maxListeners,
		listeners: make(map[Signal][]*subscription),
		emitted:   make(map[Signal]uint64),
	}
}

var defaultBus = sync.OnceValue(func() *Bus {
	return NewBus()
})

// Default returns the process wide bus shared by components that are
// not attached to an explicit one.
func Default() *Bus {
	return defaultBus()
}

// On registers h for every future event carrying sig. It returns a
// function that removes the listener; calling it more than once is
// harmless.
func (b *Bus) On(sig Signal, h Handler) (func(), error) {
	return b.subscribe(sig, h, false)
}

// Once registers h for the next event carrying sig. The listener is
// removed after its first delivery, or earlier via the returned
// function.
func (b *Bus) Once(sig Signal, h Handler) (func(), error) {
	return b.subscribe(sig, h, true)
}

func (b *Bus) subscribe(sig Signal, h Handler, once bool) (func(), error) {
	if h == nil {
		panic("tracing: nil listener")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.listeners[sig]) >= b.max {
		return nil, fault.Newf(
			"tracing",
			"listener_overflow",
			"signal %q already has %d listeners",
			sig,
			b.max,
		)
	}

	b.seq++
	sub := &subscription{id: b.seq, fn: h, once: once}
	b.listeners[sig] = append(b.listeners[sig], sub)

	b.log.Debug("trace listener registered", tracelog.Event(string(sig)))

	return func() {
		b.remove(sig, sub.id)
	}, nil
}

func (b *Bus) remove(sig Signal, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.listeners[sig]
	for i, sub := range subs {
		if sub.id != id {
			continue
		}
		b.listeners[sig] = slices.Delete(subs, i, i+1)
		return
	}
}

// Emit delivers e to every listener registered for e.Signal. Listeners
// run synchronously in subscription order. A panicking listener is
// recovered and logged without affecting the remaining listeners or
// the caller. A nil bus drops the event, so span-only trace wrappers
// stay valid.
func (b *Bus) Emit(ctx context.Context, e Event) {
	if b == nil {
		return
	}

	b.mu.Lock()
	subs := slices.Clone(b.listeners[e.Signal])
	b.emitted[e.Signal]++
	b.mu.Unlock()

	b.log.DebugContext(ctx, "trace event emitted",
		tracelog.Event(string(e.Signal)),
		tracelog.Component(e.ComponentID),
		tracelog.TraceID(e.TraceID),
	)

	for _, sub := range subs {
		if sub.once && !sub.fired.CompareAndSwap(false, true) {
			continue
		}
		b.deliver(ctx, e, sub)
		if sub.once {
			b.remove(e.Signal, sub.id)
		}
	}
}

func (b *Bus) deliver(ctx context.Context, e Event, sub *subscription) {
	var err error
	defer func() {
		if err != nil {
			b.log.ErrorContext(ctx, "trace listener panicked",
				tracelog.Event(string(e.Signal)),
				tracelog.Component(e.ComponentID),
				tracelog.Error(err),
			)
		}
	}()
	defer fault.Recover(&err)

	sub.fn(e)
}

// Stats reports the current listener counts and total emissions per
// signal. Signals without listeners or emissions are omitted.
type Stats struct {
	Listeners map[Signal]int
	Emitted   map[Signal]uint64
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Stats{
		Listeners: make(map[Signal]int, len(b.listeners)),
		Emitted:   maps.Clone(b.emitted),
	}
	for sig, subs := range b.listeners {
		if len(subs) == 0 {
			continue
		}
		s.Listeners[sig] = len(subs)
	}
	return s
}

// Clear removes every listener and resets the emission counters.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.listeners)
	clear(b.emitted)
}
