// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package tracing

import (
	"context"
	"errors"
	"fmt"
)

func Example() {
	bus := NewBus()

	stop, err := bus.On(SignalStart, func(e Event) {
		fmt.Println("start", e.Tag, e.ArgShapes)
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer stop()

	_, err = bus.On(SignalFinish, func(e Event) {
		fmt.Println("finish", e.Tag, e.ReturnShape)
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	greet := Trace(bus, Subject{ID: "greeter:ab12", Tag: "greeter"}, func(_ context.Context, name string) (string, error) {
		return "hello " + name, nil
	})

	out, err := greet(context.Background(), "mixor")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	// Output:
	// start greeter [string]
	// finish greeter string
	// hello mixor
}

func ExampleBus_Once() {
	bus := NewBus()

	_, err := bus.Once(SignalError, func(e Event) {
		fmt.Println("first failure:", e.Err)
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	bus.Emit(context.Background(), Event{Signal: SignalError, Err: errors.New("boom")})
	bus.Emit(context.Background(), Event{Signal: SignalError, Err: errors.New("again")})

	stats := bus.Stats()
	fmt.Println("emitted:", stats.Emitted[SignalError])

	// Output:
	// first failure: boom
	// emitted: 2
}
