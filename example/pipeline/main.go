// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/binaryshapes/mixor"
	"github.com/binaryshapes/mixor/flow"
	"github.com/binaryshapes/mixor/tracelog"
	"github.com/binaryshapes/mixor/tracing"
)

type user struct {
	ID   int
	Name string
}

func main() {
	logger := tracelog.New(slog.NewTextHandler(os.Stderr, nil))

	bus := tracing.NewBus()
	stop, err := bus.On(tracing.SignalPerformance, func(e tracing.Event) {
		logger.Info("step finished",
			tracelog.Tag(e.Tag),
			tracelog.Component(e.ComponentID),
			tracelog.TraceID(e.TraceID),
			tracelog.Duration(e.Duration),
		)
	})
	if err != nil {
		logger.Error("failed to listen on the bus", tracelog.Error(err))
		os.Exit(1)
	}
	defer stop()

	// The first two fetches fail so the retry has something to do.
	failures := 2
	fetch := mixor.DefineStep("fetch-user", func(_ context.Context, id int) (user, error) {
		if failures > 0 {
			failures--
			return user{}, errors.New("upstream unavailable")
		}
		return user{ID: id, Name: "ada"}, nil
	}, mixor.Bus(bus))

	score := mixor.DefineStep("score-user", func(_ context.Context, u user) (string, error) {
		return fmt.Sprintf("%s scored %d", u.Name, u.ID%10), nil
	}, mixor.Bus(bus))

	audit := mixor.DefineStep("audit-user", func(_ context.Context, u user) (string, error) {
		return "audited " + u.Name, nil
	}, mixor.Bus(bus))

	pipeline := flow.Pipe2(
		flow.Retry(3, flow.Breaker("fetch", fetch.Traced(), flow.TripAfter(5))),
		flow.Settle(score.Traced(tracing.Async()), audit.Traced(tracing.Async())),
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := pipeline(ctx, 42)
	if err != nil {
		logger.Error("pipeline failed", tracelog.Error(err))
		os.Exit(1)
	}

	for _, line := range out {
		fmt.Println(line)
	}
}
