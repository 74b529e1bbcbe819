// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/binaryshapes/mixor/fault"
)

func TestTransform(t *testing.T) {
	t.Parallel()

	t.Run("will lift a pure function", func(t *testing.T) {
		t.Parallel()

		double := Transform(func(_ context.Context, n int) int { return n * 2 })

		out, err := double(context.Background(), 21)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 42, out)
	})
}

func TestEffect(t *testing.T) {
	t.Parallel()

	t.Run("will pass the input through", func(t *testing.T) {
		t.Parallel()

		var seen int
		observe := Effect(func(_ context.Context, n int) error {
			seen = n
			return nil
		})

		out, err := observe(context.Background(), 7)
		if !assert.NoError(t, err) {
			return
		}
		if !assert.Equal(t, 7, out) {
			return
		}
		assert.Equal(t, 7, seen)
	})

	t.Run("if the effect fails will fail the step", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := Effect(func(context.Context, int) error { return boom })

		_, err := failing(context.Background(), 7)
		assert.ErrorIs(t, err, boom)
	})
}

func TestPipe2(t *testing.T) {
	t.Parallel()

	t.Run("will feed outputs forward", func(t *testing.T) {
		t.Parallel()

		parse := func(_ context.Context, s string) (int, error) {
			return strconv.Atoi(s)
		}
		double := func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		}

		out, err := Pipe2(Step[string, int](parse), Step[int, int](double))(context.Background(), "21")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 42, out)
	})

	t.Run("if the first step fails will not run the second", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		first := func(context.Context, string) (int, error) {
			return 0, boom
		}

		ran := false
		second := func(_ context.Context, n int) (int, error) {
			ran = true
			return n, nil
		}

		_, err := Pipe2(Step[string, int](first), Step[int, int](second))(context.Background(), "in")
		if !assert.ErrorIs(t, err, boom) {
			return
		}
		assert.False(t, ran)
	})
}

func TestPipe3(t *testing.T) {
	t.Parallel()

	t.Run("will chain across three types", func(t *testing.T) {
		t.Parallel()

		parse := Step[string, int](func(_ context.Context, s string) (int, error) {
			return strconv.Atoi(s)
		})
		double := Step[int, int](func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})
		render := Step[int, string](func(_ context.Context, n int) (string, error) {
			return strconv.Itoa(n), nil
		})

		out, err := Pipe3(parse, double, render)(context.Background(), "21")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "42", out)
	})
}

func TestSequential(t *testing.T) {
	t.Parallel()

	t.Run("will run steps in order", func(t *testing.T) {
		t.Parallel()

		appendTo := func(s string) Step[[]string, []string] {
			return func(_ context.Context, in []string) ([]string, error) {
				return append(in, s), nil
			}
		}

		out, err := Sequential(appendTo("a"), appendTo("b"), appendTo("c"))(context.Background(), nil)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, []string{"a", "b", "c"}, out)
	})

	t.Run("if a step fails will stop", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		ran := false

		pipeline := Sequential(
			Step[int, int](func(_ context.Context, n int) (int, error) { return n + 1, nil }),
			Step[int, int](func(context.Context, int) (int, error) { return 0, boom }),
			Step[int, int](func(_ context.Context, n int) (int, error) {
				ran = true
				return n, nil
			}),
		)

		_, err := pipeline(context.Background(), 0)
		if !assert.ErrorIs(t, err, boom) {
			return
		}
		assert.False(t, ran)
	})

	t.Run("with no steps will return the input", func(t *testing.T) {
		t.Parallel()

		out, err := Sequential[int]()(context.Background(), 42)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 42, out)
	})

	t.Run("if the context is cancelled will stop", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ran := false
		pipeline := Sequential(Step[int, int](func(_ context.Context, n int) (int, error) {
			ran = true
			return n, nil
		}))

		_, err := pipeline(ctx, 0)
		if !assert.ErrorIs(t, err, context.Canceled) {
			return
		}
		assert.False(t, ran)
	})
}

func TestParallel(t *testing.T) {
	t.Parallel()

	t.Run("will collect outputs in declaration order", func(t *testing.T) {
		t.Parallel()

		slow := Step[int, string](func(_ context.Context, n int) (string, error) {
			time.Sleep(20 * time.Millisecond)
			return fmt.Sprintf("slow-%d", n), nil
		})
		fast := Step[int, string](func(_ context.Context, n int) (string, error) {
			return fmt.Sprintf("fast-%d", n), nil
		})

		out, err := Parallel(slow, fast)(context.Background(), 1)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, []string{"slow-1", "fast-1"}, out)
	})

	t.Run("if a step fails will cancel the rest", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := Step[int, int](func(context.Context, int) (int, error) {
			return 0, boom
		})

		cancelled := false
		blocked := Step[int, int](func(ctx context.Context, _ int) (int, error) {
			<-ctx.Done()
			cancelled = true
			return 0, ctx.Err()
		})

		_, err := Parallel(failing, blocked)(context.Background(), 0)
		if !assert.ErrorIs(t, err, boom) {
			return
		}
		assert.True(t, cancelled)
	})

	t.Run("if a step panics will fail instead of crashing", func(t *testing.T) {
		t.Parallel()

		panicky := Step[int, int](func(context.Context, int) (int, error) {
			panic("bad step")
		})

		assert.NotPanics(t, func() {
			_, err := Parallel(panicky)(context.Background(), 0)
			assert.ErrorContains(t, err, "bad step")
		})
	})

	t.Run("with no steps will return nothing", func(t *testing.T) {
		t.Parallel()

		out, err := Parallel[int, int]()(context.Background(), 0)
		if !assert.NoError(t, err) {
			return
		}
		assert.Empty(t, out)
	})
}

func TestRace(t *testing.T) {
	t.Parallel()

	t.Run("will return the first success", func(t *testing.T) {
		t.Parallel()

		fast := Step[string, string](func(_ context.Context, in string) (string, error) {
			return "fast " + in, nil
		})
		hanging := Step[string, string](func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

		out, err := Race(hanging, fast)(context.Background(), "answer")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "fast answer", out)
	})

	t.Run("if every step fails will join the errors", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first down")
		second := errors.New("second down")

		race := Race(
			Step[int, int](func(context.Context, int) (int, error) { return 0, first }),
			Step[int, int](func(context.Context, int) (int, error) { return 0, second }),
		)

		_, err := race(context.Background(), 0)
		if !assert.ErrorIs(t, err, first) {
			return
		}
		assert.ErrorIs(t, err, second)
	})

	t.Run("with no steps will fail", func(t *testing.T) {
		t.Parallel()

		_, err := Race[int, int]()(context.Background(), 0)
		assert.ErrorIs(t, err, ErrNoSteps)
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()

	t.Run("will return the primary success without trying alternatives", func(t *testing.T) {
		t.Parallel()

		tried := false
		primary := Step[string, string](func(_ context.Context, in string) (string, error) {
			return "primary " + in, nil
		})
		alternative := Step[string, string](func(_ context.Context, in string) (string, error) {
			tried = true
			return "alternative " + in, nil
		})

		out, err := Fallback(primary, alternative)(context.Background(), "value")
		if !assert.NoError(t, err) {
			return
		}
		if !assert.Equal(t, "primary value", out) {
			return
		}
		assert.False(t, tried)
	})

	t.Run("will fall back on failure", func(t *testing.T) {
		t.Parallel()

		primary := Step[string, string](func(context.Context, string) (string, error) {
			return "", errors.New("primary down")
		})
		alternative := Step[string, string](func(_ context.Context, in string) (string, error) {
			return "alternative " + in, nil
		})

		out, err := Fallback(primary, alternative)(context.Background(), "value")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, "alternative value", out)
	})

	t.Run("if every step fails will join the errors", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first down")
		second := errors.New("second down")

		fallback := Fallback(
			Step[int, int](func(context.Context, int) (int, error) { return 0, first }),
			Step[int, int](func(context.Context, int) (int, error) { return 0, second }),
		)

		_, err := fallback(context.Background(), 0)
		if !assert.ErrorIs(t, err, first) {
			return
		}
		assert.ErrorIs(t, err, second)
	})

	t.Run("with no steps will fail", func(t *testing.T) {
		t.Parallel()

		_, err := Fallback[int, int]()(context.Background(), 0)
		assert.ErrorIs(t, err, ErrNoSteps)
	})
}

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("will retry until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		flaky := Step[int, int](func(context.Context, int) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("try again")
			}
			return calls, nil
		})

		out, err := Retry(5, flaky)(context.Background(), 0)
		if !assert.NoError(t, err) {
			return
		}
		if !assert.Equal(t, 3, out) {
			return
		}
		assert.Equal(t, 3, calls)
	})

	t.Run("if attempts are exhausted will return the last error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		calls := 0
		failing := Step[int, int](func(context.Context, int) (int, error) {
			calls++
			return 0, boom
		})

		_, err := Retry(3, failing)(context.Background(), 0)
		if !assert.ErrorIs(t, err, boom) {
			return
		}
		assert.Equal(t, 3, calls)
	})

	t.Run("if the failure is a fault will stop immediately", func(t *testing.T) {
		t.Parallel()

		declined := fault.New("billing", "card_declined", "")
		calls := 0
		charge := Step[int, int](func(context.Context, int) (int, error) {
			calls++
			return 0, declined
		})

		_, err := Retry(5, charge)(context.Background(), 0)
		if !assert.ErrorIs(t, err, declined) {
			return
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("with attempts below one will run once", func(t *testing.T) {
		t.Parallel()

		calls := 0
		step := Step[int, int](func(context.Context, int) (int, error) {
			calls++
			return calls, nil
		})

		out, err := Retry(0, step)(context.Background(), 0)
		if !assert.NoError(t, err) {
			return
		}
		if !assert.Equal(t, 1, out) {
			return
		}
		assert.Equal(t, 1, calls)
	})
}

func TestDeadline(t *testing.T) {
	t.Parallel()

	t.Run("will pass a fast step through", func(t *testing.T) {
		t.Parallel()

		quick := Step[int, int](func(_ context.Context, n int) (int, error) {
			return n + 1, nil
		})

		out, err := Deadline(time.Second, quick)(context.Background(), 41)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 42, out)
	})

	t.Run("if the step outruns the deadline will fail", func(t *testing.T) {
		t.Parallel()

		// Sleeps through the deadline without honoring the context, so
		// the connector has to abandon it.
		sleepy := Step[int, int](func(context.Context, int) (int, error) {
			time.Sleep(200 * time.Millisecond)
			return 1, nil
		})

		_, err := Deadline(10*time.Millisecond, sleepy)(context.Background(), 0)
		if !assert.ErrorIs(t, err, ErrDeadlineExceeded) {
			return
		}
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
