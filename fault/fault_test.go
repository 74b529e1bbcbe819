// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package fault

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFault_Error(t *testing.T) {
	t.Run("will render only the scope and code", func(t *testing.T) {
		t.Run("if no detail or cause is set", func(t *testing.T) {
			f := New("registry", "not_found", "")

			if !assert.Equal(t, "registry.not_found", f.Error()) {
				return
			}
		})
	})

	t.Run("will append the detail", func(t *testing.T) {
		t.Run("if one is set", func(t *testing.T) {
			f := Newf("registry", "not_found", "no record for id %q", "user:abc")

			if !assert.Equal(t, `registry.not_found: no record for id "user:abc"`, f.Error()) {
				return
			}
		})
	})

	t.Run("will append the cause", func(t *testing.T) {
		t.Run("if one is set", func(t *testing.T) {
			cause := errors.New("disk full")
			f := Wrap("registry", "export_failed", "writing snapshot", cause)

			if !assert.Equal(t, "registry.export_failed: writing snapshot: disk full", f.Error()) {
				return
			}
		})
	})
}

func TestFault_Is(t *testing.T) {
	t.Run("will match", func(t *testing.T) {
		t.Run("if the scope and code are equal", func(t *testing.T) {
			sentinel := New("container", "not_built", "")
			err := Newf("container", "not_built", "container %q must be built before Get", "app")

			if !assert.ErrorIs(t, err, sentinel) {
				return
			}
		})

		t.Run("if the fault is wrapped by another error", func(t *testing.T) {
			sentinel := New("container", "not_built", "")
			err := fmt.Errorf("resolving port: %w", New("container", "not_built", ""))

			if !assert.ErrorIs(t, err, sentinel) {
				return
			}
		})
	})

	t.Run("will not match", func(t *testing.T) {
		t.Run("if the codes differ", func(t *testing.T) {
			sentinel := New("container", "not_built", "")
			err := New("container", "circular_dependency", "")

			if !assert.NotErrorIs(t, err, sentinel) {
				return
			}
		})

		t.Run("if the scopes differ", func(t *testing.T) {
			sentinel := New("container", "not_found", "")
			err := New("registry", "not_found", "")

			if !assert.NotErrorIs(t, err, sentinel) {
				return
			}
		})

		t.Run("if the target is not a fault", func(t *testing.T) {
			err := New("registry", "not_found", "")

			if !assert.NotErrorIs(t, err, errors.New("registry.not_found")) {
				return
			}
		})
	})
}

func TestFault_Unwrap(t *testing.T) {
	t.Run("will expose the cause", func(t *testing.T) {
		t.Run("if the fault wraps another error", func(t *testing.T) {
			cause := errors.New("yaml: line 3: mapping values are not allowed")
			err := Wrap("config", "invalid_source", "parsing app.yaml", cause)

			if !assert.ErrorIs(t, err, cause) {
				return
			}
		})
	})
}

func TestMust(t *testing.T) {
	t.Run("will return the value", func(t *testing.T) {
		t.Run("if the error is nil", func(t *testing.T) {
			v := Must(42, nil)

			if !assert.Equal(t, 42, v) {
				return
			}
		})
	})

	t.Run("will panic", func(t *testing.T) {
		t.Run("if the error is non-nil", func(t *testing.T) {
			err := New("registry", "corrupted_tree", "")

			if !assert.PanicsWithError(t, err.Error(), func() {
				Must(0, err)
			}) {
				return
			}
		})
	})
}

func TestRecover(t *testing.T) {
	t.Run("will update the error ref value", func(t *testing.T) {
		t.Run("if a panic is recovered and the ref is nil", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				panic("hello world")
			}

			err := f()

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.Equal(t, "hello world", perr.Value) {
				return
			}
		})

		t.Run("if a panic is recovered and the ref is non-nil", func(t *testing.T) {
			funcErr := errors.New("func error")
			panicErr := errors.New("panic error")
			f := func() (err error) {
				defer Recover(&err)
				err = funcErr
				panic(panicErr)
			}

			err := f()

			if !assert.ErrorIs(t, err, funcErr) {
				return
			}

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.ErrorIs(t, perr, panicErr) {
				return
			}
		})
	})

	t.Run("will not update the error ref value", func(t *testing.T) {
		t.Run("if no panic occurred", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				return nil
			}

			err := f()
			if !assert.Nil(t, err) {
				return
			}
		})
	})
}

func TestPanicError_Unwrap(t *testing.T) {
	t.Run("will return nil", func(t *testing.T) {
		t.Run("if the panic value is not an error", func(t *testing.T) {
			perr := PanicError{Value: "not an error"}

			if !assert.Nil(t, perr.Unwrap()) {
				return
			}
		})
	})

	t.Run("will return the panic value", func(t *testing.T) {
		t.Run("if it is an error", func(t *testing.T) {
			cause := errors.New("boom")
			perr := PanicError{Value: cause}

			if !assert.ErrorIs(t, perr, cause) {
				return
			}
		})
	})
}

type closeFunc func() error

func (f closeFunc) Close() error {
	return f()
}

func TestClose(t *testing.T) {
	t.Run("will update the error ref value", func(t *testing.T) {
		t.Run("if closing fails and the ref is nil", func(t *testing.T) {
			cause := errors.New("close failed")
			f := func() (err error) {
				defer Close(&err, closeFunc(func() error { return cause }))
				return nil
			}

			err := f()

			var cerr CloseError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			if !assert.ErrorIs(t, cerr, cause) {
				return
			}
		})

		t.Run("if closing fails and the ref is non-nil", func(t *testing.T) {
			funcErr := errors.New("func error")
			closeErr := errors.New("close failed")
			f := func() (err error) {
				defer Close(&err, closeFunc(func() error { return closeErr }))
				return funcErr
			}

			err := f()

			if !assert.ErrorIs(t, err, funcErr) {
				return
			}

			var cerr CloseError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			if !assert.ErrorIs(t, cerr, closeErr) {
				return
			}
		})
	})

	t.Run("will not update the error ref value", func(t *testing.T) {
		t.Run("if the value is not a closer", func(t *testing.T) {
			f := func() (err error) {
				defer Close(&err, "not a closer")
				return nil
			}

			if !assert.Nil(t, f()) {
				return
			}
		})

		t.Run("if closing succeeds", func(t *testing.T) {
			f := func() (err error) {
				defer Close(&err, closeFunc(func() error { return nil }))
				return nil
			}

			if !assert.Nil(t, f()) {
				return
			}
		})
	})
}

func TestSetDebugLogger(t *testing.T) {
	t.Run("will log each constructed fault", func(t *testing.T) {
		t.Run("if a logger is installed", func(t *testing.T) {
			var buf bytes.Buffer
			SetDebugLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
			defer SetDebugLogger(nil)

			New("registry", "not_found", "no such record")

			out := buf.String()
			if !assert.Contains(t, out, "fault raised") {
				return
			}
			if !assert.Contains(t, out, "scope=registry") {
				return
			}
			if !assert.Contains(t, out, "code=not_found") {
				return
			}
			if !assert.Contains(t, out, "no such record") {
				return
			}
		})

		t.Run("if the fault wraps a cause", func(t *testing.T) {
			var buf bytes.Buffer
			SetDebugLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
			defer SetDebugLogger(nil)

			Wrap("config", "unmarshal_failed", "", errors.New("boom"))

			out := buf.String()
			if !assert.Contains(t, out, "scope=config") {
				return
			}
			if !assert.Contains(t, out, "cause=boom") {
				return
			}
		})
	})

	t.Run("will not log", func(t *testing.T) {
		t.Run("if the logger was uninstalled", func(t *testing.T) {
			var buf bytes.Buffer
			SetDebugLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
			SetDebugLogger(nil)

			New("registry", "not_found", "")

			if !assert.Empty(t, buf.String()) {
				return
			}
		})
	})
}
