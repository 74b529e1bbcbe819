// Copyright (c) 2026 BinaryShapes and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package fault

import (
	"log/slog"
	"sync/atomic"
)

var debugLog atomic.Pointer[slog.Logger]

// SetDebugLogger installs a logger which records every fault as it is
// constructed, for tracing failure origins during development. Passing
// nil uninstalls it.
//
// Whether to install is decided once, typically from a debug setting
// at process start; fault construction never consults configuration
// itself.
func SetDebugLogger(l *slog.Logger) {
	debugLog.Store(l)
}

func trace(f *Fault) *Fault {
	l := debugLog.Load()
	if l == nil {
		return f
	}

	attrs := []any{
		slog.String("scope", f.Scope),
		slog.String("code", f.Code),
	}
	if f.Detail != "" {
		attrs = append(attrs, slog.String("detail", f.Detail))
	}
	if f.Cause != nil {
		attrs = append(attrs, slog.String("cause", f.Cause.Error()))
	}

	l.Debug("fault raised", attrs...)
	return f
}
