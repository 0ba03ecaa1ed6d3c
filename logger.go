package vista

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Scene loops log from their own
// goroutines, so the pointer is swapped atomically.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for vista and all its sub-packages.
// By default vista produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by vista:
//   - [slog.LevelDebug]: per-mount diagnostics (surface size, pixel ratio, frame counts)
//   - [slog.LevelInfo]: lifecycle events (scene mounted, texture loaded, teardown)
//   - [slog.LevelWarn]: absorbed failures (detached container, texture fallback)
//
// Example:
//
//	vista.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by vista.
// Sub-packages call this instead of holding their own copy so that
// SetLogger takes effect for scenes that are already mounted.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
