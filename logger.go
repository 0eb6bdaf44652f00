package distfield

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger so that SetLogger can race with
// logging from glyph workers.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for distfield and its sub-packages
// (glyph, atlas, text). By default nothing is logged.
//
// Pass nil to restore the silent default. SetLogger is safe for concurrent
// use.
//
// Log levels used:
//   - [slog.LevelDebug]: per-glyph sizes, flat fields for boundary-free images
//   - [slog.LevelInfo]: batch summaries
//   - [slog.LevelWarn]: skipped glyphs, atlas exhaustion
//
// Example:
//
//	distfield.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this to share one
// configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
