package glyphbrush

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the package logger, silent by default. Stored atomically
// so SetLogger may race with logging from any goroutine.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger routes glyphbrush log output to l; pass nil to silence it
// again. Levels used: Debug for cache and atlas internals, Info for
// lifecycle events (font added, atlas resized), Warn for dropped
// sections and layout diagnostics.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger { return logger.Load() }
