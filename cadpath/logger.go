package cadpath

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent = slog.New(slog.DiscardHandler)
	logger atomic.Pointer[slog.Logger]
)

func init() { logger.Store(silent) }

// SetLogger sets the logger shared by cadpath and its sibling packages.
// Nothing is logged by default; nil restores that.
// Skipped entities go to Debug, dropped document content to Warn.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

func Logger() *slog.Logger { return logger.Load() }
