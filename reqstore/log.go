package reqstore

import "github.com/decred/slog"

// log is the package's subsystem logger. It defaults to silent; callers
// that want output provide a backend via UseLogger.
var log = slog.Disabled

// UseLogger sets the package logger. This must be called before the store
// is used concurrently.
func UseLogger(logger slog.Logger) {
	log = logger
}
