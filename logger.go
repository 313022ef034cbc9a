package vidmix

import (
	"log/slog"

	"github.com/vidmix/vidmix/internal/logx"
)

// SetLogger configures the logger for vidmix and all its sub-packages.
// By default, vidmix produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by vidmix:
//   - [slog.LevelDebug]: internal diagnostics (barrier accounting, virtual
//     clock jumps, timer arming)
//   - [slog.LevelInfo]: output lifecycle events (output registered, clock
//     started)
//   - [slog.LevelWarn]: non-fatal issues (bare-text root rejected, scene
//     push failures)
//
// Example:
//
//	// Enable info-level logging to stderr:
//	vidmix.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	vidmix.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logx.Set(l)
}

// Logger returns the current logger used by vidmix.
// Sub-packages (timectx/, scene/, output/, engine/, resource/) share the
// same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logx.Logger()
}
