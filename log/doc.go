// Package log provides a small leveled logging interface over [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("rendered template", slog.Int("lines", 12))
//
// # Configuration
//
// Loggers are configured with functional options applied over the
// defaults ([DefaultLevel], [DefaultFormat], [DefaultTimeLayout], no caller,
// no color):
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a logger with more options applied, and
// [Logger.With] one that adds attributes to every record.
//
// # Levels
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and
// is used for per-marker detail in the template engine.
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger that the command line configures with [Config]. The zero
// [Logger] discards everything, which is what library code receives when
// the caller does not supply one.
package log
