package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger writes leveled, structured records through a [slog.Handler].
//
// A Logger is immutable once made; [Logger.Wrap] and [Logger.With] return
// new values. The zero Logger discards everything, so it is safe to embed
// in option structs without initialization.
type Logger struct {
	handler slog.Handler
	cfg     config
}

// Make returns a Logger writing to w, configured by opts applied over the
// defaults (see [WithDefaults]).
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{handler: cfg.handler(), cfg: cfg}
}

// Wrap returns a Logger using the receiver's configuration with opts
// applied on top. Attributes added by [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.handler == nil {
		return Make(nil, opts...)
	}

	cfg := apply(l.cfg, opts...)

	return Logger{handler: cfg.handler(), cfg: cfg}
}

// With returns a Logger that adds attrs to every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil || len(attrs) == 0 {
		return l
	}

	return Logger{handler: l.handler.WithAttrs(attrs), cfg: l.cfg}
}

// Level returns the minimum level written.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.cfg.level
}

// Format returns the record encoding.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.cfg.format
}

// Enabled reports whether records at level would be written.
func (l Logger) Enabled(ctx context.Context, level Level) bool {
	return l.handler != nil && l.handler.Enabled(ctx, slog.Level(level))
}

// Slog returns a [slog.Logger] sharing the receiver's handler.
func (l Logger) Slog() *slog.Logger {
	if l.handler == nil {
		return slog.New(slog.DiscardHandler)
	}

	return slog.New(l.handler)
}

func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs)
}

func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelTrace, msg, attrs)
}

func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelDebug, msg, attrs)
}

func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelInfo, msg, attrs)
}

func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelWarn, msg, attrs)
}

func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(DefaultContextProvider(), LevelError, msg, attrs)
}

// callerSkip is the number of frames between runtime.Callers and the
// caller of a public logging method: Callers, log, and the method itself.
const callerSkip = 3

func (l Logger) log(
	ctx context.Context,
	level Level,
	msg string,
	attrs []slog.Attr,
) {
	if !l.Enabled(ctx, level) {
		return
	}

	var pc uintptr

	if l.cfg.caller {
		var pcs [1]uintptr

		runtime.Callers(callerSkip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, r)
}
