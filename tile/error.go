package tile

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package that originate here match these with
// [errors.Is]. Errors raised while compiling or running a marker
// expression are returned exactly as the evaluator produced them.
var (
	ErrUnterminatedMarker = NewError("unterminated @{} expression")
	ErrMaxDepthExceeded   = NewError("maximum include depth exceeded")
	ErrPartialNotFound    = NewError("partial not found")
)

// Error is an error with optional structured logging attributes.
// It implements both error and [slog.LogValuer].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
	base  *Error
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err if it already is an *Error, or a message-less
// Error wrapping it otherwise.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error formats as "<msg>: <cause>: <detail>", omitting empty parts. The
// "line" attribute, when present, is the detail.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	for _, a := range e.attrs {
		if a.Key == "line" {
			part = append(part, a.Value.String())
		}
	}

	return strings.Join(part, ": ")
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this Error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs, base: e.origin()}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	merged = append(merged, e.attrs...)
	merged = append(merged, attrs...)

	return &Error{msg: e.msg, err: e.err, attrs: merged, base: e.origin()}
}

// Attr returns the value of the attribute named key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

func (e *Error) origin() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
