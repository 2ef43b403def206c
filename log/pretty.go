package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyHandler writes colorized records, either as key=value pairs on one
// line or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
	json   bool
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, json: true}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// qualify prefixes attribute keys with the open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}

	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))

	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, slog.String(
				slog.SourceKey, src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var recAttrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		recAttrs = append(recAttrs, a)

		return true
	})

	fields = append(fields, h.qualify(recAttrs)...)

	buf := new(bytes.Buffer)

	if h.json {
		h.writeObject(buf, fields)
	} else {
		h.writeLine(buf, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) replace(a slog.Attr) (slog.Attr, bool) {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	return a, a.Key != ""
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []slog.Attr) {
	for _, f := range fields {
		a, ok := h.replace(f)
		if !ok {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(ansiGray + a.Key + ansiReset + "=")
		writeValue(buf, a.Value)
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []slog.Attr) {
	buf.WriteString("{")

	first := true

	for _, f := range fields {
		a, ok := h.replace(f)
		if !ok {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		buf.WriteString("\n  " + ansiGray + strconv.Quote(a.Key) + ansiReset + ": ")
		writeValue(buf, a.Value)
	}

	buf.WriteString("\n}")
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	v = v.Resolve()

	color, text := ansiCyan, ""

	switch v.Kind() {
	case slog.KindString:
		text = v.String()
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		color, text = ansiYellow, v.String()
	case slog.KindBool:
		color, text = ansiRed, "false"
		if v.Bool() {
			color, text = ansiGreen, "true"
		}
	case slog.KindDuration:
		color, text = ansiMagenta, v.Duration().String()
	case slog.KindTime:
		color, text = ansiBlue, v.Time().String()
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+"="+a.Value.Resolve().String())
		}

		text = "{" + strings.Join(parts, " ") + "}"
	default:
		if level, ok := v.Any().(slog.Level); ok {
			color, text = levelColor(level), level.String()
		} else {
			text = fmt.Sprint(v.Any())
		}
	}

	buf.WriteString(color + text + ansiReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiBlue
	}
}
