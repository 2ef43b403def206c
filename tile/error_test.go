package tile

import (
	"errors"
	"log/slog"
	"testing"
)

func TestError_Message(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"sentinel", ErrPartialNotFound, "partial not found"},
		{"wrapped", ErrPartialNotFound.Wrap(cause), "partial not found: cause"},
		{"line detail", ErrUnterminatedMarker.With(slog.String("line", "a @{b")), "unterminated @{} expression: a @{b"},
		{"other attrs omitted", ErrPartialNotFound.With(slog.String("partial", "x")), "partial not found"},
		{"message-less", WrapError(cause), "cause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("cause")
	derived := ErrMaxDepthExceeded.With(slog.Int("max", 1)).Wrap(cause)

	if !errors.Is(derived, ErrMaxDepthExceeded) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrPartialNotFound) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if !errors.Is(derived, cause) {
		t.Error("derived error does not match its cause")
	}

	if v, ok := derived.Attr("max"); !ok || v.Int64() != 1 {
		t.Errorf("Attr(max) = %v, %v", v, ok)
	}

	if ErrMaxDepthExceeded.attrs != nil {
		t.Error("With modified the sentinel")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil) != nil {
		t.Error("WrapError(nil) != nil")
	}

	e := ErrPartialNotFound.With(slog.String("partial", "x"))
	if WrapError(e) != e {
		t.Error("WrapError did not return an existing *Error")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrPartialNotFound.With(slog.String("partial", "x")).Wrap(errors.New("io"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "partial not found", "cause": "io", "partial": "x"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("LogValue[%s] = %q, want %q", k, got[k], v)
		}
	}
}
