package tile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/tiles/log"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		scope    Scope
		want     string
	}{
		{
			name:     "arithmetic without scope",
			template: "x = @{1+2}",
			want:     "x = 3",
		},
		{
			name:     "local variable",
			template: "Hello, @{name}!",
			scope:    Vars(map[string]any{"name": "World"}),
			want:     "Hello, World!",
		},
		{
			name:     "multi-line value followed by text",
			template: "prefix @{e} suffix",
			scope:    Vars(map[string]any{"e": "A\nBB"}),
			want:     "prefix A  suffix\n       BB",
		},
		{
			name:     "multi-line value at end of line",
			template: "prefix @{e}",
			scope:    Vars(map[string]any{"e": "A\nBB"}),
			want:     "prefix A \n       BB",
		},
		{
			name:     "second marker taller than the first",
			template: "@{a} | @{b}",
			scope: Vars(map[string]any{
				"a": "1\n2",
				"b": []string{"x", "y", "z"},
			}),
			want: "1 | x\n2   y\n    z",
		},
		{
			name:     "value is trimmed before splicing",
			template: "  - @{v}\n  done",
			scope:    Vars(map[string]any{"v": "\n      a\n        b\n    "}),
			want:     "- a \n    b\ndone",
		},
		{
			name:     "empty value",
			template: "a@{e}b",
			scope:    Vars(map[string]any{"e": ""}),
			want:     "ab",
		},
		{
			name:     "nil value",
			template: "[@{nothing}]",
			scope:    Vars(map[string]any{"nothing": nil}),
			want:     "[]",
		},
		{
			name:     "first closing brace ends the marker",
			template: "@{x}}",
			scope:    Vars(map[string]any{"x": 1}),
			want:     "1}",
		},
		{
			name:     "lone closing brace is literal",
			template: "func f() { return @{v} }",
			scope:    Vars(map[string]any{"v": 7}),
			want:     "func f() { return 7 }",
		},
		{
			name:     "markers are not re-scanned",
			template: "@{v}",
			scope:    Vars(map[string]any{"v": "@{v}"}),
			want:     "@{v}",
		},
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
		{
			name: "blank lines inside the block are kept",
			template: `
				a

				@{1}
				`,
			want: "a\n\n1",
		},
		{
			name:     "string operators and member access",
			template: `@{upper(user.name) + "!"} @{len(items)}`,
			scope: Vars(map[string]any{
				"user":  map[string]any{"name": "ada"},
				"items": []any{1, 2, 3},
			}),
			want: "ADA! 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, tt.scope)
			if err != nil {
				t.Fatalf("Render(%q) error: %v", tt.template, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.template, diff)
			}
		})
	}
}

func TestRender_NoMarkersPassThrough(t *testing.T) {
	for _, template := range trimProperties {
		if strings.Contains(template, openToken) {
			continue
		}

		got, err := Render(template, Scope{})
		if err != nil {
			t.Fatalf("Render(%q) error: %v", template, err)
		}

		if want := strings.Join(Trim(template), "\n"); got != want {
			t.Errorf("Render(%q) = %q, want %q", template, got, want)
		}
	}
}

func TestRender_NestedTemplates(t *testing.T) {
	greet := func(name string) (string, error) {
		return Render(`
			print 'Hello, @{name}!'
			print 'Welcome!'
			`, Vars(map[string]any{"name": name}))
	}

	got, err := Render(`
		import sys

		@{greet("Alice")}
		if len(sys.argv) > 1 and 'all' in sys.argv:
		    @{greet("Bob")}
		`, Vars(map[string]any{"greet": greet}))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	want := strings.Join([]string{
		"import sys",
		"",
		"print 'Hello, Alice!'",
		"print 'Welcome!'",
		"if len(sys.argv) > 1 and 'all' in sys.argv:",
		"    print 'Hello, Bob!'",
		"    print 'Welcome!'",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_UnterminatedMarker(t *testing.T) {
	for _, template := range []string{"@{1+1", "ok @{1} then @{2", "a\n  @{x\nb"} {
		_, err := Render(template, Vars(map[string]any{"x": 1}))
		if !errors.Is(err, ErrUnterminatedMarker) {
			t.Errorf("Render(%q) error = %v, want ErrUnterminatedMarker", template, err)

			continue
		}

		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("error %T is not *Error", err)
		}

		line, ok := e.Attr("line")
		if !ok || !strings.Contains(template, line.String()) {
			t.Errorf("line attribute = %q, want a line of %q", line, template)
		}

		if !strings.Contains(err.Error(), line.String()) {
			t.Errorf("message %q does not name the line %q", err.Error(), line)
		}
	}
}

func TestRender_ScopeResolution(t *testing.T) {
	scope := NewScope(
		map[string]any{"x": "local", "env": "shadowed"},
		map[string]any{"x": "global", "y": "global"},
	)

	got, err := Render("@{x} @{y} @{env}", scope, WithBuiltins(true))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if want := "local global shadowed"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}

	// Names used inside the engine are not visible to expressions.
	for _, name := range []string{"template", "scope", "line", "pos", "r"} {
		if _, err := Render("@{"+name+"}", scope); err == nil {
			t.Errorf("engine name %q resolved in template", name)
		}
	}
}

func TestRender_EvaluationErrorsPropagate(t *testing.T) {
	errBoom := errors.New("boom")

	scope := Vars(map[string]any{
		"fail": func() (string, error) { return "", errBoom },
	})

	_, err := Render("@{fail()}", scope)
	if err != errBoom { //nolint:errorlint
		t.Errorf("error = %#v, want %v unchanged", err, errBoom)
	}

	_, err = Render("before\n  x @{fail()} y", scope)
	if err != errBoom { //nolint:errorlint
		t.Errorf("error = %#v, want %v unchanged", err, errBoom)
	}

	for _, template := range []string{"@{undefined}", "@{1 +}", "@{}"} {
		_, err := Render(template, scope)
		if err == nil {
			t.Errorf("Render(%q) succeeded, want evaluation error", template)

			continue
		}

		var e *Error
		if errors.As(err, &e) {
			t.Errorf("Render(%q) wrapped evaluator error in *Error: %v", template, err)
		}
	}
}

func TestRender_ScopeNotMutated(t *testing.T) {
	locals := map[string]any{"a": 1}
	globals := map[string]any{"b": 2}

	_, err := Render("@{a + b} @{include(\"p\")}",
		NewScope(locals, globals),
		WithBuiltins(true),
		WithPartials(map[string]string{"p": "@{a}"}),
	)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if len(locals) != 1 || len(globals) != 1 {
		t.Errorf("scope modified: locals=%v globals=%v", locals, globals)
	}
}

func TestRender_Partials(t *testing.T) {
	partials := map[string]string{
		"item":  "<@{name}>",
		"outer": "[@{include(\"inner\")}]",
		"inner": `
			@{name}
			@{name}
			`,
		"loop": `@{include("loop")}`,
	}

	scope := Vars(map[string]any{"name": "x"})

	tests := []struct {
		template string
		want     string
	}{
		{`@{include("item")}`, "<x>"},
		{`@{include("outer")}`, "[x]\n x"},
	}

	for _, tt := range tests {
		got, err := Render(tt.template, scope, WithPartials(partials))
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.template, err)
		}

		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}

	_, err := Render(`@{include("loop")}`, scope,
		WithPartials(partials), WithMaxDepth(3))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("recursive partial error = %v, want ErrMaxDepthExceeded", err)
	}

	var e *Error
	if !errors.As(err, &e) || e.Unwrap() != nil {
		t.Errorf("recursive partial error = %#v, want bare *Error", err)
	}

	if strings.Contains(err.Error(), "include(") {
		t.Errorf("recursive partial error repeats source: %q", err.Error())
	}

	_, err = Render(`@{include("missing")}`, scope, WithPartials(partials))
	if !errors.Is(err, ErrPartialNotFound) {
		t.Errorf("missing partial error = %v, want ErrPartialNotFound", err)
	}

	if _, err := Render(`@{include("item")}`, scope); err == nil {
		t.Error("include resolved without registered partials")
	}
}

func TestRender_Logger(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))

	_, err := Render("a @{1}\nb @{2}", Scope{}, WithLogger(logger))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if n := strings.Count(buf.String(), `"msg":"evaluated marker"`); n != 2 {
		t.Errorf("traced %d markers, want 2:\n%s", n, buf.String())
	}

	if !strings.Contains(buf.String(), `"expr":"2"`) {
		t.Errorf("trace missing expression: %s", buf.String())
	}
}

func TestMustRender(t *testing.T) {
	if got := MustRender("@{1}", Scope{}); got != "1" {
		t.Errorf("MustRender = %q, want %q", got, "1")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRender did not panic on unterminated marker")
		}
	}()

	MustRender("@{", Scope{})
}
