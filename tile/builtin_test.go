package tile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltins(t *testing.T) {
	environ := []string{"TILES_USER=ada", "TILES_EMPTY=", "MALFORMED"}

	tests := []struct {
		template string
		want     string
	}{
		{`@{env("TILES_USER")}`, "ada"},
		{`[@{env("TILES_EMPTY")}]`, "[]"},
		{`[@{env("TILES_UNSET")}]`, "[]"},
		{`@{path.cat("a", "b", "c.txt")}`, filepath.Join("a", "b", "c.txt")},
		{`@{path.base("/srv/www/index.html")}`, "index.html"},
		{`@{path.dir("/srv/www/index.html")}`, "/srv/www"},
		{`@{path.rel("/a/b", "/a/c/d")}`, filepath.Join("..", "c", "d")},
		{`@{len(lines("a\nb\nc"))}`, "3"},
		{`@{join(lines("a\nb"), ",")}`, "a,b"},
	}

	for _, tt := range tests {
		got, err := Render(tt.template, Scope{},
			WithBuiltins(true), WithEnviron(environ))
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.template, err)
		}

		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestBuiltins_CwdAndAbs(t *testing.T) {
	got, err := Render(`@{cwd()}|@{path.abs("x")}`, Scope{}, WithBuiltins(true))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	cwd, abs, _ := strings.Cut(got, "|")
	if !filepath.IsAbs(cwd) {
		t.Errorf("cwd() = %q, want an absolute path", cwd)
	}

	if want := filepath.Join(cwd, "x"); abs != want {
		t.Errorf("path.abs(x) = %q, want %q", abs, want)
	}
}

func TestBuiltins_Mung(t *testing.T) {
	sep := string(os.PathListSeparator)
	list := strings.Join([]string{"/usr/bin", "/bin"}, sep)

	got, err := Render(`@{mung.prefix(list, "/opt/tiles/bin")}`,
		Vars(map[string]any{"list": list}), WithBuiltins(true))
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if !strings.HasPrefix(got, "/opt/tiles/bin"+sep) {
		t.Errorf("mung.prefix = %q, want it to start with /opt/tiles/bin", got)
	}

	if !strings.Contains(got, "/usr/bin") {
		t.Errorf("mung.prefix = %q dropped the original list", got)
	}
}

func TestBuiltins_Disabled(t *testing.T) {
	for _, template := range []string{`@{env("HOME")}`, `@{cwd()}`, `@{path.base("x")}`} {
		if _, err := Render(template, Scope{}); err == nil {
			t.Errorf("Render(%q) resolved a builtin without WithBuiltins", template)
		}
	}
}

func TestBuiltins_FreshMap(t *testing.T) {
	a := Builtins(nil)
	delete(a, "env")

	if _, ok := Builtins(nil)["env"]; !ok {
		t.Error("Builtins shares state between calls")
	}
}
