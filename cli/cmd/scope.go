package cmd

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tiles/log"
	"github.com/ardnew/tiles/tile"
)

// ScopeFlags are the flags shared by commands that evaluate templates.
type ScopeFlags struct {
	Scope    []string `help:"YAML or JSON file of global bindings (repeatable, later files win)" placeholder:"FILE"       short:"s" type:"existingfile"`
	Set      []string `help:"Bind a local NAME=VALUE (bool, int, float, or string)"              placeholder:"NAME=VALUE" short:"D" sep:"none"`
	Partial  []string `help:"Register partial NAME=FILE for include(NAME)"                       placeholder:"NAME=FILE"  short:"p" sep:"none"`
	Builtins bool     `help:"Provide env, cwd, path, and mung functions to expressions" default:"true" negatable:""`
	MaxDepth int      `help:"Maximum include nesting depth" default:"64"`
}

// scope loads the bindings named by the flags.
func (f *ScopeFlags) scope(ctx context.Context) (tile.Scope, error) {
	globals := make(map[string]any)

	for _, path := range f.Scope {
		m, err := loadScopeFile(path)
		if err != nil {
			return tile.Scope{}, err
		}

		log.DebugContext(ctx, "loaded scope file",
			slog.String("file", path),
			slog.Int("names", len(m)),
		)

		maps.Copy(globals, m)
	}

	locals := make(map[string]any, len(f.Set))

	for _, binding := range f.Set {
		name, value, err := splitBinding(binding)
		if err != nil {
			return tile.Scope{}, err
		}

		locals[name] = parseArgValue(value)
	}

	return tile.NewScope(locals, globals), nil
}

// options returns the render options selected by the flags.
func (f *ScopeFlags) options() ([]tile.Option, error) {
	partials := make(map[string]string, len(f.Partial))

	for _, binding := range f.Partial {
		name, path, err := splitBinding(binding)
		if err != nil {
			return nil, err
		}

		b, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrReadSource.
				With(slog.String("partial", name), slog.String("file", path)).
				Wrap(err)
		}

		partials[name] = string(b)
	}

	return []tile.Option{
		tile.WithLogger(log.Default()),
		tile.WithBuiltins(f.Builtins),
		tile.WithPartials(partials),
		tile.WithMaxDepth(f.MaxDepth),
	}, nil
}

// names lists every name an expression rendered with the flags' options
// could refer to.
func (f *ScopeFlags) names(scope tile.Scope) []string {
	names := scope.Names()

	if f.Builtins {
		names = slices.AppendSeq(names, maps.Keys(tile.Builtins(nil)))
	}

	if len(f.Partial) > 0 {
		names = append(names, "include")
	}

	return names
}

// loadScopeFile decodes a YAML or JSON mapping, chosen by file extension.
func loadScopeFile(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrScopeFile.With(slog.String("file", path)).Wrap(err)
	}

	var m map[string]any

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &m)

	case ".json":
		err = json.Unmarshal(b, &m)

	default:
		return nil, ErrScopeFormat.With(slog.String("file", path))
	}

	if err != nil {
		return nil, ErrScopeFile.With(slog.String("file", path)).Wrap(err)
	}

	return m, nil
}

// splitBinding splits "NAME=VALUE" at the first "=".
func splitBinding(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, "=")

	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", ErrBinding.With(slog.String("binding", s))
	}

	return name, value, nil
}

// parseArgValue attempts to parse a command-line value into an appropriate
// type: int64, float64, bool, or string. Numbers are tried first so that
// "1" and "0" bind as integers.
func parseArgValue(s string) any {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}

	return s
}
