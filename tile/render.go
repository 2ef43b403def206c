package tile

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
)

// Render trims template, replaces every @{expr} marker with the trimmed
// text of expr evaluated against scope, and returns the resulting lines
// joined by "\n".
//
// A marker whose value spans several lines is spliced in column-wise: its
// first line continues the current row and each further line starts a new
// row at the marker's column, as if the fragment were a rectangle pasted
// into the text. Text after the marker continues past the fragment's
// widest row.
//
// An open token without a closing brace on the same line fails with
// [ErrUnterminatedMarker]. Errors from compiling or running an expression
// are returned as the evaluator produced them.
func Render(template string, scope Scope, opts ...Option) (string, error) {
	r := &renderer{cfg: makeConfig(opts...), scope: scope}

	return r.render(template, 0)
}

// MustRender is like [Render] but panics on error. It suits templates that
// are compiled into the program and covered by tests.
func MustRender(template string, scope Scope, opts ...Option) string {
	s, err := Render(template, scope, opts...)
	if err != nil {
		panic(err)
	}

	return s
}

type renderer struct {
	cfg   config
	scope Scope
}

func (r *renderer) render(template string, depth int) (string, error) {
	env := r.scope.env(r.builtins(depth))

	var out []string

	for i, line := range Trim(template) {
		rs, err := r.renderLine(env, line, i, depth)
		if err != nil {
			return "", err
		}

		out = append(out, rs...)
	}

	return strings.Join(out, "\n"), nil
}

func (r *renderer) renderLine(
	env map[string]any,
	line string,
	index, depth int,
) (rows, error) {
	var buf rows

	pos := 0

	for {
		start, end, err := nextMarker(line, pos)
		if err != nil {
			return nil, err
		}

		if start < 0 {
			return buf.splice([]string{line[pos:]}), nil
		}

		buf = buf.splice([]string{line[pos:start]})

		source := line[start+len(openToken) : end]

		value, err := evaluate(source, env)
		if err != nil {
			return nil, err
		}

		frag := Trim(Text(value))

		r.cfg.logger.Trace("evaluated marker",
			slog.String("expr", source),
			slog.Int("line", index),
			slog.Int("column", width(line[:start])),
			slog.Int("rows", len(frag)),
			slog.Int("depth", depth),
		)

		buf = buf.splice(frag)
		pos = end + len(closeToken)
	}
}

// evaluate compiles source against env, so that unknown names are
// reported before anything runs, and executes it.
//
// Errors returned by functions in env are returned as is, without the
// source location the expression VM attaches to them.
func evaluate(source string, env map[string]any) (any, error) {
	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		if ferr, ok := err.(*file.Error); ok && ferr.Unwrap() != nil {
			return nil, ferr.Unwrap()
		}

		return nil, err
	}

	return out, nil
}

// builtins returns the names provided by the engine at the given depth.
func (r *renderer) builtins(depth int) map[string]any {
	var base map[string]any

	if r.cfg.builtins {
		base = Builtins(r.cfg.environ)
	}

	if len(r.cfg.partials) > 0 {
		if base == nil {
			base = make(map[string]any, 1)
		}

		base["include"] = func(name string) (string, error) {
			return r.include(name, depth+1)
		}
	}

	return base
}

func (r *renderer) include(name string, depth int) (string, error) {
	if depth > r.cfg.maxDepth {
		return "", ErrMaxDepthExceeded.With(
			slog.String("partial", name),
			slog.Int("max", r.cfg.maxDepth),
		)
	}

	partial, ok := r.cfg.partials[name]
	if !ok {
		return "", ErrPartialNotFound.With(slog.String("partial", name))
	}

	r.cfg.logger.Trace("include partial",
		slog.String("partial", name),
		slog.Int("depth", depth),
	)

	return r.render(partial, depth)
}
