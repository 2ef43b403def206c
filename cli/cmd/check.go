package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/ardnew/tiles/log"
	"github.com/ardnew/tiles/tile"
)

// Check lists the markers of the input and compiles each expression without
// a scope, reporting syntax errors. Nothing is evaluated.
type Check struct {
	Quiet bool `help:"Only print errors" short:"q"`

	Files []string `arg:"" help:"Template file(s) or '-' for stdin" name:"file" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	template, err := readTemplate(ctx, c.Files)
	if err != nil {
		return err
	}

	markers, err := tile.Markers(template)
	if err != nil {
		return ErrCheck.Wrap(err)
	}

	var (
		sb     strings.Builder
		failed int
	)

	for _, m := range markers {
		// Positions are printed 1-based.
		pos := fmt.Sprintf("%d:%d", m.Line+1, m.Column+1)

		if _, err := expr.Compile(m.Expr); err != nil {
			failed++

			msg, _, _ := strings.Cut(err.Error(), "\n")
			fmt.Fprintf(&sb, "%s: error: %s\n", pos, msg)

			continue
		}

		if !c.Quiet {
			fmt.Fprintf(&sb, "%s: %s\n", pos, m.Expr)
		}
	}

	if err := writeOutput(ctx, "", sb.String()); err != nil {
		return err
	}

	log.DebugContext(ctx, "checked template",
		slog.Int("markers", len(markers)),
		slog.Int("errors", failed),
	)

	if failed > 0 {
		return ErrCheck.With(slog.Int("errors", failed))
	}

	return nil
}
