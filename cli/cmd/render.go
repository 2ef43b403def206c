package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ardnew/tiles/log"
	"github.com/ardnew/tiles/tile"
)

// Render renders the concatenated input files as one template.
type Render struct {
	ScopeFlags `embed:""`

	Output string `help:"Write output atomically to FILE instead of stdout" placeholder:"FILE" short:"o" type:"path"`

	Files []string `arg:"" help:"Template file(s) or '-' for stdin" name:"file" optional:""`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	template, err := readTemplate(ctx, r.Files)
	if err != nil {
		return err
	}

	scope, err := r.scope(ctx)
	if err != nil {
		return err
	}

	opts, err := r.options()
	if err != nil {
		return err
	}

	out, err := tile.Render(template, scope, opts...)
	if err != nil {
		if hints := Suggest(err, r.names(scope)); len(hints) > 0 {
			log.WarnContext(ctx, "unknown name in template",
				slog.Any("suggestions", hints),
			)
		}

		return ErrRender.Wrap(err)
	}

	return writeOutput(ctx, r.Output, out+"\n")
}

// writeOutput writes s to path atomically, or to the context's output
// stream if path is empty.
func writeOutput(ctx context.Context, path, s string) error {
	if path == "" {
		if _, err := io.WriteString(streamsFrom(ctx).out, s); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	err := atomic.WriteFile(path, strings.NewReader(s))
	if err != nil {
		return ErrWriteOutput.With(slog.String("file", path)).Wrap(err)
	}

	log.DebugContext(ctx, "wrote output",
		slog.String("file", path),
		slog.Int("bytes", len(s)),
	)

	return nil
}
