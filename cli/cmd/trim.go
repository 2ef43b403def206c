package cmd

import (
	"context"
	"strings"

	"github.com/ardnew/tiles/tile"
)

// Trim prints the input with its common indentation and blank margins
// removed, exactly as templates are trimmed before rendering.
type Trim struct {
	Files []string `arg:"" help:"Template file(s) or '-' for stdin" name:"file" optional:""`
}

// Run executes the trim command.
func (t *Trim) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	template, err := readTemplate(ctx, t.Files)
	if err != nil {
		return err
	}

	return writeOutput(ctx, "", strings.Join(tile.Trim(template), "\n")+"\n")
}
