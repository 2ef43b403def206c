package cmd

import (
	"context"

	"github.com/ardnew/tiles/cli/cmd/repl"
	"github.com/ardnew/tiles/log"
	"github.com/ardnew/tiles/tile"
)

// Repl opens an editor over a template with a live rendered preview.
type Repl struct {
	ScopeFlags `embed:""`

	Output string `help:"File written atomically by ctrl+s" placeholder:"FILE" short:"o" type:"path"`

	File string `arg:"" help:"Initial template file" name:"file" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var template string

	if r.File != "" {
		template, err = readTemplate(ctx, []string{r.File})
		if err != nil {
			return err
		}
	}

	scope, err := r.scope(ctx)
	if err != nil {
		return err
	}

	opts, err := r.options()
	if err != nil {
		return err
	}

	// Render traces would draw over the terminal UI.
	opts = append(opts, tile.WithLogger(log.Logger{}))

	names := r.names(scope)

	replOpts := []repl.Option{
		repl.WithLogger(log.Default()),
		repl.WithNames(names),
		repl.WithHints(func(err error) []string { return Suggest(err, names) }),
	}

	if r.Output != "" {
		replOpts = append(replOpts, repl.WithSaver(func(s string) error {
			return writeOutput(ctx, r.Output, s)
		}))
	}

	if ktx := kongContextFrom(ctx); ktx != nil {
		replOpts = append(replOpts,
			repl.WithCacheDir(ktx.Model.Vars()[CacheIdentifier]),
		)
	}

	return repl.Run(ctx, template, func(s string) (string, error) {
		return tile.Render(s, scope, opts...)
	}, replOpts...)
}
