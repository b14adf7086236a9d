package main

import (
	"context"
	"os"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/render"
)

type showCmd struct {
	Direction string `arg:"" help:"One of current, up, down, first, last, prev, next, root."`
	Branch    string `arg:"" optional:"" help:"Branch to navigate from; defaults to the current branch."`
}

func (cmd *showCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	from, err := app.requireManaged(ctx, cmd.Branch)
	if err != nil {
		return err
	}

	branch, err := app.Tree.Show(branchtree.Direction(cmd.Direction), from)
	if err != nil {
		return err
	}
	return render.Show(os.Stdout, branch)
}
