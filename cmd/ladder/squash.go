package main

import (
	"context"

	"go.abhg.dev/ladder/internal/log"
)

type squashCmd struct {
	Branch string `arg:"" optional:"" help:"Branch to squash; defaults to the current branch."`
}

func (cmd *squashCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	branch, err := app.requireManaged(ctx, cmd.Branch)
	if err != nil {
		return err
	}

	fp, err := app.Fork.ForkPoint(ctx, branch)
	if err != nil {
		return err
	}

	return app.Ops.Squash(ctx, branch, fp)
}
