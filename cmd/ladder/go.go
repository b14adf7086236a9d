package main

import (
	"context"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/log"
)

type goCmd struct {
	Direction string `arg:"" help:"One of current, up, down, first, last, prev, next, root."`
}

func (cmd *goCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	from, err := app.requireManaged(ctx, "")
	if err != nil {
		return err
	}

	branch, err := app.Tree.Show(branchtree.Direction(cmd.Direction), from)
	if err != nil {
		return err
	}
	return app.Repo.Checkout(ctx, branch)
}
