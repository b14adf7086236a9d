package main

import (
	"context"

	"go.abhg.dev/ladder/internal/log"
)

type isManagedCmd struct {
	Branch string `arg:"" optional:"" help:"Branch to check; defaults to the current branch."`
}

func (cmd *isManagedCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	branch := cmd.Branch
	if branch == "" {
		current, ok, err := app.Ctx.CurrentBranch(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return &exitCodeError{1}
		}
		branch = current
	}

	if !app.Tree.IsManaged(branch) {
		return &exitCodeError{1}
	}
	return nil
}
