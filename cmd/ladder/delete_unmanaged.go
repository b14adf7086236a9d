package main

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/prompt"
)

type deleteUnmanagedCmd struct {
	Force bool `name:"force" help:"Delete even branches with unmerged commits."`
}

func (cmd *deleteUnmanagedCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	if !opts.Yes {
		ans, err := app.Prompter.Confirm(ctx, "delete every local branch not present in the layout?")
		if err != nil {
			return err
		}
		if ans != prompt.Yes && ans != prompt.YesQuit {
			return nil
		}
	}

	deleted, err := app.Ops.DeleteUnmanaged(ctx, cmd.Force)
	for _, b := range deleted {
		logger.Infof("deleted %s", b)
	}
	if err != nil {
		return fmt.Errorf("delete-unmanaged: %w", err)
	}
	return nil
}
