package main

import (
	"context"
	"fmt"
	"os"

	"go.abhg.dev/ladder/internal/log"
)

type diffCmd struct {
	Branch string `arg:"" optional:"" help:"Branch to diff against its fork point; defaults to the current branch."`
}

func (cmd *diffCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
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

	out, err := app.Repo.Diff(ctx, fp.String(), branch)
	if err != nil {
		return fmt.Errorf("diff %s: %w", branch, err)
	}
	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}
