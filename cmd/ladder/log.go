package main

import (
	"context"
	"fmt"
	"os"

	"go.abhg.dev/ladder/internal/log"
)

type logCmd struct {
	Branch     string `arg:"" optional:"" help:"Branch to list; defaults to the current branch."`
	WithHashes bool   `name:"with-hashes" help:"Prefix each commit with its abbreviated hash."`
}

func (cmd *logCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
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

	entries, err := app.Repo.LogFirstParent(ctx, fp.String(), branch)
	if err != nil {
		return fmt.Errorf("log %s: %w", branch, err)
	}

	for _, e := range entries {
		if cmd.WithHashes {
			fmt.Fprintf(os.Stdout, "%s %s\n", e.Hash.Short(), e.Subject)
		} else {
			fmt.Fprintln(os.Stdout, e.Subject)
		}
	}
	return nil
}
