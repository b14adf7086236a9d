package main

import (
	"context"
	"fmt"
	"os"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/render"
)

type forkPointCmd struct {
	Branch   string `arg:"" optional:"" help:"Branch to query or set; defaults to the current branch."`
	Set      string `name:"set" placeholder:"COMMIT" help:"Set an explicit fork point override."`
	Unset    bool   `name:"unset" help:"Remove a fork point override."`
	Inferred bool   `name:"inferred" help:"Print the inferred fork point, ignoring any override."`
}

func (cmd *forkPointCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	branch, err := app.requireManaged(ctx, cmd.Branch)
	if err != nil {
		return err
	}

	switch {
	case cmd.Set != "":
		hash, err := app.Repo.CommitHash(ctx, cmd.Set)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", cmd.Set, err)
		}
		return app.Fork.SetOverride(ctx, branch, hash)

	case cmd.Unset:
		return app.Fork.UnsetOverride(ctx, branch)

	case cmd.Inferred:
		hash, err := app.Fork.InferredForkPoint(ctx, branch)
		if err != nil {
			return err
		}
		return render.ForkPoint(os.Stdout, hash.String())

	default:
		hash, err := app.Fork.ForkPoint(ctx, branch)
		if err != nil {
			return err
		}
		return render.ForkPoint(os.Stdout, hash.String())
	}
}
