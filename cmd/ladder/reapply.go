package main

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/ops"
)

// reapplyCmd rebases the current branch onto its parent, using the
// branch's computed fork point as the boundary, to replay its commits
// (e.g. after an amend or autosquash) without touching its parent
// relationship.
type reapplyCmd struct {
	Interactive bool `name:"interactive" short:"i" help:"Run the rebase interactively."`
}

func (cmd *reapplyCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	branch, err := app.requireManaged(ctx, "")
	if err != nil {
		return err
	}

	parent, ok := app.Tree.Parent(branch)
	if !ok {
		return fmt.Errorf("%s has no parent to reapply onto", branch)
	}

	fp, err := app.Fork.ForkPoint(ctx, branch)
	if err != nil {
		return err
	}

	return app.Ops.RebaseOnto(ctx, ops.RebaseOntoRequest{
		Branch:      branch,
		NewBase:     parent,
		ForkPoint:   fp,
		Interactive: cmd.Interactive,
	})
}
