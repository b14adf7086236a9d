package main

import (
	"context"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/ops"
)

type slideOutCmd struct {
	Branches []string `arg:"" optional:"" help:"Chain of branches to remove, outermost first; defaults to the current branch."`
	Delete   bool     `name:"delete" help:"Also delete the local branches of the slid-out chain."`
}

func (cmd *slideOutCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	sequence := cmd.Branches
	if len(sequence) == 0 {
		branch, err := app.requireManaged(ctx, "")
		if err != nil {
			return err
		}
		sequence = []string{branch}
	}

	return app.Ops.SlideOut(ctx, ops.SlideOutRequest{
		Sequence: sequence,
		Delete:   cmd.Delete,
	})
}
