package main

import (
	"context"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/log"
)

type addCmd struct {
	Branch       string `arg:"" help:"Branch to add."`
	Onto         string `name:"onto" help:"Parent branch; omit to add as a root."`
	AsFirstChild bool   `name:"as-first-child" help:"Insert before the parent's existing children."`
}

func (cmd *addCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	if !app.Repo.BranchExists(ctx, cmd.Branch) {
		return &branchNotFoundError{cmd.Branch}
	}

	if err := app.Tree.Add(branchtree.AddRequest{
		Name:         cmd.Branch,
		Onto:         cmd.Onto,
		AsFirstChild: cmd.AsFirstChild,
	}); err != nil {
		return err
	}

	return layout.WriteFile(app.LayoutPath, app.Tree, app.IndentUnit, false)
}

type branchNotFoundError struct{ branch string }

func (e *branchNotFoundError) Error() string {
	return "branch " + e.branch + " does not exist"
}
