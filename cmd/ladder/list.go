package main

import (
	"context"
	"os"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/render"
)

type listCmd struct {
	Category string `arg:"" default:"managed" help:"One of managed, childless, slidable."`
}

func (cmd *listCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	names, err := render.Categories(app.Tree, cmd.Category)
	if err != nil {
		return err
	}
	return render.List(os.Stdout, names)
}
