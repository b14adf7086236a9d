package main

import (
	"context"
	"os"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/render"
)

type fileCmd struct{}

func (*fileCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}
	return render.File(os.Stdout, app.LayoutPath)
}
