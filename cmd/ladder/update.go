package main

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/log"
)

// updateCmd fetches every remote, refreshing the tracking state each
// branch's sync classification and fork-point inference depend on. It
// does not rewrite the layout file; "discover" re-derives structure.
type updateCmd struct{}

func (*updateCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	remotes, err := app.Ctx.Remotes(ctx)
	if err != nil {
		return err
	}

	for _, remote := range remotes {
		if err := app.Ctx.FetchRemote(ctx, remote); err != nil {
			return fmt.Errorf("fetch %s: %w", remote, err)
		}
		logger.Infof("fetched %s", remote)
	}
	return nil
}
