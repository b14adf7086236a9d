package main

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/log"
)

// advanceCmd checks out the current branch's sole managed child, the
// single-step "move downstream" convenience named in the CLI surface
// but not separately detailed in the component design.
type advanceCmd struct{}

func (*advanceCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	current, err := app.requireManaged(ctx, "")
	if err != nil {
		return err
	}

	children := app.Tree.Children(current)
	switch len(children) {
	case 0:
		return fmt.Errorf("%s has no managed children to advance to", current)
	case 1:
		return app.Repo.Checkout(ctx, children[0])
	default:
		return fmt.Errorf("%s has %d children; use 'ladder go down' or 'ladder anno' to disambiguate", current, len(children))
	}
}
