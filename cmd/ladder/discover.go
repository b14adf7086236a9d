package main

import (
	"context"
	"fmt"
	"os"

	"go.abhg.dev/ladder/internal/discover"
	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/prompt"
)

type discoverCmd struct {
	Roots         []string `name:"roots" help:"Candidate root branches; defaults to master/main/develop, whichever exist locally."`
	MaxCandidates int      `name:"max-candidates" help:"Maximum non-root branches considered, by most recent activity."`
}

func (cmd *discoverCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	tree, err := app.Discover.Discover(ctx, discover.Options{
		Roots:         cmd.Roots,
		MaxCandidates: cmd.MaxCandidates,
		Previous:      app.Tree,
	})
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	if err := layout.WriteFile(app.LayoutPath+".discover", tree, app.IndentUnit, false); err != nil {
		return fmt.Errorf("write discovered layout: %w", err)
	}

	if !opts.Yes {
		ans, err := app.Prompter.Confirm(ctx, fmt.Sprintf("overwrite %s with the discovered layout?", app.LayoutPath))
		if err != nil {
			return err
		}
		if ans != prompt.Yes && ans != prompt.YesQuit {
			logger.Infof("discovered layout left at %s; not applied", app.LayoutPath+".discover")
			return nil
		}
	}

	if err := layout.WriteFile(app.LayoutPath, tree, app.IndentUnit, true); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return os.Remove(app.LayoutPath + ".discover")
}
