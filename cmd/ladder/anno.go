package main

import (
	"context"
	"fmt"
	"strings"

	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/log"
)

type annoCmd struct {
	Branch   string   `arg:"" optional:"" help:"Branch to annotate; defaults to the current branch."`
	Text     []string `arg:"" optional:"" help:"Free-text annotation and qualifier tokens (push=no, rebase=no, slide-out=no)."`
	NoRebase bool     `name:"no-rebase" help:"Set the rebase=no qualifier."`
	NoPush   bool     `name:"no-push" help:"Set the push=no qualifier."`
	NoSlide  bool     `name:"no-slide-out" help:"Set the slide-out=no qualifier."`
}

func (cmd *annoCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	branch, err := app.requireManaged(ctx, cmd.Branch)
	if err != nil {
		return err
	}

	ann := app.Tree.Annotation(branch)
	if len(cmd.Text) > 0 {
		ann.Text = strings.Join(cmd.Text, " ")
	}
	if cmd.NoRebase {
		ann.Qualifiers.NoRebase = true
	}
	if cmd.NoPush {
		ann.Qualifiers.NoPush = true
	}
	if cmd.NoSlide {
		ann.Qualifiers.NoSlideOut = true
	}

	if err := app.Tree.SetAnnotation(branch, ann); err != nil {
		return fmt.Errorf("annotate %s: %w", branch, err)
	}

	return layout.WriteFile(app.LayoutPath, app.Tree, app.IndentUnit, false)
}
