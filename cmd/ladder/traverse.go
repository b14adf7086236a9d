package main

import (
	"context"
	"os"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/mconfig"
	trv "go.abhg.dev/ladder/internal/traverse"
)

type traverseCmd struct {
	StartFrom   string `name:"start-from" default:"here" help:"One of here, root, first-root."`
	ReturnTo    string `name:"return-to" default:"stay" help:"One of here, nearest-remaining, stay."`
	Merge       bool   `name:"merge" help:"Propose merging the parent in instead of rebasing."`
	Push        bool   `name:"push" help:"Propose pushing branches that are untracked, ahead or diverged-and-newer."`
	NoPush      bool   `name:"no-push" help:"Disable push proposals regardless of config."`
	Interactive bool   `name:"interactive" short:"i" help:"Run proposed rebases interactively."`
}

func (cmd *traverseCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	push := cmd.Push || mconfig.TraversePush(ctx, app.Ctx)
	if cmd.NoPush {
		push = false
	}

	traverser := trv.New(app.Ctx, app.Tree, app.Fork, app.Sync, app.Ops, app.Prompter, app.Picker, os.Stdout)
	return traverser.Run(ctx, trv.Options{
		StartFrom:   trv.StartFrom(cmd.StartFrom),
		ReturnTo:    trv.ReturnTo(cmd.ReturnTo),
		Merge:       cmd.Merge,
		Yes:         opts.Yes,
		Push:        push,
		Interactive: cmd.Interactive,
	})
}
