package main

import (
	"context"
	"os"

	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/render"
)

type statusCmd struct {
	ListCommits           bool `name:"list-commits" short:"l" help:"Show each branch's commits above its fork point."`
	ListCommitsWithHashes bool `name:"list-commits-with-hashes" help:"Like --list-commits, with abbreviated hashes."`
}

func (cmd *statusCmd) Run(ctx context.Context, logger *log.Logger, opts *options) error {
	app, err := openApp(ctx, logger, opts.Yes)
	if err != nil {
		return err
	}

	current, _, err := app.Ctx.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	withCommits := cmd.ListCommits || cmd.ListCommitsWithHashes

	info := make(map[string]render.BranchInfo)
	for _, b := range app.Tree.Branches() {
		var bi render.BranchInfo
		bi.HookNote = app.Ops.Hooks.StatusBranch(ctx, b, false)

		if parent, ok := app.Tree.Parent(b); ok {
			edge, err := app.Sync.Edge(ctx, parent, b)
			if err != nil {
				logger.Debugf("edge state for %s: %v", b, err)
			} else {
				bi.Edge = edge
				bi.HasEdge = true
			}

			if withCommits {
				fp, err := app.Fork.ForkPoint(ctx, b)
				if err == nil {
					entries, err := app.Repo.LogFirstParent(ctx, fp.String(), b)
					if err == nil {
						bi.WithHashes = cmd.ListCommitsWithHashes
						for _, e := range entries {
							bi.Commits = append(bi.Commits, render.Commit{
								Hash:          e.Hash.Short(),
								Subject:       e.Subject,
								CommitterDate: e.CommitterDate,
							})
						}
					}
				}
			}
		}

		info[b] = bi
	}

	return render.Status(os.Stdout, app.Tree, render.Options{
		Style:   app.Style,
		Current: current,
		Info:    info,
	})
}
