package main

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/discover"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/forkpoint"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/mconfig"
	"go.abhg.dev/ladder/internal/ops"
	"go.abhg.dev/ladder/internal/prompt"
	"go.abhg.dev/ladder/internal/render"
	"go.abhg.dev/ladder/internal/syncstate"
)

// App bundles every long-lived component a command needs. Each command's
// Run method builds its own App through openApp.
type App struct {
	Repo       *git.Repository
	Ctx        *gitctx.Context
	Tree       *branchtree.Tree
	Fork       *forkpoint.Engine
	Sync       *syncstate.Classifier
	Ops        *ops.Actions
	Discover   *discover.Engine
	Prompter   *prompt.Prompter
	Picker     *prompt.Picker
	Style      *render.Style
	LayoutPath string
	IndentUnit layout.IndentUnit
	Log        *log.Logger
}

// openApp opens the repository rooted at the current directory and
// wires together every core component, the way the teacher's
// "openRepo" helper assembles a *git.Repository, *state.Store, and
// *spice.Service before handing control to a command.
func openApp(ctx context.Context, logger *log.Logger, yes bool) (*App, error) {
	clog := charmlog.NewWithOptions(os.Stderr, charmlog.Options{ReportTimestamp: false})
	if logger.Level() <= log.LevelDebug {
		clog.SetLevel(charmlog.DebugLevel)
	} else {
		clog.SetLevel(charmlog.WarnLevel)
	}

	repo, err := git.Open(ctx, "", git.OpenOptions{
		Log:           clog,
		RebaseOptsEnv: os.Getenv("GIT_LADDER_REBASE_OPTS"),
	})
	if err != nil {
		return nil, err
	}

	gctx := gitctx.New(repo)

	useTopLevel := mconfig.UseTopLevelMacheteFile(ctx, gctx)
	layoutPath := layout.ResolvePath(repo.CommonDir(), repo.GitDir(), useTopLevel)

	tree, err := layout.ParseFile(layoutPath)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}

	fork := forkpoint.New(gctx, tree)
	mode := mconfig.SquashMergeDetection(ctx, gctx)
	classifier := syncstate.New(gctx, fork, mode)
	actions := ops.New(gctx, tree, fork, layoutPath, layout.DefaultIndentUnit)

	return &App{
		Repo:       repo,
		Ctx:        gctx,
		Tree:       tree,
		Fork:       fork,
		Sync:       classifier,
		Ops:        actions,
		Discover:   discover.New(gctx, logger),
		Prompter:   prompt.New(os.Stdin, os.Stdout, yes),
		Picker:     prompt.NewPicker(os.Stdin, os.Stdout),
		Style:      render.DefaultStyle(),
		LayoutPath: layoutPath,
		IndentUnit: layout.DefaultIndentUnit,
		Log:        logger,
	}, nil
}

// requireManaged resolves branch, defaulting to the current branch, and
// confirms it is present in the layout tree.
func (app *App) requireManaged(ctx context.Context, branch string) (string, error) {
	if branch == "" {
		current, ok, err := app.Ctx.CurrentBranch(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("HEAD is not on a branch")
		}
		branch = current
	}
	if !app.Tree.IsManaged(branch) {
		return "", &errs.UnmanagedBranchError{Branch: branch}
	}
	return branch, nil
}
