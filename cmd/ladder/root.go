package main

import (
	"github.com/alecthomas/kong"
	"go.abhg.dev/ladder/internal/log"
)

type mainCmd struct {
	Debug      bool        `help:"Enable debug logging." env:"LADDER_DEBUG"`
	Yes        bool        `short:"y" help:"Auto-confirm every prompt."`
	Version    versionFlag `help:"Print version information and quit."`
	VersionCmd versionCmd  `cmd:"" name:"version" help:"Print version information."`

	Add             addCmd             `cmd:"" help:"Add a branch to the layout."`
	Advance         advanceCmd         `cmd:"" help:"Check out the current branch's sole managed child."`
	Anno            annoCmd            `cmd:"" help:"Annotate a managed branch."`
	DeleteUnmanaged deleteUnmanagedCmd `cmd:"" name:"delete-unmanaged" help:"Delete local branches absent from the layout."`
	Diff            diffCmd            `cmd:"" help:"Show a branch's diff against its fork point."`
	Discover        discoverCmd        `cmd:"" help:"Rebuild the layout from branch ancestry."`
	Edit            editCmd            `cmd:"" help:"Open the layout file in an editor."`
	File            fileCmd            `cmd:"" help:"Print the layout file's path."`
	ForkPoint       forkPointCmd       `cmd:"" name:"fork-point" help:"Print or set a branch's fork point."`
	Go              goCmd              `cmd:"" help:"Check out a branch reached by a tree direction."`
	IsManaged       isManagedCmd       `cmd:"" name:"is-managed" help:"Check whether a branch is managed."`
	List            listCmd            `cmd:"" help:"List branches in a category."`
	Log             logCmd             `cmd:"" help:"List a branch's commits above its fork point."`
	Reapply         reapplyCmd         `cmd:"" help:"Rebase the current branch onto its parent from its fork point."`
	Show            showCmd            `cmd:"" help:"Print the branch reached by a tree direction."`
	SlideOut        slideOutCmd        `cmd:"" name:"slide-out" help:"Remove a merged chain from the layout."`
	Squash          squashCmd          `cmd:"" help:"Squash a branch's commits into one."`
	Status          statusCmd          `cmd:"" help:"Show the branch tree."`
	Traverse        traverseCmd        `cmd:"" help:"Walk the tree, proposing rebase/push for each branch."`
	Update          updateCmd          `cmd:"" help:"Fetch every remote."`
}

func (cmd *mainCmd) AfterApply(kctx *kong.Context, logger *log.Logger) error {
	if cmd.Debug {
		logger.SetLevel(log.LevelDebug)
	}
	kctx.Bind(&options{Yes: cmd.Yes})
	return nil
}

// options carries the subset of global flags an individual command's
// Run method needs in order to open the repository for itself, the way
// the teacher's commands call a shared "openRepo" helper rather than
// opening it once up front (a command like "version" has no repository
// to open).
type options struct {
	Yes bool
}
