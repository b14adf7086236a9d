package git

import (
	"context"
	"os"
	"path/filepath"

	"go.abhg.dev/ladder/internal/errs"
)

// OngoingOperation reports whether a rebase, merge, am session,
// cherry-pick, or revert is currently in progress in this worktree,
// by checking for the state files git itself leaves behind in gitDir.
func (r *Repository) OngoingOperation(_ context.Context) errs.OngoingOp {
	exists := func(parts ...string) bool {
		_, err := os.Stat(filepath.Join(append([]string{r.gitDir}, parts...)...))
		return err == nil
	}

	switch {
	case exists("rebase-apply", "applying"):
		return errs.OpAmSession
	case exists("rebase-merge"), exists("rebase-apply"):
		return errs.OpRebase
	case exists("CHERRY_PICK_HEAD"):
		return errs.OpCherryPick
	case exists("REVERT_HEAD"):
		return errs.OpRevert
	case exists("MERGE_HEAD"):
		return errs.OpMerge
	default:
		return errs.OpNone
	}
}
