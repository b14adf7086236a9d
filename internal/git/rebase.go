package git

import (
	"context"

	"go.abhg.dev/ladder/internal/errs"
)

// RebaseOntoRequest specifies a "rebase --onto" invocation.
type RebaseOntoRequest struct {
	// NewBase is the revision the branch's commits are replayed onto.
	NewBase string
	// ForkPoint is the commit at which the branch's unique history
	// begins; commits after it (exclusive) are replayed.
	ForkPoint Hash
	// Branch is checked out and rebased. Empty means the current branch.
	Branch string
	// Interactive runs the rebase with "-i", handing the TTY to the
	// configured sequence editor. When false, the rebase runs
	// non-interactively.
	Interactive bool
}

// RebaseOnto runs "git rebase --onto <new-base> <fork-point> [branch]",
// appending any extra arguments from GIT_LADDER_REBASE_OPTS. Interactive
// rebases inherit the calling process's TTY; callers must not run them
// concurrently with anything else touching the worktree.
func (r *Repository) RebaseOnto(ctx context.Context, req RebaseOntoRequest) error {
	args := []string{"rebase"}
	if req.Interactive {
		args = append(args, "-i")
	}
	args = append(args, "--onto", req.NewBase, req.ForkPoint.String())
	if req.Branch != "" {
		args = append(args, req.Branch)
	}
	args = append(args, r.shell.RebaseExtraArgs()...)

	if req.Interactive {
		return r.shell.SpawnInteractive(ctx, r.root, nil, args...)
	}
	_, err := r.run(ctx, args...)
	return err
}

// RebaseInProgress reports whether a rebase is currently underway in
// this repository's worktree, per [Repository.OngoingOperation].
func (r *Repository) RebaseInProgress(ctx context.Context) bool {
	return r.OngoingOperation(ctx) == errs.OpRebase
}
