package git

import "context"

// PullFastForward fast-forwards the current branch to remote/branch,
// refusing (erroring) if this would not be a fast-forward.
func (r *Repository) PullFastForward(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, "merge", "--ff-only", remote+"/"+branch)
	return err
}

// ResetKeepToRemote resets the current branch to remote/branch,
// preserving any uncommitted local changes ("--keep"), erroring if
// they would be clobbered.
func (r *Repository) ResetKeepToRemote(ctx context.Context, remote, branch string) error {
	_, err := r.run(ctx, "reset", "--keep", remote+"/"+branch)
	return err
}
