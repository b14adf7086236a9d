package git

import "context"

// TrackingPair describes a local branch's upstream tracking
// configuration, derived from branch.<b>.remote and branch.<b>.merge.
type TrackingPair struct {
	Remote       string
	RemoteBranch string
}

// Tracking returns the tracking configuration for a local branch, or
// [ErrNotExist] if the branch has no upstream configured.
func (r *Repository) Tracking(ctx context.Context, branch string) (*TrackingPair, error) {
	remote, err := r.ConfigGet(ctx, "branch."+branch+".remote")
	if err != nil {
		return nil, ErrNotExist
	}

	merge, err := r.ConfigGet(ctx, "branch."+branch+".merge")
	if err != nil {
		return nil, ErrNotExist
	}

	const refsHeads = "refs/heads/"
	name := merge
	if len(merge) > len(refsHeads) && merge[:len(refsHeads)] == refsHeads {
		name = merge[len(refsHeads):]
	}

	return &TrackingPair{Remote: remote, RemoteBranch: name}, nil
}

// SetTracking sets the upstream tracking configuration for a local
// branch to point at remote/remoteBranch.
func (r *Repository) SetTracking(ctx context.Context, branch, remote, remoteBranch string) error {
	if err := r.ConfigSet(ctx, "branch."+branch+".remote", remote); err != nil {
		return err
	}
	return r.ConfigSet(ctx, "branch."+branch+".merge", "refs/heads/"+remoteBranch)
}
