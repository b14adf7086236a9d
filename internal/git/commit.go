package git

import "context"

// CommitMessage returns the full commit message (subject and body) of rev.
func (r *Repository) CommitMessage(ctx context.Context, rev string) (string, error) {
	out, err := r.run(ctx, "log", "-1", "--format=%B", rev)
	if err != nil {
		return "", err
	}
	return out, nil
}

// CommitTreeRequest specifies a low-level commit object to build.
type CommitTreeRequest struct {
	Tree    Hash
	Parent  Hash
	Message string
}

// CommitTree creates a new commit object from a tree and parent without
// touching the working tree or index ("git commit-tree"), returning the
// new commit's hash.
func (r *Repository) CommitTree(ctx context.Context, req CommitTreeRequest) (Hash, error) {
	out, err := r.run(ctx, "commit-tree", req.Tree.String(), "-p", req.Parent.String(), "-m", req.Message)
	if err != nil {
		return "", err
	}
	return Hash(out), nil
}

// UpdateRef points the branch's ref directly at commit, bypassing
// checkout/reset plumbing ("git update-ref").
func (r *Repository) UpdateRef(ctx context.Context, branch string, commit Hash) error {
	_, err := r.run(ctx, "update-ref", "refs/heads/"+branch, commit.String())
	return err
}

// ResetHard resets the current branch (HEAD) to commit, discarding the
// index and working tree changes relative to the prior HEAD. Used by
// squash, which has already reduced the branch to a single commit and
// needs the worktree to match it.
func (r *Repository) ResetHard(ctx context.Context, commit Hash) error {
	_, err := r.run(ctx, "reset", "--hard", commit.String())
	return err
}
