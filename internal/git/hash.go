package git

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotExist indicates that a requested ref, branch, or remote does
// not exist.
var ErrNotExist = errors.New("does not exist")

// Hash is a git object hash. It is compared strictly by equality and is
// never truncated in storage; [Hash.Short] produces an abbreviated form
// only for display. Both SHA-1 (40 hex) and SHA-256 (64 hex) hashes are
// accepted transparently.
type Hash string

// ZeroHash is the empty/unset hash.
const ZeroHash Hash = ""

// IsZero reports whether h is unset.
func (h Hash) IsZero() bool { return h == "" }

// String returns the hash as a string.
func (h Hash) String() string { return string(h) }

// Short returns an abbreviated form of the hash, long enough to be
// unambiguous in typical repositories, for display purposes only.
func (h Hash) Short() string {
	const n = 8
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

// CommitHash resolves rev to the hash of the commit it refers to.
// Tag and branch names are resolved via "refs/heads/<name>" first when
// ref is a plain name known to be a local branch, to avoid ambiguity
// with a like-named tag; see [Repository.RevParseBranch].
func (r *Repository) CommitHash(ctx context.Context, rev string) (Hash, error) {
	if out, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "--end-of-options", "refs/heads/"+rev+"^{commit}"); err == nil {
		return Hash(out), nil
	}
	out, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "--end-of-options", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotExist, rev)
	}
	return Hash(out), nil
}

// TreeHash resolves rev to the hash of the tree that its commit refers
// to.
func (r *Repository) TreeHash(ctx context.Context, rev string) (Hash, error) {
	out, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "--end-of-options", rev+"^{tree}")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotExist, rev)
	}
	return Hash(out), nil
}

// RevParseBranch resolves name unambiguously as a local branch,
// bypassing any like-named tag, per the disambiguation rule in the
// design notes (never rely on git's short-name resolution order).
func (r *Repository) RevParseBranch(ctx context.Context, name string) (Hash, error) {
	return r.CommitHash(ctx, "refs/heads/"+name)
}
