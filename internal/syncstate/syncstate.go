// Package syncstate classifies the relationship between a managed
// branch and its declared parent (in-sync, fork-point drifted,
// out-of-sync, or already merged) and the relationship between a local
// branch and its remote-tracking counterpart.
package syncstate

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
)

// EdgeState classifies a managed branch's relationship to its parent.
type EdgeState int

const (
	// InSync means the branch's history builds directly on its
	// parent's current tip: the fork point equals the parent's commit.
	InSync EdgeState = iota
	// InSyncButForkPointOff means the parent is still an ancestor of
	// the branch, but the branch's remembered fork point lags behind
	// the parent's current tip (the parent moved forward without the
	// branch rebasing onto it).
	InSyncButForkPointOff
	// OutOfSync means the parent is not an ancestor of the branch at
	// all: the branch needs a rebase (or merge) onto its parent.
	OutOfSync
	// Merged means the branch's changes are already incorporated into
	// the parent, by history or, per the configured detection mode, by
	// content equivalence (e.g. a squash merge).
	Merged
)

func (s EdgeState) String() string {
	switch s {
	case InSync:
		return "in-sync"
	case InSyncButForkPointOff:
		return "fork-point-off"
	case OutOfSync:
		return "out-of-sync"
	case Merged:
		return "merged"
	default:
		return "unknown"
	}
}

// RemoteSyncState classifies a local branch's relationship to its
// remote-tracking branch.
type RemoteSyncState int

const (
	// NoRemotes means the repository has no remotes configured.
	NoRemotes RemoteSyncState = iota
	// Untracked means the branch has no remote-tracking counterpart.
	Untracked
	// InSyncRemote means the local and remote tips are identical.
	InSyncRemote
	// Ahead means the local branch has commits the remote lacks, and
	// the remote has none that the local branch lacks (fast-forwardable).
	Ahead
	// Behind means the remote has commits the local branch lacks, and
	// the local branch has none that the remote lacks (fast-forward pull).
	Behind
	// DivergedAndNewer means both sides have unique commits, and the
	// local tip's committer date is the more recent of the two.
	DivergedAndNewer
	// DivergedAndOlder means both sides have unique commits, and the
	// remote tip's committer date is the more recent of the two.
	DivergedAndOlder
)

func (s RemoteSyncState) String() string {
	switch s {
	case NoRemotes:
		return "no-remotes"
	case Untracked:
		return "untracked"
	case InSyncRemote:
		return "in-sync"
	case Ahead:
		return "ahead"
	case Behind:
		return "behind"
	case DivergedAndNewer:
		return "diverged-newer"
	case DivergedAndOlder:
		return "diverged-older"
	default:
		return "unknown"
	}
}

// SquashMergeMode controls how aggressively [Classifier.Edge] recognizes
// a branch as merged when it is not a literal ancestor of its parent.
type SquashMergeMode int

const (
	// SquashMergeNone recognizes only true ancestry (fast-forward or
	// merge-commit descent) as merged.
	SquashMergeNone SquashMergeMode = iota
	// SquashMergeSimple additionally recognizes a squash merge: some
	// commit in the parent's history (back to the merge-base) has the
	// exact same tree as the branch tip.
	SquashMergeSimple
	// SquashMergeExact additionally recognizes a squashed-and-rebased
	// branch: every commit unique to the branch has a patch-id match
	// among the commits unique to the parent.
	SquashMergeExact
)

// ParseSquashMergeMode parses the machete.squashMergeDetection config
// value, defaulting to [SquashMergeSimple] for an unrecognized or empty
// string, matching the upstream tool's default.
func ParseSquashMergeMode(s string) SquashMergeMode {
	switch s {
	case "none":
		return SquashMergeNone
	case "exact":
		return SquashMergeExact
	default:
		return SquashMergeSimple
	}
}

// ForkPointer is the subset of [*forkpoint.Engine] the classifier needs.
type ForkPointer interface {
	ForkPoint(ctx context.Context, branch string) (git.Hash, error)
}

// Classifier computes [EdgeState] and [RemoteSyncState] values from a
// [*gitctx.Context] and a fork-point source.
type Classifier struct {
	ctx  *gitctx.Context
	fork ForkPointer
	mode SquashMergeMode
}

// New builds a [Classifier]. mode controls squash-merge recognition.
func New(ctx *gitctx.Context, fork ForkPointer, mode SquashMergeMode) *Classifier {
	return &Classifier{ctx: ctx, fork: fork, mode: mode}
}

// Edge classifies the edge from child to its parent.
func (c *Classifier) Edge(ctx context.Context, parent, child string) (EdgeState, error) {
	merged, err := c.isMerged(ctx, parent, child)
	if err != nil {
		return 0, err
	}
	if merged {
		return Merged, nil
	}

	if !c.ctx.IsAncestor(ctx, parent, child) {
		return OutOfSync, nil
	}

	fp, err := c.fork.ForkPoint(ctx, child)
	if err != nil {
		return 0, fmt.Errorf("fork point of %s: %w", child, err)
	}
	parentHash, err := c.ctx.CommitHash(ctx, parent)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", parent, err)
	}
	if fp == parentHash {
		return InSync, nil
	}
	return InSyncButForkPointOff, nil
}

func (c *Classifier) isMerged(ctx context.Context, parent, child string) (bool, error) {
	if c.ctx.IsMergedInto(ctx, child, parent) {
		return true, nil
	}
	if c.mode == SquashMergeNone {
		return false, nil
	}

	childTree, err := c.ctx.TreeHash(ctx, child)
	if err != nil {
		return false, fmt.Errorf("tree of %s: %w", child, err)
	}

	base, err := c.ctx.MergeBase(ctx, parent, child)
	if err != nil {
		// No common ancestor at all: cannot be a squash merge of one
		// into the other.
		return false, nil //nolint:nilerr
	}

	parentUnique, err := c.ctx.Repository().RangeFirstParent(ctx, base.String(), parent)
	if err != nil {
		return false, fmt.Errorf("commits unique to %s: %w", parent, err)
	}
	for _, h := range parentUnique {
		t, err := c.ctx.TreeHash(ctx, h.String())
		if err != nil {
			return false, fmt.Errorf("tree of %s: %w", h, err)
		}
		if t == childTree {
			return true, nil
		}
	}
	if c.mode != SquashMergeExact {
		return false, nil
	}

	childUnique, err := c.ctx.Repository().RangeFirstParent(ctx, base.String(), child)
	if err != nil {
		return false, fmt.Errorf("commits unique to %s: %w", child, err)
	}
	if len(childUnique) == 0 {
		return false, nil
	}

	parentPatchIDs := make(map[string]struct{}, len(parentUnique))
	for _, h := range parentUnique {
		id, err := c.ctx.Repository().PatchID(ctx, h.String())
		if err != nil {
			return false, fmt.Errorf("patch-id of %s: %w", h, err)
		}
		parentPatchIDs[id] = struct{}{}
	}

	for _, h := range childUnique {
		id, err := c.ctx.Repository().PatchID(ctx, h.String())
		if err != nil {
			return false, fmt.Errorf("patch-id of %s: %w", h, err)
		}
		if _, ok := parentPatchIDs[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Remote classifies branch's relationship to its remote-tracking branch.
func (c *Classifier) Remote(ctx context.Context, branch string) (RemoteSyncState, error) {
	remotes, err := c.ctx.Remotes(ctx)
	if err != nil {
		return 0, err
	}
	if len(remotes) == 0 {
		return NoRemotes, nil
	}

	tracking, err := c.ctx.Tracking(ctx, branch)
	if err != nil {
		return Untracked, nil //nolint:nilerr // no upstream configured
	}
	remoteRef := "refs/remotes/" + tracking.Remote + "/" + tracking.RemoteBranch

	local, err := c.ctx.CommitHash(ctx, branch)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", branch, err)
	}
	remote, err := c.ctx.CommitHash(ctx, remoteRef)
	if err != nil {
		// Upstream configured but the tracking ref itself is gone
		// (never fetched, or deleted upstream).
		return Untracked, nil //nolint:nilerr
	}
	if local == remote {
		return InSyncRemote, nil
	}

	localAncestor := c.ctx.IsAncestor(ctx, branch, remote.String())
	remoteAncestor := c.ctx.IsAncestor(ctx, remote.String(), branch)

	switch {
	case remoteAncestor && !localAncestor:
		return Ahead, nil
	case localAncestor && !remoteAncestor:
		return Behind, nil
	}

	localDate, err := c.ctx.CommitterDate(ctx, branch)
	if err != nil {
		return 0, fmt.Errorf("committer date of %s: %w", branch, err)
	}
	remoteDate, err := c.ctx.CommitterDate(ctx, remote.String())
	if err != nil {
		return 0, fmt.Errorf("committer date of %s: %w", remote, err)
	}
	if localDate >= remoteDate {
		return DivergedAndNewer, nil
	}
	return DivergedAndOlder, nil
}
