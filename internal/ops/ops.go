// Package ops implements the primitive side-effecting steps the
// traverser and CLI commands sequence: rebase, merge, push, pull,
// reset, slide-out, and squash. Each step invalidates the relevant
// caches before returning.
package ops

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/forkpoint"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/hook"
	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/sliceutil"
)

// Actions bundles the state OperationActions needs: the caching git
// context, the in-memory branch tree, fork-point inference, the hook
// runner, and where the layout file lives on disk.
type Actions struct {
	Ctx        *gitctx.Context
	Tree       *branchtree.Tree
	Fork       *forkpoint.Engine
	Hooks      *hook.Runner
	LayoutPath string
	IndentUnit layout.IndentUnit
}

// New builds an [Actions] over the given components.
func New(ctx *gitctx.Context, tree *branchtree.Tree, fork *forkpoint.Engine, layoutPath string, unit layout.IndentUnit) *Actions {
	return &Actions{
		Ctx:        ctx,
		Tree:       tree,
		Fork:       fork,
		Hooks:      hook.New(ctx.Repository()),
		LayoutPath: layoutPath,
		IndentUnit: unit,
	}
}

// RebaseOntoRequest configures [Actions.RebaseOnto].
type RebaseOntoRequest struct {
	Branch      string
	NewBase     string
	ForkPoint   git.Hash
	Interactive bool
}

// RebaseOnto rebases branch onto newBase, replaying commits after
// ForkPoint. It runs the machete-pre-rebase hook first and aborts
// without touching the repository if the hook disallows it.
func (a *Actions) RebaseOnto(ctx context.Context, req RebaseOntoRequest) error {
	allowed, err := a.Hooks.PreRebaseAllowed(ctx, req.NewBase, req.ForkPoint, req.Branch)
	if err != nil {
		return fmt.Errorf("machete-pre-rebase: %w", err)
	}
	if !allowed {
		return fmt.Errorf("machete-pre-rebase hook rejected rebase of %s", req.Branch)
	}

	repo := a.Ctx.Repository()
	err = repo.RebaseOnto(ctx, git.RebaseOntoRequest{
		NewBase:     req.NewBase,
		ForkPoint:   req.ForkPoint,
		Branch:      req.Branch,
		Interactive: req.Interactive,
	})
	a.Ctx.Flush()
	return err
}

// Merge merges parent into the current branch.
func (a *Actions) Merge(ctx context.Context, parent string, noEdit bool) error {
	err := a.Ctx.Repository().Merge(ctx, parent, noEdit)
	a.Ctx.Flush()
	return err
}

// PushRequest configures [Actions.Push].
type PushRequest struct {
	Branch         string
	ForceWithLease bool
	// Remote overrides automatic remote resolution, e.g. after the
	// caller has resolved an [errs.AmbiguousRemoteError] interactively.
	Remote string
}

// Push pushes branch to its tracking remote, or the repository's sole
// remote if it has none, failing with [errs.NoRemotesError] or
// [errs.AmbiguousRemoteError] when neither applies.
func (a *Actions) Push(ctx context.Context, req PushRequest) error {
	remote := req.Remote
	if remote == "" {
		r, err := a.resolveRemote(ctx, req.Branch)
		if err != nil {
			return err
		}
		remote = r
	}

	err := a.Ctx.Repository().Push(ctx, git.PushRequest{
		Remote:         remote,
		Branch:         req.Branch,
		ForceWithLease: req.ForceWithLease,
	})
	a.Ctx.Flush()
	return err
}

// resolveRemote picks the remote to push/pull branch against: its
// tracking remote if configured, otherwise the repository's sole
// remote. Ambiguous or absent remotes are reported as errors rather
// than guessed at.
func (a *Actions) resolveRemote(ctx context.Context, branch string) (string, error) {
	if tracking, err := a.Ctx.Tracking(ctx, branch); err == nil {
		return tracking.Remote, nil
	}

	remotes, err := a.Ctx.Remotes(ctx)
	if err != nil {
		return "", err
	}
	switch len(remotes) {
	case 0:
		return "", &errs.NoRemotesError{}
	case 1:
		return remotes[0], nil
	default:
		return "", &errs.AmbiguousRemoteError{Remotes: remotes}
	}
}

// PullFastForward fast-forwards branch to its remote-tracking tip.
// remoteOverride, if non-empty, skips automatic remote resolution.
func (a *Actions) PullFastForward(ctx context.Context, branch, remoteOverride string) error {
	remote := remoteOverride
	if remote == "" {
		r, err := a.resolveRemote(ctx, branch)
		if err != nil {
			return err
		}
		remote = r
	}
	tracking, err := a.Ctx.Tracking(ctx, branch)
	if err != nil {
		return err
	}
	err = a.Ctx.Repository().PullFastForward(ctx, remote, tracking.RemoteBranch)
	a.Ctx.Flush()
	return err
}

// ResetKeepToRemote resets branch to its remote-tracking tip, keeping
// any uncommitted local changes. remoteOverride, if non-empty, skips
// automatic remote resolution.
func (a *Actions) ResetKeepToRemote(ctx context.Context, branch, remoteOverride string) error {
	remote := remoteOverride
	if remote == "" {
		r, err := a.resolveRemote(ctx, branch)
		if err != nil {
			return err
		}
		remote = r
	}
	tracking, err := a.Ctx.Tracking(ctx, branch)
	if err != nil {
		return err
	}
	err = a.Ctx.Repository().ResetKeepToRemote(ctx, remote, tracking.RemoteBranch)
	a.Ctx.Flush()
	return err
}

// SlideOutRequest configures [Actions.SlideOut].
type SlideOutRequest struct {
	// Sequence is a single chain, outermost branch first, as required
	// by [branchtree.Tree.SlideOut].
	Sequence []string
	// Delete removes the local branches of the slid-out chain after a
	// successful tree/file update.
	Delete bool
}

// SlideOut removes Sequence from the tree, rewrites the layout file,
// optionally deletes the local branches, and runs the
// machete-post-slide-out hook.
func (a *Actions) SlideOut(ctx context.Context, req SlideOutRequest) error {
	if len(req.Sequence) == 0 {
		return &errs.LayoutError{Reason: "slide-out sequence must not be empty"}
	}

	first := req.Sequence[0]
	upstream, ok := a.Tree.Parent(first)
	if !ok {
		return &errs.LayoutError{Branch: first, Reason: "cannot slide out a root branch"}
	}

	last := req.Sequence[len(req.Sequence)-1]
	downstreams := a.Tree.Children(last)

	if err := a.Tree.SlideOut(req.Sequence); err != nil {
		return err
	}
	if err := layout.WriteFile(a.LayoutPath, a.Tree, a.IndentUnit, false); err != nil {
		return err
	}

	if req.Delete {
		for _, b := range req.Sequence {
			if err := a.Ctx.Repository().DeleteBranch(ctx, b, git.BranchDeleteOptions{Force: true}); err != nil {
				return err
			}
		}
		a.Ctx.Flush()
	}

	if err := a.Hooks.PostSlideOut(ctx, upstream, last, downstreams); err != nil {
		return fmt.Errorf("machete-post-slide-out: %w", err)
	}
	return nil
}

// Squash rebuilds branch as a single commit at forkPoint: a new commit
// whose tree matches the branch's current tip and whose message is the
// earliest squashed commit's message. Unlike rebase, this never shells
// out to "git rebase"; it builds the commit object directly and resets
// the branch onto it.
func (a *Actions) Squash(ctx context.Context, branch string, forkPoint git.Hash) error {
	repo := a.Ctx.Repository()

	tip, err := repo.CommitHash(ctx, branch)
	if err != nil {
		return err
	}
	tree, err := repo.TreeHash(ctx, branch)
	if err != nil {
		return err
	}

	unique, err := repo.RangeFirstParent(ctx, forkPoint.String(), tip.String())
	if err != nil {
		return fmt.Errorf("commits unique to %s: %w", branch, err)
	}
	if len(unique) == 0 {
		return fmt.Errorf("%s has no commits above its fork point to squash", branch)
	}
	earliest := unique[len(unique)-1]

	msg, err := repo.CommitMessage(ctx, earliest.String())
	if err != nil {
		return err
	}

	commit, err := repo.CommitTree(ctx, git.CommitTreeRequest{
		Tree:    tree,
		Parent:  forkPoint,
		Message: msg,
	})
	if err != nil {
		return err
	}

	if err := repo.UpdateRef(ctx, branch, commit); err != nil {
		return err
	}

	current, ok, err := a.Ctx.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if ok && current == branch {
		if err := repo.ResetHard(ctx, commit); err != nil {
			return err
		}
	}

	a.Ctx.Flush()
	return nil
}

// DeleteBranch deletes a single unmanaged local branch, used by
// delete-unmanaged.
func (a *Actions) DeleteBranch(ctx context.Context, branch string, force bool) error {
	err := a.Ctx.Repository().DeleteBranch(ctx, branch, git.BranchDeleteOptions{Force: force})
	a.Ctx.Flush()
	return err
}

// DeleteUnmanaged deletes every local branch not present in the tree,
// skipping the current branch. It reports the branches it deleted.
func (a *Actions) DeleteUnmanaged(ctx context.Context, force bool) ([]string, error) {
	locals, err := a.Ctx.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}
	current, _, err := a.Ctx.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	// LocalBranches caches locals in *gitctx.Context; RemoveFunc reuses its
	// input's backing array, so filter a copy rather than the cached slice.
	candidates := sliceutil.RemoveFunc(append([]string(nil), locals...), func(b string) bool {
		return b == current || a.Tree.IsManaged(b)
	})

	var deleted []string
	for _, b := range candidates {
		if err := a.DeleteBranch(ctx, b, force); err != nil {
			return deleted, fmt.Errorf("delete %s: %w", b, err)
		}
		deleted = append(deleted, b)
	}
	return deleted, nil
}
