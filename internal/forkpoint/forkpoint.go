// Package forkpoint implements fork-point inference: for a managed
// branch, the commit at which its unique history begins.
package forkpoint

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
)

// Tree is the subset of [*branchtree.Tree] the engine needs: the
// declared parent of a branch, for the ancestor-fallback rule.
type Tree interface {
	Parent(name string) (string, bool)
}

var _ Tree = (*branchtree.Tree)(nil)

// Engine infers fork points, honoring config overrides.
//
// It maintains a reflog index (commit hash -> set of ref names whose
// reflog contains that commit) as a derived cache on top of
// [*gitctx.Context]; it subscribes to the context so that any
// operation that flushes git state (in particular fetch) also
// invalidates this index instead of going stale behind a second,
// independent cache.
type Engine struct {
	ctx  *gitctx.Context
	tree Tree

	index map[git.Hash]map[string]struct{} // nil = not yet built
}

// New builds a fork point [Engine] over ctx and tree.
func New(ctx *gitctx.Context, tree Tree) *Engine {
	e := &Engine{ctx: ctx, tree: tree}
	ctx.Subscribe(e.invalidate)
	return e
}

func (e *Engine) invalidate() {
	e.index = nil
}

// ForkPoint returns the fork point of branch: the commit from which its
// unique history begins. An active, valid override takes precedence
// over inference.
func (e *Engine) ForkPoint(ctx context.Context, branch string) (git.Hash, error) {
	if h, ok, err := e.override(ctx, branch); err != nil {
		return "", err
	} else if ok {
		return h, nil
	}
	return e.infer(ctx, branch)
}

// IsOverridden reports whether branch has a currently-valid fork point
// override (an override exists and is an ancestor of the branch tip).
func (e *Engine) IsOverridden(ctx context.Context, branch string) bool {
	_, ok, err := e.override(ctx, branch)
	return err == nil && ok
}

// InferredForkPoint returns branch's fork point as computed by
// inference alone, ignoring any config override. Used by
// "fork-point --inferred", a plumbing-stable diagnostic that must not
// be affected by an override set with "fork-point --set".
func (e *Engine) InferredForkPoint(ctx context.Context, branch string) (git.Hash, error) {
	return e.infer(ctx, branch)
}

func (e *Engine) override(ctx context.Context, branch string) (git.Hash, bool, error) {
	v, err := e.ctx.ConfigGet(ctx, overrideKey(branch))
	if err != nil {
		return "", false, nil //nolint:nilerr // unset override is not an error
	}
	h := git.Hash(v)

	tip, err := e.ctx.CommitHash(ctx, branch)
	if err != nil {
		return "", false, err
	}
	if !e.ctx.IsAncestor(ctx, h.String(), tip.String()) {
		// Override points at a commit that is no longer an ancestor
		// of the branch tip: silently ignored, not deleted.
		return "", false, nil
	}
	return h, true, nil
}

// SetOverride stores a fork point override for branch.
func (e *Engine) SetOverride(ctx context.Context, branch string, to git.Hash) error {
	return e.ctx.ConfigSet(ctx, overrideKey(branch), to.String())
}

// UnsetOverride removes any fork point override for branch.
func (e *Engine) UnsetOverride(ctx context.Context, branch string) error {
	return e.ctx.ConfigUnset(ctx, overrideKey(branch))
}

func overrideKey(branch string) string {
	return "machete.overrideForkPoint." + branch + ".to"
}

func (e *Engine) infer(ctx context.Context, branch string) (git.Hash, error) {
	tip, err := e.ctx.CommitHash(ctx, branch)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", branch, err)
	}

	index, err := e.reflogIndex(ctx)
	if err != nil {
		return "", err
	}

	history, err := e.ctx.FirstParentLog(ctx, tip.String())
	if err != nil {
		return "", fmt.Errorf("walk history of %s: %w", branch, err)
	}

	for _, h := range history {
		if hasOtherRef(index[h], branch) {
			return h, nil
		}
	}

	// Fallback: the branch's declared parent, if it actually contains
	// the branch's history.
	if parent, ok := e.tree.Parent(branch); ok {
		if e.ctx.IsAncestor(ctx, parent, branch) {
			return e.ctx.CommitHash(ctx, parent)
		}
	}

	return "", &errs.ForkPointUnknownError{Branch: branch}
}

func hasOtherRef(refs map[string]struct{}, self string) bool {
	for r := range refs {
		if r != self {
			return true
		}
	}
	return false
}

// reflogIndex lazily builds (and caches) the map from commit hash to the
// set of ref names (local branches, by name, plus remote-tracking
// branches, as "<remote>/<name>") whose reflog contains that commit.
func (e *Engine) reflogIndex(ctx context.Context) (map[git.Hash]map[string]struct{}, error) {
	if e.index != nil {
		return e.index, nil
	}

	index := make(map[git.Hash]map[string]struct{})
	add := func(ref string, hashes []git.Hash) {
		for _, h := range hashes {
			set := index[h]
			if set == nil {
				set = make(map[string]struct{})
				index[h] = set
			}
			set[ref] = struct{}{}
		}
	}

	locals, err := e.ctx.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range locals {
		hashes, err := e.ctx.Reflog(ctx, "refs/heads/"+b)
		if err != nil {
			return nil, err
		}
		add(b, hashes)
	}

	remotes, err := e.ctx.RemoteBranches(ctx)
	if err != nil {
		return nil, err
	}
	for _, rb := range remotes {
		ref := rb.Remote + "/" + rb.Name
		hashes, err := e.ctx.Reflog(ctx, "refs/remotes/"+ref)
		if err != nil {
			return nil, err
		}
		add(ref, hashes)
	}

	e.index = index
	return index, nil
}
