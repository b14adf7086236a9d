// Package gitctx provides a typed, lazily populated cache over a
// [git.Repository]: refs, commit hashes, reflogs, merge-base, config,
// current branch, and repo layout.
//
// Every mutating git operation elsewhere in this module (rebase, merge,
// push, pull, reset, branch create/delete, config change, fetch) MUST
// invalidate the caches it could have affected before the next read; see
// [Context.Flush] and [Context.FetchRemote]. [Context] is also the single
// place dependent upper-layer caches (the ForkPointEngine reflog index,
// in particular) subscribe to for invalidation, so that a fetch cannot
// flush one cache layer while leaving another stale.
package gitctx

import (
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/git"
)

// Context is a caching façade over a [git.Repository].
//
// It is not safe for concurrent use; the engine is single-threaded.
type Context struct {
	repo *git.Repository

	currentBranch   *string // nil = not yet queried; points to "" for detached HEAD
	localBranches   []string
	remoteBranches  []git.RemoteBranch
	remotes         []string
	ongoingOp       *errs.OngoingOp
	commitHash      map[string]git.Hash
	treeHash        map[string]git.Hash
	committerDate   map[string]int64
	mergeBase       map[pairKey]git.Hash
	reflogs         map[string][]git.Hash
	config          map[string]configEntry
	configRegexp    map[string][]git.ConfigEntry
	tracking        map[string]*git.TrackingPair

	// observers are invoked whenever a mutating operation invalidates
	// the caches: see [Context.Subscribe]. ForkPointEngine's reflog
	// index is the primary subscriber.
	observers []func()
}

type pairKey struct{ a, b string }

type configEntry struct {
	value string
	ok    bool
}

// New wraps repo in a caching [Context].
func New(repo *git.Repository) *Context {
	return &Context{repo: repo}
}

// Repository returns the underlying repository handle, for callers that
// need an operation not exposed by [Context] (e.g. the side-effecting
// steps in package ops).
func (c *Context) Repository() *git.Repository { return c.repo }

// Subscribe registers fn to be called whenever [Context.Flush] or
// [Context.FetchRemote] invalidates the caches. Used by dependent
// derived caches (the reflog index in package forkpoint) so that a
// single flush cascades everywhere, instead of two independently
// maintained cache layers that can fall out of sync.
func (c *Context) Subscribe(fn func()) {
	c.observers = append(c.observers, fn)
}

// Flush invalidates every cache. Call after any mutating git operation.
func (c *Context) Flush() {
	c.currentBranch = nil
	c.localBranches = nil
	c.remoteBranches = nil
	c.remotes = nil
	c.ongoingOp = nil
	c.commitHash = nil
	c.treeHash = nil
	c.committerDate = nil
	c.mergeBase = nil
	c.reflogs = nil
	c.config = nil
	c.configRegexp = nil
	c.tracking = nil

	for _, fn := range c.observers {
		fn()
	}
}

// FetchRemote fetches updates from remote and invalidates every cache,
// including derived indices owned by subscribers: a fetch can rewrite
// any ref and any reflog, so nothing may survive it unflushed.
func (c *Context) FetchRemote(ctx context.Context, remote string) error {
	if err := c.repo.FetchRemote(ctx, remote); err != nil {
		return err
	}
	c.Flush()
	return nil
}

// CurrentBranch returns the current branch, or ("", false) if HEAD is
// detached.
func (c *Context) CurrentBranch(ctx context.Context) (string, bool, error) {
	if c.currentBranch != nil {
		return *c.currentBranch, *c.currentBranch != "", nil
	}

	name, err := c.repo.CurrentBranch(ctx)
	switch {
	case err == nil:
		c.currentBranch = &name
		return name, true, nil
	case err == git.ErrDetachedHead:
		empty := ""
		c.currentBranch = &empty
		return "", false, nil
	default:
		return "", false, err
	}
}

// LocalBranches lists local branches.
func (c *Context) LocalBranches(ctx context.Context) ([]string, error) {
	if c.localBranches != nil {
		return c.localBranches, nil
	}
	branches, err := c.repo.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}
	c.localBranches = branches
	return branches, nil
}

// RemoteBranches lists remote-tracking branches across all remotes.
func (c *Context) RemoteBranches(ctx context.Context) ([]git.RemoteBranch, error) {
	if c.remoteBranches != nil {
		return c.remoteBranches, nil
	}
	branches, err := c.repo.RemoteBranches(ctx)
	if err != nil {
		return nil, err
	}
	c.remoteBranches = branches
	return branches, nil
}

// Remotes lists configured remote names.
func (c *Context) Remotes(ctx context.Context) ([]string, error) {
	if c.remotes != nil {
		return c.remotes, nil
	}
	remotes, err := c.repo.Remotes(ctx)
	if err != nil {
		return nil, err
	}
	c.remotes = remotes
	return remotes, nil
}

// Tracking returns the tracking configuration for branch, or
// [git.ErrNotExist] if it has none.
func (c *Context) Tracking(ctx context.Context, branch string) (*git.TrackingPair, error) {
	if c.tracking == nil {
		c.tracking = make(map[string]*git.TrackingPair)
	}
	if t, ok := c.tracking[branch]; ok {
		return t, nil
	}

	t, err := c.repo.Tracking(ctx, branch)
	if err != nil {
		return nil, err
	}
	c.tracking[branch] = t
	return t, nil
}

// CommitHash resolves rev to its commit hash.
func (c *Context) CommitHash(ctx context.Context, rev string) (git.Hash, error) {
	if c.commitHash == nil {
		c.commitHash = make(map[string]git.Hash)
	}
	if h, ok := c.commitHash[rev]; ok {
		return h, nil
	}

	h, err := c.repo.CommitHash(ctx, rev)
	if err != nil {
		return "", err
	}
	c.commitHash[rev] = h
	return h, nil
}

// TreeHash resolves rev to the hash of its tree.
func (c *Context) TreeHash(ctx context.Context, rev string) (git.Hash, error) {
	if c.treeHash == nil {
		c.treeHash = make(map[string]git.Hash)
	}
	if h, ok := c.treeHash[rev]; ok {
		return h, nil
	}

	h, err := c.repo.TreeHash(ctx, rev)
	if err != nil {
		return "", err
	}
	c.treeHash[rev] = h
	return h, nil
}

// CommitterDate returns the committer date (unix seconds) of rev.
func (c *Context) CommitterDate(ctx context.Context, rev string) (int64, error) {
	if c.committerDate == nil {
		c.committerDate = make(map[string]int64)
	}
	if ts, ok := c.committerDate[rev]; ok {
		return ts, nil
	}

	ts, err := c.repo.CommitterDate(ctx, rev)
	if err != nil {
		return 0, err
	}
	c.committerDate[rev] = ts
	return ts, nil
}

// MergeBase returns a common ancestor of a and b.
func (c *Context) MergeBase(ctx context.Context, a, b string) (git.Hash, error) {
	if c.mergeBase == nil {
		c.mergeBase = make(map[pairKey]git.Hash)
	}
	key := pairKey{a, b}
	if h, ok := c.mergeBase[key]; ok {
		return h, nil
	}

	h, err := c.repo.MergeBase(ctx, a, b)
	if err != nil {
		return "", err
	}
	c.mergeBase[key] = h
	return h, nil
}

// IsAncestor reports whether a is an ancestor of (or equal to) b. Not
// itself cached (git answers it about as fast as a map lookup would),
// but it only ever reads ref state already covered by [Context.Flush].
func (c *Context) IsAncestor(ctx context.Context, a, b string) bool {
	return c.repo.IsAncestor(ctx, a, b)
}

// FirstParentLog returns the commit hashes reachable from rev by
// following first-parent history, most recent first.
func (c *Context) FirstParentLog(ctx context.Context, rev string) ([]git.Hash, error) {
	return c.repo.FirstParentLog(ctx, rev)
}

// Reflog returns ref's reflog, most recent first, deduplicated.
func (c *Context) Reflog(ctx context.Context, ref string) ([]git.Hash, error) {
	if c.reflogs == nil {
		c.reflogs = make(map[string][]git.Hash)
	}
	if h, ok := c.reflogs[ref]; ok {
		return h, nil
	}

	h, err := c.repo.Reflog(ctx, ref)
	if err != nil {
		return nil, err
	}
	c.reflogs[ref] = h
	return h, nil
}

// ReflogTimestamp reports the unix timestamp of ref's most recent
// reflog entry.
func (c *Context) ReflogTimestamp(ctx context.Context, ref string) (int64, error) {
	return c.repo.ReflogTimestamp(ctx, ref)
}

// ConfigGet returns the value of a single-valued config key.
func (c *Context) ConfigGet(ctx context.Context, key string) (string, error) {
	if c.config == nil {
		c.config = make(map[string]configEntry)
	}
	if e, ok := c.config[key]; ok {
		if !e.ok {
			return "", fmt.Errorf("%w: config key %q", git.ErrNotExist, key)
		}
		return e.value, nil
	}

	v, err := c.repo.ConfigGet(ctx, key)
	if err != nil {
		c.config[key] = configEntry{ok: false}
		return "", err
	}
	c.config[key] = configEntry{value: v, ok: true}
	return v, nil
}

// ConfigSet sets a config key, invalidating any cached reads of it.
func (c *Context) ConfigSet(ctx context.Context, key, value string) error {
	if err := c.repo.ConfigSet(ctx, key, value); err != nil {
		return err
	}
	delete(c.config, key)
	c.configRegexp = nil // conservatively drop regexp caches too
	return nil
}

// ConfigUnset removes a config key.
func (c *Context) ConfigUnset(ctx context.Context, key string) error {
	if err := c.repo.ConfigUnset(ctx, key); err != nil {
		return err
	}
	delete(c.config, key)
	c.configRegexp = nil
	return nil
}

// ConfigKeysMatching returns config keys matching pattern, with values.
func (c *Context) ConfigKeysMatching(ctx context.Context, pattern string) ([]git.ConfigEntry, error) {
	if c.configRegexp == nil {
		c.configRegexp = make(map[string][]git.ConfigEntry)
	}
	if es, ok := c.configRegexp[pattern]; ok {
		return es, nil
	}

	es, err := c.repo.ConfigKeysMatching(ctx, pattern)
	if err != nil {
		return nil, err
	}
	c.configRegexp[pattern] = es
	return es, nil
}

// OngoingOperation reports any rebase/merge/am/cherry-pick/revert
// currently in progress in this worktree.
func (c *Context) OngoingOperation(ctx context.Context) errs.OngoingOp {
	if c.ongoingOp != nil {
		return *c.ongoingOp
	}
	op := c.repo.OngoingOperation(ctx)
	c.ongoingOp = &op
	return op
}
