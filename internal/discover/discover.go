// Package discover infers a plausible branch layout from a
// repository's existing local branches and reflogs, for the
// "discover" command and for re-running it against a repository whose
// branches have moved on since the layout file was last written.
package discover

import (
	"context"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/log"
	"go.abhg.dev/ladder/internal/maputil"
)

// defaultRoots are the candidate root branch names considered when the
// caller does not provide an explicit --roots list.
var defaultRoots = []string{"master", "main", "develop"}

// Options configures [Engine.Discover].
type Options struct {
	// Roots overrides the default root candidates.
	Roots []string
	// MaxCandidates caps how many non-root branches, by most recent
	// reflog activity, are considered. Zero uses the default of 10.
	MaxCandidates int
	// Previous is the layout tree read before discovery, used to
	// preserve qualifiers and annotations across re-discovery.
	Previous *branchtree.Tree
}

// Engine infers a [branchtree.Tree] from a repository's branches.
type Engine struct {
	ctx    *gitctx.Context
	logger *log.Logger
}

// New builds a discover [Engine] over ctx. A nil logger discards log
// output.
func New(ctx *gitctx.Context, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{ctx: ctx, logger: logger}
}

// Discover builds a candidate tree per the roots/candidates/parent
// rules: roots default to {master, main, develop} intersected with
// existing local branches; non-root candidates are the most recently
// active local branches (by reflog timestamp); each candidate's parent
// is the nearest managed-candidate ancestor; root candidates already
// merged into another root are dropped, and so are non-root candidates
// with no managed ancestor that are already merged into a root.
func (e *Engine) Discover(ctx context.Context, opts Options) (*branchtree.Tree, error) {
	locals, err := e.ctx.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}
	localSet := make(map[string]bool, len(locals))
	for _, b := range locals {
		localSet[b] = true
	}

	roots := opts.Roots
	if len(roots) == 0 {
		for _, r := range defaultRoots {
			if localSet[r] {
				roots = append(roots, r)
			}
		}
	}
	rootSet := make(map[string]bool, len(roots))
	for _, r := range roots {
		rootSet[r] = true
	}

	max := opts.MaxCandidates
	if max <= 0 {
		max = 10
	}
	candidates, err := e.recentCandidates(ctx, locals, rootSet, max)
	if err != nil {
		return nil, err
	}

	// Drop root candidates already merged into a different root; a
	// candidate can never be merged into itself.
	var filteredRoots []string
	for _, r := range roots {
		merged := false
		for _, other := range roots {
			if other == r {
				continue
			}
			if e.ctx.IsAncestor(ctx, r, other) {
				merged = true
				break
			}
		}
		if !merged {
			filteredRoots = append(filteredRoots, r)
		}
	}
	roots = filteredRoots

	tree := branchtree.New()
	managed := make(map[string]bool, len(roots)+len(candidates))
	for _, r := range roots {
		if managed[r] {
			continue
		}
		if err := tree.Add(branchtree.AddRequest{
			Name:       r,
			Annotation: previousAnnotation(opts.Previous, r),
		}); err != nil {
			return nil, err
		}
		managed[r] = true
	}

	// Candidates are ordered most-recent-first; process oldest-first so
	// that a branch's eventual parent has usually already been added.
	for i := len(candidates) - 1; i >= 0; i-- {
		b := candidates[i]
		if managed[b] {
			continue
		}

		parent, err := e.nearestManagedAncestor(ctx, b, managed)
		if err != nil {
			return nil, err
		}
		if parent == "" {
			// A would-be root already merged into a root is omitted.
			merged := false
			for _, r := range roots {
				if e.ctx.IsAncestor(ctx, b, r) {
					merged = true
					break
				}
			}
			if merged {
				continue
			}
		}

		if err := tree.Add(branchtree.AddRequest{
			Name:       b,
			Onto:       parent,
			Annotation: previousAnnotation(opts.Previous, b),
		}); err != nil {
			return nil, err
		}
		managed[b] = true
	}

	return tree, nil
}

// recentCandidates returns the non-root local branches most recently
// active by reflog timestamp, most recent first, capped at max.
func (e *Engine) recentCandidates(ctx context.Context, locals []string, rootSet map[string]bool, max int) ([]string, error) {
	type scored struct {
		name string
		ts   int64
	}
	var scoredBranches []scored
	for _, b := range locals {
		if rootSet[b] {
			continue
		}
		ts, err := e.ctx.Repository().ReflogTimestamp(ctx, "refs/heads/"+b)
		if err != nil {
			ts = 0
		}
		scoredBranches = append(scoredBranches, scored{name: b, ts: ts})
	}

	sort.SliceStable(scoredBranches, func(i, j int) bool {
		return scoredBranches[i].ts > scoredBranches[j].ts
	})

	if len(scoredBranches) > max {
		e.logger.Debugf("discover: dropping %d branches past the %d most recently active", len(scoredBranches)-max, max)
		scoredBranches = scoredBranches[:max]
	}

	for _, s := range scoredBranches {
		if s.ts > 0 {
			e.logger.Debugf("discover: candidate %s last active %s", s.name, humanize.Time(time.Unix(s.ts, 0)))
		}
	}

	out := make([]string, len(scoredBranches))
	for i, s := range scoredBranches {
		out[i] = s.name
	}
	return out, nil
}

// nearestManagedAncestor finds the already-managed branch that is the
// most-recent ancestor of b: it walks b's first-parent history and
// returns the first commit that is the tip of some already-managed
// branch. If none is found, b becomes a root.
func (e *Engine) nearestManagedAncestor(ctx context.Context, b string, managed map[string]bool) (string, error) {
	history, err := e.ctx.FirstParentLog(ctx, b)
	if err != nil {
		return "", err
	}

	tips := make(map[string]string, len(managed))
	for _, m := range maputil.Keys(managed) {
		h, err := e.ctx.CommitHash(ctx, m)
		if err != nil {
			continue
		}
		tips[h.String()] = m
	}

	for _, h := range history {
		if name, ok := tips[h.String()]; ok {
			return name, nil
		}
	}
	return "", nil
}

func previousAnnotation(prev *branchtree.Tree, branch string) branchtree.Annotation {
	if prev == nil || !prev.IsManaged(branch) {
		return branchtree.Annotation{}
	}
	return prev.Annotation(branch)
}
