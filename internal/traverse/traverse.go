// Package traverse implements the interactive traversal state
// machine: a single-threaded walk over the branch tree that proposes
// slide-out, rebase/merge, and push/pull/reset for each branch in turn.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/forkpoint"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/ops"
	"go.abhg.dev/ladder/internal/prompt"
	"go.abhg.dev/ladder/internal/syncstate"
)

// StartFrom names the traversal's starting position.
type StartFrom string

// Recognized starting positions.
const (
	StartHere      StartFrom = "here"
	StartRoot      StartFrom = "root"
	StartFirstRoot StartFrom = "first-root"
)

// ReturnTo names where the traversal leaves the checked-out branch.
type ReturnTo string

// Recognized return positions.
const (
	ReturnHere             ReturnTo = "here"
	ReturnNearestRemaining ReturnTo = "nearest-remaining"
	ReturnStay             ReturnTo = "stay"
)

// Options configures a traversal run.
type Options struct {
	StartFrom StartFrom
	ReturnTo  ReturnTo
	// Merge proposes "merge parent into branch" instead of rebase for
	// out-of-sync/fork-point-off edges.
	Merge bool
	// Yes auto-confirms every prompt.
	Yes bool
	// Push enables the push proposal; the per-branch push=no qualifier
	// still gates an individual branch. Pull and reset-keep proposals do
	// not depend on it.
	Push bool
	// Interactive runs proposed rebases interactively.
	Interactive bool
}

// Traverser walks the branch tree, proposing and applying operations.
type Traverser struct {
	ctx    *gitctx.Context
	tree   *branchtree.Tree
	fork   *forkpoint.Engine
	sync   *syncstate.Classifier
	ops    *ops.Actions
	prompt *prompt.Prompter
	picker *prompt.Picker
	out    io.Writer
}

// New builds a [Traverser] from its component engines. picker may be
// nil, in which case an [errs.AmbiguousRemoteError] surfaces to the
// caller instead of being resolved interactively.
func New(
	ctx *gitctx.Context,
	tree *branchtree.Tree,
	fork *forkpoint.Engine,
	classifier *syncstate.Classifier,
	actions *ops.Actions,
	prompter *prompt.Prompter,
	picker *prompt.Picker,
	out io.Writer,
) *Traverser {
	return &Traverser{
		ctx:    ctx,
		tree:   tree,
		fork:   fork,
		sync:   classifier,
		ops:    actions,
		prompt: prompter,
		picker: picker,
		out:    out,
	}
}

// push pushes branch, resolving an ambiguous remote interactively via
// t.picker (if set) before retrying once.
func (t *Traverser) push(ctx context.Context, req ops.PushRequest) error {
	err := t.ops.Push(ctx, req)
	var ambiguous *errs.AmbiguousRemoteError
	if t.picker != nil && errors.As(err, &ambiguous) {
		remote, pickErr := t.picker.PickRemote(ctx, ambiguous)
		if pickErr != nil {
			return pickErr
		}
		req.Remote = remote
		return t.ops.Push(ctx, req)
	}
	return err
}

// Run walks the tree from the configured starting position, proposing
// and (on confirmation) applying the per-branch sequence of §4.10:
// slide-out, then rebase/merge, then push/pull/reset.
func (t *Traverser) Run(ctx context.Context, opts Options) error {
	if op := t.ctx.OngoingOperation(ctx); op != errs.OpNone {
		return &errs.OngoingOpError{Op: op}
	}

	order := t.tree.Branches()
	startIdx, err := t.startIndex(ctx, order, opts.StartFrom)
	if err != nil {
		return err
	}

	originalBranch := order[startIdx]
	slidOut := make(map[string]bool)

	quit := false
	for _, b := range order[startIdx:] {
		if slidOut[b] || !t.tree.IsManaged(b) {
			continue
		}

		did, q, err := t.visit(ctx, b, opts, slidOut)
		if err != nil {
			return err
		}
		_ = did
		if q {
			quit = true
			break
		}
	}

	if quit {
		// q/yq always stays; --return-to is ignored.
		return nil
	}

	return t.returnTo(ctx, opts.ReturnTo, originalBranch, order, slidOut)
}

// visit processes a single branch, returning whether any action was
// taken and whether the user asked to quit.
func (t *Traverser) visit(ctx context.Context, b string, opts Options, slidOut map[string]bool) (acted, quit bool, err error) {
	parent, hasParent := t.tree.Parent(b)
	qualifiers := t.tree.Annotation(b).Qualifiers

	if hasParent {
		edge, err := t.sync.Edge(ctx, parent, b)
		if err != nil {
			return false, false, fmt.Errorf("classify %s: %w", b, err)
		}

		switch {
		case edge == syncstate.Merged && !qualifiers.NoSlideOut:
			ans, err := t.prompt.Confirm(ctx, fmt.Sprintf("%s is merged into %s; slide it out?", b, parent))
			if err != nil {
				return false, false, err
			}
			switch ans {
			case prompt.Yes, prompt.YesQuit:
				if err := t.ops.SlideOut(ctx, ops.SlideOutRequest{Sequence: []string{b}}); err != nil {
					return false, false, err
				}
				slidOut[b] = true
				if ans == prompt.YesQuit {
					return true, true, nil
				}
				return true, false, nil
			case prompt.Quit:
				return false, true, nil
			}

		case (edge == syncstate.OutOfSync || edge == syncstate.InSyncButForkPointOff) && !qualifiers.NoRebase:
			if err := t.ctx.Repository().Checkout(ctx, b); err != nil {
				return false, false, err
			}

			if opts.Merge {
				ans, err := t.prompt.Confirm(ctx, fmt.Sprintf("merge %s into %s?", parent, b))
				if err != nil {
					return false, false, err
				}
				switch ans {
				case prompt.Yes, prompt.YesQuit:
					if err := t.ops.Merge(ctx, parent, true); err != nil {
						return false, false, err
					}
					if ans == prompt.YesQuit {
						return true, true, nil
					}
				case prompt.Quit:
					return false, true, nil
				}
			} else {
				fp, err := t.fork.ForkPoint(ctx, b)
				if err != nil {
					return false, false, err
				}
				ans, err := t.prompt.Confirm(ctx, fmt.Sprintf("rebase %s onto %s?", b, parent))
				if err != nil {
					return false, false, err
				}
				switch ans {
				case prompt.Yes, prompt.YesQuit:
					if err := t.ops.RebaseOnto(ctx, ops.RebaseOntoRequest{
						Branch:      b,
						NewBase:     parent,
						ForkPoint:   fp,
						Interactive: opts.Interactive,
					}); err != nil {
						return false, false, err
					}
					if ans == prompt.YesQuit {
						return true, true, nil
					}
				case prompt.Quit:
					return false, true, nil
				}
			}
		}
	}

	remote, err := t.sync.Remote(ctx, b)
	if err != nil {
		return false, false, fmt.Errorf("remote state of %s: %w", b, err)
	}

	pushEnabled := opts.Push && !qualifiers.NoPush
	switch {
	case pushEnabled && (remote == syncstate.Untracked || remote == syncstate.Ahead || remote == syncstate.DivergedAndNewer):
		ans, err := t.prompt.Confirm(ctx, fmt.Sprintf("push %s?", b))
		if err != nil {
			return false, false, err
		}
		switch ans {
		case prompt.Yes, prompt.YesQuit:
			if err := t.push(ctx, ops.PushRequest{Branch: b, ForceWithLease: remote == syncstate.DivergedAndNewer}); err != nil {
				return false, false, err
			}
			if ans == prompt.YesQuit {
				return true, true, nil
			}
		case prompt.Quit:
			return false, true, nil
		}

	case remote == syncstate.DivergedAndOlder:
		if err := t.ctx.Repository().Checkout(ctx, b); err != nil {
			return false, false, err
		}
		ans, err := t.prompt.Confirm(ctx, fmt.Sprintf("%s has diverged from its remote and is older; reset to remote?", b))
		if err != nil {
			return false, false, err
		}
		switch ans {
		case prompt.Yes, prompt.YesQuit:
			if err := t.ops.ResetKeepToRemote(ctx, b, ""); err != nil {
				return false, false, err
			}
			if ans == prompt.YesQuit {
				return true, true, nil
			}
		case prompt.Quit:
			return false, true, nil
		}

	case remote == syncstate.Behind:
		if err := t.ctx.Repository().Checkout(ctx, b); err != nil {
			return false, false, err
		}
		ans, err := t.prompt.Confirm(ctx, fmt.Sprintf("%s is behind its remote; fast-forward?", b))
		if err != nil {
			return false, false, err
		}
		switch ans {
		case prompt.Yes, prompt.YesQuit:
			if err := t.ops.PullFastForward(ctx, b, ""); err != nil {
				return false, false, err
			}
			if ans == prompt.YesQuit {
				return true, true, nil
			}
		case prompt.Quit:
			return false, true, nil
		}
	}

	return false, false, nil
}

func (t *Traverser) startIndex(ctx context.Context, order []string, from StartFrom) (int, error) {
	var start string
	switch from {
	case "", StartHere:
		branch, ok, err := t.ctx.CurrentBranch(ctx)
		if err != nil {
			return 0, err
		}
		if !ok || !t.tree.IsManaged(branch) {
			return 0, &errs.UnmanagedBranchError{Branch: branch}
		}
		start = branch

	case StartRoot:
		branch, ok, err := t.ctx.CurrentBranch(ctx)
		if err != nil {
			return 0, err
		}
		if !ok || !t.tree.IsManaged(branch) {
			return 0, &errs.UnmanagedBranchError{Branch: branch}
		}
		root, err := t.tree.Show(branchtree.DirRoot, branch)
		if err != nil {
			return 0, err
		}
		start = root

	case StartFirstRoot:
		roots := t.tree.Roots()
		if len(roots) == 0 {
			return 0, fmt.Errorf("no managed branches")
		}
		start = roots[0]

	default:
		return 0, fmt.Errorf("unknown --start-from value %q", from)
	}

	for i, b := range order {
		if b == start {
			return i, nil
		}
	}
	return 0, &errs.UnmanagedBranchError{Branch: start}
}

// returnTo checks out the branch selected by the --return-to policy.
// ReturnStay (the default) leaves the worktree on whatever branch the
// last applied operation checked out.
func (t *Traverser) returnTo(ctx context.Context, to ReturnTo, original string, order []string, slidOut map[string]bool) error {
	switch to {
	case "", ReturnStay:
		return nil

	case ReturnHere:
		if slidOut[original] {
			return nil
		}
		return t.ctx.Repository().Checkout(ctx, original)

	case ReturnNearestRemaining:
		if !slidOut[original] {
			return t.ctx.Repository().Checkout(ctx, original)
		}
		// The original position is gone: walk outward in pre-order
		// position until a surviving branch is found.
		startPos := -1
		for i, b := range order {
			if b == original {
				startPos = i
				break
			}
		}
		for d := 1; d < len(order); d++ {
			if i := startPos + d; i < len(order) && !slidOut[order[i]] {
				return t.ctx.Repository().Checkout(ctx, order[i])
			}
			if i := startPos - d; i >= 0 && !slidOut[order[i]] {
				return t.ctx.Repository().Checkout(ctx, order[i])
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown --return-to value %q", to)
	}
}
