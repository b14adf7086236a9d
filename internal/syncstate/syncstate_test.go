package syncstate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/forkpoint"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/gittest"
	"go.abhg.dev/ladder/internal/syncstate"
)

func setup(t *testing.T) (*gitctx.Context, *gittest.Repo, *forkpoint.Engine) {
	t.Helper()
	r := gittest.Init(t)
	r.Commit("a.txt", "1", "base")
	r.Branch("feat")

	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	ctx := gitctx.New(repo)

	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "feat", Onto: "master"}))

	return ctx, r, forkpoint.New(ctx, tree)
}

func TestClassifier_Edge_InSync(t *testing.T) {
	ctx, r, fp := setup(t)
	r.Commit("b.txt", "2", "feat change")

	c := syncstate.New(ctx, fp, syncstate.SquashMergeSimple)
	state, err := c.Edge(context.Background(), "master", "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.InSync, state)
}

func TestClassifier_Edge_ForkPointOff(t *testing.T) {
	ctx, r, fp := setup(t)
	r.Commit("b.txt", "2", "feat change")

	r.Checkout("master")
	r.Commit("c.txt", "3", "master moves on")
	r.Checkout("feat")
	// A non-rebase merge of the new parent tip makes master an ancestor
	// of feat (via the merge commit's second parent), but the
	// first-parent-only fork-point walk never sees that second parent,
	// so the remembered fork point stays at the original base commit.
	r.Git("merge", "--no-ff", "-m", "merge master into feat", "master")

	c := syncstate.New(ctx, fp, syncstate.SquashMergeSimple)
	state, err := c.Edge(context.Background(), "master", "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.InSyncButForkPointOff, state)
}

func TestClassifier_Edge_SquashMerge_S4(t *testing.T) {
	// S4: parent at P; child's tree equals P's tree. none => OutOfSync;
	// simple => Merged; exact => Merged.
	ctx, r, fp := setup(t)
	r.Commit("b.txt", "2", "feat change")

	r.Checkout("master")
	// Squash-merge feat into master: same resulting tree, but via a
	// fresh commit rather than a true merge, so master is NOT an
	// ancestor-descendant match (feat is not an ancestor of master via
	// history, and master is not an ancestor of feat).
	r.Git("merge", "--squash", "feat")
	r.Git("commit", "-m", "squash feat")
	r.Checkout("feat")

	none := syncstate.New(ctx, fp, syncstate.SquashMergeNone)
	state, err := none.Edge(context.Background(), "master", "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.OutOfSync, state)

	simple := syncstate.New(ctx, fp, syncstate.SquashMergeSimple)
	state, err = simple.Edge(context.Background(), "master", "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.Merged, state)

	exact := syncstate.New(ctx, fp, syncstate.SquashMergeExact)
	state, err = exact.Edge(context.Background(), "master", "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.Merged, state)
}

func TestClassifier_Edge_Merged_ByAncestry(t *testing.T) {
	ctx, r, fp := setup(t)
	r.Commit("b.txt", "2", "feat change")
	r.Checkout("master")
	r.Git("merge", "--no-ff", "feat")
	r.Checkout("feat")

	c := syncstate.New(ctx, fp, syncstate.SquashMergeNone)
	state, err := c.Edge(context.Background(), "master", "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.Merged, state)
}

func TestClassifier_Remote_NoRemotes(t *testing.T) {
	ctx, _, fp := setup(t)
	c := syncstate.New(ctx, fp, syncstate.SquashMergeSimple)
	state, err := c.Remote(context.Background(), "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.NoRemotes, state)
}

func TestClassifier_Remote_States(t *testing.T) {
	ctx, r, fp := setup(t)
	r.AsRemote(t, "origin")
	r.Git("push", "-u", "origin", "feat")

	c := syncstate.New(ctx, fp, syncstate.SquashMergeSimple)

	state, err := c.Remote(context.Background(), "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.InSyncRemote, state)

	r.Commit("b.txt", "2", "local only")
	ctx.Flush()
	state, err = c.Remote(context.Background(), "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.Ahead, state)

	r.Git("push", "origin", "feat")
	ctx.Flush()
	state, err = c.Remote(context.Background(), "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.InSyncRemote, state)
}

func TestClassifier_Remote_Untracked(t *testing.T) {
	ctx, r, fp := setup(t)
	r.AsRemote(t, "origin")

	c := syncstate.New(ctx, fp, syncstate.SquashMergeSimple)
	state, err := c.Remote(context.Background(), "feat")
	require.NoError(t, err)
	assert.Equal(t, syncstate.Untracked, state)
}
