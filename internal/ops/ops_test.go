package ops_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/forkpoint"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/gittest"
	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/ops"
)

func newActions(t *testing.T, r *gittest.Repo, tree *branchtree.Tree) *ops.Actions {
	t.Helper()
	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	c := gitctx.New(repo)
	fork := forkpoint.New(c, tree)
	return ops.New(c, tree, fork, filepath.Join(r.Dir, ".git", "machete"), layout.DefaultIndentUnit)
}

func TestActions_Squash(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	r.Branch("feature")
	r.Commit("a.txt", "two\n", "second")
	oldTip := r.Commit("a.txt", "three\n", "third")

	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "feature", Onto: "master"}))

	a := newActions(t, r, tree)
	base := r.Head("master")

	require.NoError(t, a.Squash(context.Background(), "feature", git.Hash(base)))

	entries, err := a.Ctx.Repository().LogFirstParent(context.Background(), base, r.Head("feature"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotEqual(t, oldTip, r.Head("feature"))
}

func TestActions_SlideOut(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	r.Branch("middle")
	r.Commit("a.txt", "two\n", "middle change")
	r.Branch("top")
	r.Commit("a.txt", "three\n", "top change")

	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "middle", Onto: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "top", Onto: "middle"}))

	a := newActions(t, r, tree)
	require.NoError(t, a.SlideOut(context.Background(), ops.SlideOutRequest{
		Sequence: []string{"middle"},
	}))

	require.False(t, tree.IsManaged("middle"))
	parent, ok := tree.Parent("top")
	require.True(t, ok)
	require.Equal(t, "master", parent)

	data, err := os.ReadFile(filepath.Join(r.Dir, ".git", "machete"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "middle")
}

func TestActions_DeleteUnmanaged(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	r.Branch("managed")
	r.Checkout("master")
	r.Branch("stray")
	r.Checkout("master")

	tree := branchtree.New()
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "master"}))
	require.NoError(t, tree.Add(branchtree.AddRequest{Name: "managed", Onto: "master"}))

	a := newActions(t, r, tree)
	deleted, err := a.DeleteUnmanaged(context.Background(), true)
	require.NoError(t, err)
	require.Equal(t, []string{"stray"}, deleted)
}
