package discover_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/discover"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/gittest"
)

func TestEngine_Discover_ChainByAncestry(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	r.Branch("develop")
	r.Commit("a.txt", "two\n", "develop change")
	r.Branch("feature")
	r.Commit("a.txt", "three\n", "feature change")
	r.Checkout("master")

	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	c := gitctx.New(repo)

	tree, err := discover.New(c, nil).Discover(context.Background(), discover.Options{})
	require.NoError(t, err)

	// "master" is dropped: it is a strict ancestor of "develop", which
	// remains the sole root managing the history both candidates build on.
	require.Equal(t, []string{"develop"}, tree.Roots())
	parent, ok := tree.Parent("feature")
	require.True(t, ok)
	require.Equal(t, "develop", parent)
}

func TestEngine_Discover_CustomRoots(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	r.Branch("trunk")
	r.Commit("a.txt", "two\n", "trunk change")

	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	c := gitctx.New(repo)

	tree, err := discover.New(c, nil).Discover(context.Background(), discover.Options{
		Roots: []string{"trunk"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"trunk"}, tree.Roots())
}

func TestEngine_Discover_PreservesPreviousAnnotation(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	r.Branch("feature")
	r.Commit("a.txt", "two\n", "feature change")
	r.Checkout("master")

	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	c := gitctx.New(repo)

	prev, err := discover.New(c, nil).Discover(context.Background(), discover.Options{Roots: []string{"master"}})
	require.NoError(t, err)
	require.NoError(t, prev.SetAnnotation("feature", prev.Annotation("feature")))

	ann := prev.Annotation("feature")
	ann.Text = "needs review"
	require.NoError(t, prev.SetAnnotation("feature", ann))

	tree, err := discover.New(c, nil).Discover(context.Background(), discover.Options{
		Roots:    []string{"master"},
		Previous: prev,
	})
	require.NoError(t, err)
	require.Equal(t, "needs review", tree.Annotation("feature").Text)
}
