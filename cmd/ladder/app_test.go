package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/gittest"
	"go.abhg.dev/ladder/internal/layout"
	"go.abhg.dev/ladder/internal/log"
)

// chdir switches the process to dir and returns a func that restores
// the previous working directory.
func chdir(t *testing.T, dir string) func() {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(cwd) }
}

// withLayout seeds r's layout file with the given managed branches,
// each a root, before opening the App.
func withLayout(t *testing.T, r *gittest.Repo, branches ...string) {
	t.Helper()
	tree := branchtree.New()
	for _, b := range branches {
		require.NoError(t, tree.Add(branchtree.AddRequest{Name: b}))
	}
	require.NoError(t, layout.WriteFile(r.Dir+"/.git/machete", tree, layout.DefaultIndentUnit, false))
}

func TestOpenApp(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	withLayout(t, r, "master")

	ctx := context.Background()
	logger := log.Nop()

	oldwd := chdir(t, r.Dir)
	defer oldwd()

	app, err := openApp(ctx, logger, true)
	require.NoError(t, err)
	require.True(t, app.Tree.IsManaged("master"))
}

func TestRequireManaged_DefaultsToCurrentBranch(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	withLayout(t, r, "master")

	ctx := context.Background()
	logger := log.Nop()

	oldwd := chdir(t, r.Dir)
	defer oldwd()

	app, err := openApp(ctx, logger, true)
	require.NoError(t, err)

	branch, err := app.requireManaged(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "master", branch)
}

func TestRequireManaged_Unmanaged(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	withLayout(t, r)

	ctx := context.Background()
	logger := log.Nop()

	oldwd := chdir(t, r.Dir)
	defer oldwd()

	app, err := openApp(ctx, logger, true)
	require.NoError(t, err)

	_, err = app.requireManaged(ctx, "")
	require.Error(t, err)
}
