package hook_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gittest"
	"go.abhg.dev/ladder/internal/hook"
)

func openRepo(t *testing.T, r *gittest.Repo) *git.Repository {
	t.Helper()
	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	return repo
}

func writeHook(t *testing.T, repo *git.Repository, name, script string) {
	t.Helper()
	path := filepath.Join(repo.GitDir(), "hooks", name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
}

func TestRunner_PreRebaseAllowed_NoHook(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	repo := openRepo(t, r)

	allowed, err := hook.New(repo).PreRebaseAllowed(context.Background(), "main", "abc", "feat")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRunner_PreRebaseAllowed_Rejects(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	repo := openRepo(t, r)
	writeHook(t, repo, hook.PreRebase, "exit 1\n")

	allowed, err := hook.New(repo).PreRebaseAllowed(context.Background(), "main", "abc", "feat")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestRunner_PreRebaseAllowed_Allows(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	repo := openRepo(t, r)
	writeHook(t, repo, hook.PreRebase, "exit 0\n")

	allowed, err := hook.New(repo).PreRebaseAllowed(context.Background(), "main", "abc", "feat")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRunner_StatusBranch_NoHook(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	repo := openRepo(t, r)

	note := hook.New(repo).StatusBranch(context.Background(), "feat", false)
	require.Empty(t, note)
}

func TestRunner_StatusBranch_FirstLine(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	repo := openRepo(t, r)
	writeHook(t, repo, hook.StatusBranch, "echo 'PR #42'\necho 'ignored second line'\n")

	note := hook.New(repo).StatusBranch(context.Background(), "feat", false)
	require.Equal(t, "PR #42", note)
}

func TestRunner_PostSlideOut_NoHook(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "one\n", "initial")
	repo := openRepo(t, r)

	err := hook.New(repo).PostSlideOut(context.Background(), "main", "feat", nil)
	require.NoError(t, err)
}
