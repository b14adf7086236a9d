package gitctx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/gittest"
)

func open(t *testing.T, dir string) *git.Repository {
	t.Helper()
	repo, err := git.Open(context.Background(), dir, git.OpenOptions{})
	require.NoError(t, err)
	return repo
}

func TestContext_CachesCommitHash(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "1", "first")

	repo := open(t, r.Dir)
	ctx := gitctx.New(repo)

	h1, err := ctx.CommitHash(context.Background(), "master")
	require.NoError(t, err)

	// Advance the branch behind the cache's back; the cached value
	// must not change until Flush.
	r.Commit("b.txt", "2", "second")

	h2, err := ctx.CommitHash(context.Background(), "master")
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "CommitHash should be served from cache")

	ctx.Flush()
	h3, err := ctx.CommitHash(context.Background(), "master")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "CommitHash should reflect new state after Flush")
}

func TestContext_FetchRemoteCascadesToSubscribers(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "1", "first")
	r.AsRemote(t, "origin")

	repo := open(t, r.Dir)
	ctx := gitctx.New(repo)

	var invalidated bool
	ctx.Subscribe(func() { invalidated = true })

	// Prime the reflog cache.
	_, err := ctx.Reflog(context.Background(), "refs/remotes/origin/master")
	require.NoError(t, err)

	require.NoError(t, ctx.FetchRemote(context.Background(), "origin"))
	assert.True(t, invalidated, "FetchRemote must notify subscribers")
}

func TestContext_ConfigRoundTrip(t *testing.T) {
	r := gittest.Init(t)
	repo := open(t, r.Dir)
	ctx := gitctx.New(repo)

	_, err := ctx.ConfigGet(context.Background(), "machete.squashMergeDetection")
	assert.ErrorIs(t, err, git.ErrNotExist)

	require.NoError(t, ctx.ConfigSet(context.Background(), "machete.squashMergeDetection", "simple"))
	v, err := ctx.ConfigGet(context.Background(), "machete.squashMergeDetection")
	require.NoError(t, err)
	assert.Equal(t, "simple", v)

	require.NoError(t, ctx.ConfigUnset(context.Background(), "machete.squashMergeDetection"))
	_, err = ctx.ConfigGet(context.Background(), "machete.squashMergeDetection")
	assert.ErrorIs(t, err, git.ErrNotExist)
}

func TestContext_OngoingOperationNoneInitially(t *testing.T) {
	r := gittest.Init(t)
	r.Commit("a.txt", "1", "first")
	repo := open(t, r.Dir)
	ctx := gitctx.New(repo)

	assert.Equal(t, errs.OpNone, ctx.OngoingOperation(context.Background()))
}
