package mconfig_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/gittest"
	"go.abhg.dev/ladder/internal/mconfig"
	"go.abhg.dev/ladder/internal/syncstate"
)

func newCtx(t *testing.T, r *gittest.Repo) *gitctx.Context {
	t.Helper()
	repo, err := git.Open(context.Background(), r.Dir, git.OpenOptions{})
	require.NoError(t, err)
	return gitctx.New(repo)
}

func TestUseTopLevelMacheteFile_DefaultsTrue(t *testing.T) {
	r := gittest.Init(t)
	c := newCtx(t, r)
	require.True(t, mconfig.UseTopLevelMacheteFile(context.Background(), c))
}

func TestUseTopLevelMacheteFile_Overridden(t *testing.T) {
	r := gittest.Init(t)
	r.Git("config", mconfig.KeyUseTopLevelMacheteFile, "false")
	c := newCtx(t, r)
	require.False(t, mconfig.UseTopLevelMacheteFile(context.Background(), c))
}

func TestTraversePush_DefaultsFalse(t *testing.T) {
	r := gittest.Init(t)
	c := newCtx(t, r)
	require.False(t, mconfig.TraversePush(context.Background(), c))
}

func TestExtraSpaceBeforeBranchName_Invalid(t *testing.T) {
	r := gittest.Init(t)
	r.Git("config", mconfig.KeyExtraSpaceBeforeBranchName, "not-a-bool")
	c := newCtx(t, r)
	require.False(t, mconfig.ExtraSpaceBeforeBranchName(context.Background(), c))
}

func TestSquashMergeDetection_DefaultsNone(t *testing.T) {
	r := gittest.Init(t)
	c := newCtx(t, r)
	require.Equal(t, syncstate.SquashMergeNone, mconfig.SquashMergeDetection(context.Background(), c))
}

func TestSquashMergeDetection_Simple(t *testing.T) {
	r := gittest.Init(t)
	r.Git("config", mconfig.KeySquashMergeDetection, "simple")
	c := newCtx(t, r)
	require.Equal(t, syncstate.SquashMergeSimple, mconfig.SquashMergeDetection(context.Background(), c))
}
