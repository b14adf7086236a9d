// Package mconfig reads the flat (non per-branch) "machete.*" git-config
// keys named in the external-interfaces contract: status display,
// traversal defaults, worktree layout-file placement, and squash-merge
// detection mode. Per-branch keys (machete.overrideForkPoint.<branch>.to)
// are read directly by [forkpoint.Engine] instead, since they are keyed
// dynamically rather than fixed strings.
package mconfig

import (
	"context"
	"strconv"

	"go.abhg.dev/ladder/internal/gitctx"
	"go.abhg.dev/ladder/internal/syncstate"
)

// Keys recognized by this package.
const (
	KeyExtraSpaceBeforeBranchName = "machete.status.extraSpaceBeforeBranchName"
	KeyTraversePush               = "machete.traverse.push"
	KeyUseTopLevelMacheteFile     = "machete.worktree.useTopLevelMacheteFile"
	KeySquashMergeDetection       = "machete.squashMergeDetection"
)

// ExtraSpaceBeforeBranchName reads machete.status.extraSpaceBeforeBranchName,
// defaulting to false.
func ExtraSpaceBeforeBranchName(ctx context.Context, c *gitctx.Context) bool {
	return getBool(ctx, c, KeyExtraSpaceBeforeBranchName, false)
}

// TraversePush reads machete.traverse.push, defaulting to false.
func TraversePush(ctx context.Context, c *gitctx.Context) bool {
	return getBool(ctx, c, KeyTraversePush, false)
}

// UseTopLevelMacheteFile reads machete.worktree.useTopLevelMacheteFile,
// defaulting to true.
func UseTopLevelMacheteFile(ctx context.Context, c *gitctx.Context) bool {
	return getBool(ctx, c, KeyUseTopLevelMacheteFile, true)
}

// SquashMergeDetection reads machete.squashMergeDetection, defaulting to
// "none".
func SquashMergeDetection(ctx context.Context, c *gitctx.Context) syncstate.SquashMergeMode {
	v, err := c.ConfigGet(ctx, KeySquashMergeDetection)
	if err != nil {
		return syncstate.SquashMergeNone
	}
	return syncstate.ParseSquashMergeMode(v)
}

func getBool(ctx context.Context, c *gitctx.Context, key string, def bool) bool {
	v, err := c.ConfigGet(ctx, key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
