// Package errs defines the error taxonomy shared across the engine:
// one small type per failure kind named in the design, so that callers
// at any layer can use errors.As/errors.Is to recognize and handle them
// instead of matching on message text.
package errs

import (
	"errors"
	"fmt"
)

// OngoingOp names a git operation that can be in progress in a worktree.
type OngoingOp string

// Recognized ongoing operations.
const (
	OpNone        OngoingOp = ""
	OpAmSession   OngoingOp = "am"
	OpCherryPick  OngoingOp = "cherry-pick"
	OpMerge       OngoingOp = "merge"
	OpRebase      OngoingOp = "rebase"
	OpRevert      OngoingOp = "revert"
)

// OngoingOpError reports that a command which requires a clean worktree
// found a rebase/merge/am/cherry-pick/revert already in progress.
type OngoingOpError struct {
	Op OngoingOp
}

func (e *OngoingOpError) Error() string {
	return fmt.Sprintf("a %s is already in progress; finish or abort it first", e.Op)
}

// ForkPointUnknownError reports that ForkPointEngine could not determine
// a fork point for a branch, and no parent-based fallback applied.
type ForkPointUnknownError struct {
	Branch string
}

func (e *ForkPointUnknownError) Error() string {
	return fmt.Sprintf("cannot determine fork point for branch %q", e.Branch)
}

// UnmanagedBranchError reports that a command required the current (or
// named) branch to be managed by the branch layout, and it is not.
type UnmanagedBranchError struct {
	Branch string
}

func (e *UnmanagedBranchError) Error() string {
	return fmt.Sprintf("branch %q is not managed; run 'add' first", e.Branch)
}

// NoRemotesError reports that an operation needed a remote and the
// repository has none configured.
type NoRemotesError struct{}

func (*NoRemotesError) Error() string { return "repository has no remotes configured" }

// AmbiguousRemoteError reports that an operation needed a single remote,
// the repository has more than one, and none could be inferred.
type AmbiguousRemoteError struct {
	Remotes []string
}

func (e *AmbiguousRemoteError) Error() string {
	return fmt.Sprintf("ambiguous remote: choose one of %v", e.Remotes)
}

// ErrUserAbort indicates the user replied "q" or "yq" to a traversal
// prompt, or sent SIGINT while one was pending.
var ErrUserAbort = errors.New("user aborted")

// ConfigError reports an invalid or missing configuration value.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// LayoutIndentError reports an inconsistency in a layout file's
// indentation (mixed tabs/spaces, or an indent unit that changes size
// partway through the file).
type LayoutIndentError struct {
	Line   int
	Reason string
}

func (e *LayoutIndentError) Error() string {
	return fmt.Sprintf("line %d: inconsistent indentation: %s", e.Line, e.Reason)
}

// LayoutIndentJumpError reports that a line's indentation depth
// increased by more than one level relative to the previous line.
type LayoutIndentJumpError struct {
	Line int
}

func (e *LayoutIndentJumpError) Error() string {
	return fmt.Sprintf("line %d: indentation increased by more than one level", e.Line)
}

// LayoutError reports a structural problem with a branch layout: a
// duplicate branch, or an unknown parent referenced by "add --onto".
type LayoutError struct {
	Branch string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Branch, e.Reason)
}
