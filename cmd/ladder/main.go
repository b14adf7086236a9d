// Command ladder manages a declared tree of local git branches:
// dependency order, sync status against each branch's parent, and
// batch rebase/push traversal of the whole stack.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/git"
	"go.abhg.dev/ladder/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.New(os.Stderr, nil)

	var cmd mainCmd
	parser, err := kong.New(&cmd,
		kong.Name("ladder"),
		kong.Description("Manage a declared tree of local git branches."),
		kong.Bind(logger),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternal
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUserFailure
	}

	err = kctx.Run()
	var exitErr *exitCodeError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &exitErr):
		return exitErr.code
	case ctx.Err() != nil, errors.Is(err, errs.ErrUserAbort):
		return exitInterrupted
	case isUserFailure(err):
		return exitUserFailure
	default:
		logger.Errorf("internal error: %v", err)
		return exitInternal
	}
}

// exitCodeError carries an exact exit code for the handful of plumbing
// commands (is-managed) whose contract specifies one directly rather
// than through the general success/user-failure/internal-error
// taxonomy.
type exitCodeError struct{ code int }

func (e *exitCodeError) Error() string { return "" }

const (
	exitOK          = 0
	exitUserFailure = 1
	exitInternal    = 2
	exitInterrupted = 130
)

// isUserFailure reports whether err belongs to the taxonomy of
// user-facing failures (§7): validation, git operation failure, an
// unresolvable fork point, and the like, as opposed to a programming
// error in this tool itself.
func isUserFailure(err error) bool {
	var (
		layoutErr      *errs.LayoutError
		indentErr      *errs.LayoutIndentError
		jumpErr        *errs.LayoutIndentJumpError
		gitErr         *git.GitInvocationError
		ongoingErr     *errs.OngoingOpError
		forkErr        *errs.ForkPointUnknownError
		unmanagedErr   *errs.UnmanagedBranchError
		noRemotesErr   *errs.NoRemotesError
		ambiguousErr   *errs.AmbiguousRemoteError
		configErr      *errs.ConfigError
	)
	switch {
	case errors.As(err, &layoutErr),
		errors.As(err, &indentErr),
		errors.As(err, &jumpErr),
		errors.As(err, &gitErr),
		errors.As(err, &ongoingErr),
		errors.As(err, &forkErr),
		errors.As(err, &unmanagedErr),
		errors.As(err, &noRemotesErr),
		errors.As(err, &ambiguousErr),
		errors.As(err, &configErr):
		return true
	default:
		return false
	}
}
