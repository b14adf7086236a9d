package git

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/buildkite/shellwords"
	"github.com/charmbracelet/log"
	"go.abhg.dev/ladder/internal/errs"
)

// Shell runs git as a subprocess and captures its output.
// It is the sole point of contact between this module and the
// git binary: every other package reaches git through a [Shell]
// (directly, or via a [Repository] built on top of one).
//
// Shell never raises on a non-zero exit from Run; callers that want
// a hard failure use RunOrFail.
type Shell struct {
	log  *log.Logger
	exec execer

	// extraRebaseArgs are appended to every "git rebase" invocation,
	// populated from $GIT_LADDER_REBASE_OPTS.
	extraRebaseArgs []string
}

// ShellOptions configures a new [Shell].
type ShellOptions struct {
	// Log receives debug-level command tracing and captured stderr.
	Log *log.Logger

	// RebaseOptsEnv is the value of GIT_LADDER_REBASE_OPTS,
	// a space-separated (shell-word-escaped) list of extra arguments
	// appended to every "git rebase" invocation.
	RebaseOptsEnv string

	exec execer
}

// NewShell builds a new [Shell].
func NewShell(opts ShellOptions) (*Shell, error) {
	exec := opts.exec
	if exec == nil {
		exec = _realExec
	}

	var extra []string
	if opts.RebaseOptsEnv != "" {
		words, err := shellwords.Split(opts.RebaseOptsEnv)
		if err != nil {
			return nil, &errs.ConfigError{
				Key:    "GIT_LADDER_REBASE_OPTS",
				Reason: err.Error(),
			}
		}
		extra = words
	}

	return &Shell{
		log:             opts.Log,
		exec:            exec,
		extraRebaseArgs: extra,
	}, nil
}

// RunResult carries the full outcome of a non-raising [Shell.Run] call.
type RunResult struct {
	Stdout string
	Stderr string
	Code   int
}

// Run runs git with the given arguments in dir, never raising on a
// non-zero exit code; callers inspect Code.
func (s *Shell) Run(ctx context.Context, dir string, args ...string) (RunResult, error) {
	var stdout, stderr strings.Builder
	cmd := newGitCmd(ctx, s.log, args...).Dir(dir)
	cmd.Stderr(&stderr)
	cmd.Stdout(&stdout)

	err := cmd.cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		// code stays 0
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	default:
		return RunResult{}, err
	}

	return RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Code:   code,
	}, nil
}

// RunOrFail runs git with the given arguments, failing with a
// [GitInvocationError] if it exits non-zero.
func (s *Shell) RunOrFail(ctx context.Context, dir string, args ...string) (string, error) {
	return newGitCmd(ctx, s.log, args...).Dir(dir).OutputString(s.exec)
}

// SpawnInteractive runs git with the given arguments, inheriting the
// calling process's stdin/stdout/stderr so an editor or rebase UI can
// take over the terminal.
func (s *Shell) SpawnInteractive(ctx context.Context, dir string, env []string, args ...string) error {
	return newGitCmd(ctx, s.log, args...).
		Dir(dir).
		AppendEnv(env...).
		Interactive().
		Run(s.exec)
}

// RebaseExtraArgs returns the extra arguments forwarded to every
// "git rebase" invocation, derived from GIT_LADDER_REBASE_OPTS.
func (s *Shell) RebaseExtraArgs() []string {
	return s.extraRebaseArgs
}
