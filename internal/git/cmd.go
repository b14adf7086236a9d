// Package git provides access to the Git CLI with a small,
// typed, library-like interface.
//
// All shell-to-Git interactions in this module go through this package.
// Nothing here caches results; callers that need caching use
// package gitctx, which wraps a [Repository].
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"go.abhg.dev/ladder/internal/ioutil"
)

type execer interface {
	Run(*exec.Cmd) error
	Output(*exec.Cmd) ([]byte, error)
	Start(*exec.Cmd) error
	Wait(*exec.Cmd) error
	Kill(*exec.Cmd) error
}

type realExecer struct{}

var _realExec execer = realExecer{}

func (realExecer) Run(cmd *exec.Cmd) error              { return cmd.Run() }
func (realExecer) Output(cmd *exec.Cmd) ([]byte, error) { return cmd.Output() }
func (realExecer) Start(cmd *exec.Cmd) error            { return cmd.Start() }
func (realExecer) Wait(cmd *exec.Cmd) error             { return cmd.Wait() }
func (realExecer) Kill(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// GitInvocationError reports that a shelled-out git command
// exited with a non-zero status.
type GitInvocationError struct {
	Args   []string
	Code   int
	Stderr string
}

func (e *GitInvocationError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.Code)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// gitCmd provides a fluent API around exec.Cmd,
// unconditionally capturing stderr into errors.
type gitCmd struct {
	args []string
	cmd  *exec.Cmd

	// Wraps an error with stderr output and exit code.
	wrap func(error) error
}

func newGitCmd(ctx context.Context, logger *log.Logger, args ...string) *gitCmd {
	name := "git"
	if len(args) > 0 {
		name += " " + args[0]
	}

	stderr, wrap := stderrWriter(name, args, logger)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stderr = stderr

	return &gitCmd{
		args: args,
		cmd:  cmd,
		wrap: wrap,
	}
}

// Dir sets the working directory for the command.
func (c *gitCmd) Dir(dir string) *gitCmd {
	if dir != "" {
		c.cmd.Dir = dir
	}
	return c
}

// Stdout sets the writer for the command's stdout.
func (c *gitCmd) Stdout(w io.Writer) *gitCmd {
	c.cmd.Stdout = w
	return c
}

// Stderr overrides the command's stderr, disabling error-wrapping.
func (c *gitCmd) Stderr(w io.Writer) *gitCmd {
	c.cmd.Stderr = w
	c.wrap = func(err error) error { return err }
	return c
}

// Stdin supplies the command's stdin from the given reader.
func (c *gitCmd) Stdin(r io.Reader) *gitCmd {
	c.cmd.Stdin = r
	return c
}

// StdinString supplies the command's stdin from the given string.
func (c *gitCmd) StdinString(s string) *gitCmd {
	return c.Stdin(strings.NewReader(s))
}

// AppendEnv appends environment variables to the command.
func (c *gitCmd) AppendEnv(env ...string) *gitCmd {
	if len(env) == 0 {
		return c
	}
	if c.cmd.Env == nil {
		c.cmd.Env = os.Environ()
	}
	c.cmd.Env = append(c.cmd.Env, env...)
	return c
}

// Interactive connects the command directly to the process's
// stdin/stdout/stderr, so an editor or rebase can take over the TTY.
func (c *gitCmd) Interactive() *gitCmd {
	c.cmd.Stdin = os.Stdin
	c.cmd.Stdout = os.Stdout
	c.cmd.Stderr = os.Stderr
	c.wrap = func(err error) error { return err }
	return c
}

// Run runs the command, blocking until it completes.
func (c *gitCmd) Run(exec execer) error {
	return c.wrap(exec.Run(c.cmd))
}

// Output runs the command and returns its stdout.
func (c *gitCmd) Output(exec execer) ([]byte, error) {
	out, err := exec.Output(c.cmd)
	return out, c.wrap(err)
}

// OutputString runs the command and returns its stdout as a string,
// with a single trailing newline removed.
func (c *gitCmd) OutputString(exec execer) (string, error) {
	out, err := c.Output(exec)
	out, _ = bytes.CutSuffix(out, []byte{'\n'})
	return string(out), err
}

// StdoutPipe returns a pipe connected to the command's stdout.
// The caller must call Start, read the pipe to completion, then Wait.
func (c *gitCmd) StdoutPipe() (io.ReadCloser, error) {
	return c.cmd.StdoutPipe()
}

// Start starts the command without waiting for it to complete.
func (c *gitCmd) Start(exec execer) error {
	return c.wrap(exec.Start(c.cmd))
}

// Wait waits for a command started with Start to complete.
func (c *gitCmd) Wait(exec execer) error {
	return c.wrap(exec.Wait(c.cmd))
}

// Returns an io.Writer that records stderr for later use,
// and a wrap function that turns a raw exec error into a
// [GitInvocationError] carrying the recorded stderr tail.
func stderrWriter(name string, args []string, logger *log.Logger) (w io.Writer, wrap func(error) error) {
	var buf bytes.Buffer

	if logger != nil && logger.GetLevel() <= log.DebugLevel {
		cmdLog := logger.WithPrefix(name)
		lw, flush := ioutil.LogWriter(cmdLog, log.DebugLevel)
		w = io.MultiWriter(&buf, lw)
		return w, func(err error) error {
			flush()
			return wrapExitErr(err, args, &buf)
		}
	}

	return &buf, func(err error) error {
		return wrapExitErr(err, args, &buf)
	}
}

func wrapExitErr(err error, args []string, stderr *bytes.Buffer) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &GitInvocationError{
			Args:   args,
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}
	return err
}
