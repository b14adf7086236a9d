// Package gittest provides a minimal scratch-repository helper for
// tests that need to drive a real git binary, grounded on the same
// temp-dir-plus-exec.Command pattern used throughout the example pack's
// own test helpers.
package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Repo is a throwaway git repository rooted in a test's temp directory.
type Repo struct {
	t   testing.TB
	Dir string
}

// Init creates a new repository on branch master with a fixed commit
// author and committer identity; commit dates are not fixed.
func Init(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	r := &Repo{t: t, Dir: dir}
	r.Git("init", "--initial-branch=master", dir)
	r.Git("config", "user.name", "Test User")
	r.Git("config", "user.email", "test@example.com")
	return r
}

// Git runs a git command in the repository, failing the test on error.
func (r *Repo) Git(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(cmd.Environ(),
		"GIT_AUTHOR_NAME=Test User", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	require.NoErrorf(r.t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// Commit writes path with contents, stages it, and commits it with msg,
// returning the new commit's hash.
func (r *Repo) Commit(path, contents, msg string) string {
	r.t.Helper()
	full := filepath.Join(r.Dir, path)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(contents), 0o644))
	r.Git("add", path)
	r.Git("commit", "-m", msg)
	return r.Git("rev-parse", "HEAD")
}

// Branch creates and checks out a new branch from the current HEAD.
func (r *Repo) Branch(name string) {
	r.t.Helper()
	r.Git("checkout", "-b", name)
}

// Checkout switches to an existing branch.
func (r *Repo) Checkout(name string) {
	r.t.Helper()
	r.Git("checkout", name)
}

// Head returns the commit hash of the given revision.
func (r *Repo) Head(rev string) string {
	r.t.Helper()
	return r.Git("rev-parse", rev)
}

// AsRemote clones a bare copy of r and adds it as the remote name,
// returning the path of the bare clone.
func (r *Repo) AsRemote(t testing.TB, name string) string {
	t.Helper()
	bare := t.TempDir()
	cmd := exec.Command("git", "clone", "--bare", r.Dir, bare)
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "git clone --bare: %s", out)
	r.Git("remote", "add", name, bare)
	return bare
}
