// Package hook runs the external hook contracts described in the
// layout file format: machete-pre-rebase, machete-post-slide-out, and
// machete-status-branch. Hooks are looked up in the repository's git
// hooks directory and skipped silently when absent.
package hook

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"go.abhg.dev/ladder/internal/git"
)

// Names of the recognized hooks.
const (
	PreRebase     = "machete-pre-rebase"
	PostSlideOut  = "machete-post-slide-out"
	StatusBranch  = "machete-status-branch"
)

// Runner locates and executes hooks for a repository.
type Runner struct {
	repo *git.Repository
}

// New builds a [Runner] over repo.
func New(repo *git.Repository) *Runner {
	return &Runner{repo: repo}
}

func (r *Runner) path(name string) string {
	return filepath.Join(r.repo.GitDir(), "hooks", name)
}

// exists reports whether the named hook is present and executable.
func (r *Runner) exists(name string) bool {
	info, err := os.Stat(r.path(name))
	if err != nil {
		return false
	}
	return info.Mode()&0o111 != 0
}

// PreRebaseAllowed runs the machete-pre-rebase hook, if present, and
// reports whether the rebase may proceed (a non-zero exit aborts it).
func (r *Runner) PreRebaseAllowed(ctx context.Context, newBase string, forkPoint git.Hash, branch string) (bool, error) {
	if !r.exists(PreRebase) {
		return true, nil
	}
	cmd := exec.CommandContext(ctx, r.path(PreRebase), newBase, forkPoint.String(), branch)
	cmd.Dir = r.repo.Root()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, nil
	case errors.As(err, &exitErr):
		return false, nil
	default:
		return false, err
	}
}

// PostSlideOut runs the machete-post-slide-out hook, if present, after
// the layout file has been rewritten. newDownstreams is empty when the
// slid-out chain had no surviving children.
func (r *Runner) PostSlideOut(ctx context.Context, newUpstream, lowestSlidOut string, newDownstreams []string) error {
	if !r.exists(PostSlideOut) {
		return nil
	}
	args := append([]string{newUpstream, lowestSlidOut}, newDownstreams...)
	cmd := exec.CommandContext(ctx, r.path(PostSlideOut), args...)
	cmd.Dir = r.repo.Root()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// StatusBranch runs the machete-status-branch hook for branch, if
// present, and returns the first line of its stdout to append to the
// branch's status line. A non-zero exit means "no annotation" rather
// than an error.
func (r *Runner) StatusBranch(ctx context.Context, branch string, asciiOnly bool) string {
	if !r.exists(StatusBranch) {
		return ""
	}

	asciiEnv := "ASCII_ONLY=false"
	if asciiOnly {
		asciiEnv = "ASCII_ONLY=true"
	}

	cmd := exec.CommandContext(ctx, r.path(StatusBranch), branch)
	cmd.Dir = r.repo.Root()
	cmd.Env = append(os.Environ(), asciiEnv)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ""
	}

	line, _, _ := bytes.Cut(out.Bytes(), []byte{'\n'})
	return string(bytes.TrimSpace(line))
}
