package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// OpenOptions configures [Open].
type OpenOptions struct {
	// Log receives command tracing and captured stderr.
	Log *log.Logger

	// RebaseOptsEnv is GIT_LADDER_REBASE_OPTS; see [ShellOptions].
	RebaseOptsEnv string

	exec execer
}

// Repository is a handle to a git repository, reached entirely by
// shelling out to the git binary (see package doc). It performs no
// caching of its own; see package gitctx for a caching layer on top.
type Repository struct {
	root      string // working tree root
	gitDir    string // resolved .git directory (worktree-aware)
	commonDir string // shared .git directory across all worktrees

	shell *Shell
}

// Open opens the repository containing dir (or the current working
// directory, if dir is empty).
func Open(ctx context.Context, dir string, opts OpenOptions) (*Repository, error) {
	shell, err := NewShell(ShellOptions{
		Log:           opts.Log,
		RebaseOptsEnv: opts.RebaseOptsEnv,
		exec:          opts.exec,
	})
	if err != nil {
		return nil, err
	}

	out, err := shell.RunOrFail(ctx, dir, "rev-parse",
		"--show-toplevel", "--absolute-git-dir", "--git-common-dir")
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		return nil, fmt.Errorf("unexpected output from git rev-parse: %q", out)
	}
	root, gitDir, commonDir := lines[0], lines[1], lines[2]
	if !filepath.IsAbs(commonDir) {
		// --git-common-dir is resolved relative to the directory the
		// command ran in, not --absolute-git-dir's output.
		base := dir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("resolve working directory: %w", err)
			}
			base = wd
		}
		commonDir = filepath.Join(base, commonDir)
	}

	return &Repository{root: root, gitDir: gitDir, commonDir: commonDir, shell: shell}, nil
}

// Root returns the absolute path to the working tree root.
func (r *Repository) Root() string { return r.root }

// GitDir returns the absolute path to the resolved .git directory.
// For a linked worktree, this is the worktree-specific directory
// (".git/worktrees/<name>"), not the common directory; see
// [Repository.CommonDir].
func (r *Repository) GitDir() string { return r.gitDir }

// CommonDir returns the absolute path to the .git directory shared
// across all worktrees of this repository (equal to [Repository.GitDir]
// outside a linked worktree).
func (r *Repository) CommonDir() string { return r.commonDir }

// Shell returns the underlying [Shell], for callers that need direct
// access to git plumbing not otherwise exposed by [Repository].
func (r *Repository) Shell() *Shell { return r.shell }

func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	return r.shell.RunOrFail(ctx, r.root, args...)
}
