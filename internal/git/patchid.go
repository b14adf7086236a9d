package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
)

// PatchID computes the patch-id of the diff introduced by a single commit,
// stable across rebases/cherry-picks that preserve the patch content
// (used by the "exact" squash-merge detection mode).
func (r *Repository) PatchID(ctx context.Context, commit string) (string, error) {
	diffCmd := newGitCmd(ctx, nil, "diff-tree", "-p", commit)
	diffOut, err := diffCmd.Dir(r.root).Output(r.shell.exec)
	if err != nil {
		return "", fmt.Errorf("git diff-tree: %w", err)
	}

	patchIDCmd := newGitCmd(ctx, nil, "patch-id", "--stable")
	patchIDCmd.Dir(r.root).Stdin(bytes.NewReader(diffOut))
	out, err := patchIDCmd.Output(r.shell.exec)
	if err != nil {
		return "", fmt.Errorf("git patch-id: %w", err)
	}

	id, _, ok := strings.Cut(strings.TrimSpace(string(out)), " ")
	if !ok || id == "" {
		// An empty patch (e.g. a merge commit) has no patch-id.
		return "", nil
	}
	return id, nil
}

// worktreeLayout describes where the ".git" entry for the current
// worktree lives, distinguishing the main worktree from a linked one.
type worktreeLayout struct {
	// CommonDir is the shared ".git" directory across all worktrees.
	CommonDir string
	// IsLinked reports whether this is a linked worktree (not the main one).
	IsLinked bool
}

func parseLines(out []byte) []string {
	var lines []string
	scan := bufio.NewScanner(bytes.NewReader(out))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
