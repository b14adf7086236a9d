package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Remotes lists the configured remote names.
func (r *Repository) Remotes(ctx context.Context) ([]string, error) {
	cmd := newGitCmd(ctx, nil, "remote")
	out, err := cmd.Dir(r.root).Output(r.shell.exec)
	if err != nil {
		return nil, fmt.Errorf("git remote: %w", err)
	}

	var remotes []string
	scan := bufio.NewScanner(bytes.NewReader(out))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line != "" {
			remotes = append(remotes, line)
		}
	}
	return remotes, scan.Err()
}

// RemoteBranch is a branch seen on a remote.
type RemoteBranch struct {
	Remote string
	Name   string
}

// RemoteBranches lists all remote-tracking branches across all remotes.
func (r *Repository) RemoteBranches(ctx context.Context) ([]RemoteBranch, error) {
	cmd := newGitCmd(ctx, nil, "for-each-ref", "--format=%(refname:short)", "refs/remotes/")
	out, err := cmd.Dir(r.root).Output(r.shell.exec)
	if err != nil {
		return nil, fmt.Errorf("git for-each-ref: %w", err)
	}

	var branches []RemoteBranch
	scan := bufio.NewScanner(bytes.NewReader(out))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		remote, name, ok := strings.Cut(line, "/")
		if !ok || name == "HEAD" {
			continue
		}
		branches = append(branches, RemoteBranch{Remote: remote, Name: name})
	}
	return branches, scan.Err()
}

// FetchRemote fetches updates from the given remote, pruning deleted
// remote-tracking branches. Callers MUST treat this as invalidating
// every cache derived from refs/reflogs (see gitctx.Context.Flush);
// Repository itself performs no caching.
func (r *Repository) FetchRemote(ctx context.Context, remote string) error {
	_, err := r.run(ctx, "fetch", "--prune", remote)
	return err
}
