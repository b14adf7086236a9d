package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
)

// Reflog returns the commit hashes recorded in ref's reflog, ordered
// from most recent to oldest, with consecutive duplicates collapsed.
// An unset reflog (never created, or expired to nothing) yields an
// empty, non-error result.
func (r *Repository) Reflog(ctx context.Context, ref string) ([]Hash, error) {
	cmd := newGitCmd(ctx, nil, "reflog", "show", "--format=%H", ref)
	out, err := cmd.Dir(r.root).Output(r.shell.exec)
	if err != nil {
		var invErr *GitInvocationError
		if isGitInvocationError(err, &invErr) {
			// No reflog for this ref: treat as empty, not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("git reflog: %w", err)
	}

	var hashes []Hash
	var last Hash
	scan := bufio.NewScanner(bytes.NewReader(out))
	for scan.Scan() {
		line := bytes.TrimSpace(scan.Bytes())
		if len(line) == 0 {
			continue
		}
		h := Hash(line)
		if h == last {
			continue
		}
		hashes = append(hashes, h)
		last = h
	}
	return hashes, scan.Err()
}

// ReflogTimestamp reports the unix timestamp of the most recent entry
// in ref's reflog (e.g. for a branch, this is when it was last checked
// out or advanced).
func (r *Repository) ReflogTimestamp(ctx context.Context, ref string) (int64, error) {
	out, err := r.run(ctx, "reflog", "show", "--date=unix", "--format=%gd", "-1", ref)
	if err != nil || out == "" {
		return 0, fmt.Errorf("%w: no reflog for %s", ErrNotExist, ref)
	}

	// %gd renders as "<ref>@{<unix-seconds>}"; pull out the braced part.
	start := bytes.IndexByte([]byte(out), '{')
	end := bytes.IndexByte([]byte(out), '}')
	if start < 0 || end < 0 || end <= start {
		return 0, fmt.Errorf("unexpected reflog date format %q", out)
	}

	var ts int64
	if _, err := fmt.Sscanf(out[start+1:end], "%d", &ts); err != nil {
		return 0, fmt.Errorf("parse reflog timestamp %q: %w", out, err)
	}
	return ts, nil
}
