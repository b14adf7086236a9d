package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Diff returns the patch between from and to ("git diff from..to").
func (r *Repository) Diff(ctx context.Context, from, to string) (string, error) {
	out, err := r.run(ctx, "diff", from+".."+to)
	if err != nil {
		return "", fmt.Errorf("git diff: %w", err)
	}
	return out, nil
}

// LogEntry is a single commit's hash, subject line, and committer date.
type LogEntry struct {
	Hash          Hash
	Subject       string
	CommitterDate time.Time
}

// LogFirstParent lists, most recent first, the first-parent commits
// reachable from head but not from base, each with its subject line and
// committer date. Used by the "log" command and by status'
// --list-commits display.
func (r *Repository) LogFirstParent(ctx context.Context, base, head string) ([]LogEntry, error) {
	rev := head
	if base != "" {
		rev = base + ".." + head
	}
	out, err := r.run(ctx, "log", "--first-parent", "--format=%H%x1f%ct%x1f%s", rev)
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	if out == "" {
		return nil, nil
	}

	var entries []LogEntry
	for _, line := range strings.Split(out, "\n") {
		hash, rest, ok := strings.Cut(line, "\x1f")
		if !ok {
			continue
		}
		tsStr, subject, ok := strings.Cut(rest, "\x1f")
		if !ok {
			continue
		}
		ts, err := strconv.ParseInt(tsStr, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, LogEntry{
			Hash:          Hash(hash),
			Subject:       subject,
			CommitterDate: time.Unix(ts, 0),
		})
	}
	return entries, nil
}
