package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"go.abhg.dev/ladder/internal/scanutil"
)

// ConfigEntry is a single key-value pair read from git config.
type ConfigEntry struct {
	Key   string
	Value string
}

// ConfigGet returns the value of a single-valued config key, or
// [ErrNotExist] if it is unset.
func (r *Repository) ConfigGet(ctx context.Context, key string) (string, error) {
	out, err := r.run(ctx, "config", "--get", key)
	if err != nil {
		return "", fmt.Errorf("%w: config key %q", ErrNotExist, key)
	}
	return out, nil
}

// ConfigSet sets a config key to a value.
func (r *Repository) ConfigSet(ctx context.Context, key, value string) error {
	_, err := r.run(ctx, "config", "--replace-all", key, value)
	return err
}

// ConfigUnset removes a config key. It is a no-op if the key is unset.
func (r *Repository) ConfigUnset(ctx context.Context, key string) error {
	_, err := r.run(ctx, "config", "--unset-all", key)
	if err != nil {
		var invErr *GitInvocationError
		if isGitInvocationError(err, &invErr) && invErr.Code == 5 {
			// git-config exits 5 when the key is unset: nothing to do.
			return nil
		}
		return err
	}
	return nil
}

func isGitInvocationError(err error, target **GitInvocationError) bool {
	ie, ok := err.(*GitInvocationError)
	if ok {
		*target = ie
	}
	return ok
}

// ConfigKeysMatching returns all config keys matching a regular
// expression, with their values, in file order.
func (r *Repository) ConfigKeysMatching(ctx context.Context, pattern string) ([]ConfigEntry, error) {
	if pattern == "" {
		pattern = "."
	}

	cmd := newGitCmd(ctx, nil, "config", "--null", "--get-regexp", pattern)
	out, err := cmd.Dir(r.root).Output(r.shell.exec)
	if err != nil {
		var invErr *GitInvocationError
		if isGitInvocationError(err, &invErr) && invErr.Code == 1 {
			// No matches.
			return nil, nil
		}
		return nil, fmt.Errorf("git config --get-regexp: %w", err)
	}

	var entries []ConfigEntry
	scan := bufio.NewScanner(bytes.NewReader(out))
	scan.Split(scanutil.SplitNull)
	for scan.Scan() {
		key, value, ok := bytes.Cut(scan.Bytes(), []byte{'\n'})
		if !ok {
			continue
		}
		entries = append(entries, ConfigEntry{Key: string(key), Value: string(value)})
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("scan git config output: %w", err)
	}
	return entries, nil
}
