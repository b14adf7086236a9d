package render

import (
	"fmt"
	"io"
	"strings"

	"go.abhg.dev/ladder/internal/branchtree"
)

// List writes one branch name per line, in pre-order, for the "list"
// command's default category. Output is plumbing-stable: bytewise
// identical across minor releases for the same tree.
func List(w io.Writer, names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

// Categories selects the named branch category from tree's static
// (git-independent) categorization, for "list <category>".
func Categories(tree *branchtree.Tree, category string) ([]string, error) {
	c := tree.Categorize()
	switch category {
	case "managed":
		return c.Managed, nil
	case "childless":
		return c.Childless, nil
	case "slidable":
		return c.Slidable, nil
	default:
		return nil, fmt.Errorf("unknown branch category %q", category)
	}
}

// Show writes a single branch name with a trailing newline, for the
// "show <direction>" command.
func Show(w io.Writer, branch string) error {
	_, err := fmt.Fprintln(w, branch)
	return err
}

// ForkPoint writes a single commit hash with a trailing newline, for
// the "fork-point" command with no options or "--inferred".
func ForkPoint(w io.Writer, hash string) error {
	_, err := fmt.Fprintln(w, hash)
	return err
}

// IsManaged reports the exit status for the "is-managed" command: 0 if
// managed, 1 otherwise. It writes nothing; the command's own exit code
// carries the result.
func IsManaged(tree *branchtree.Tree, branch string) int {
	if tree.IsManaged(branch) {
		return 0
	}
	return 1
}

// File writes the absolute path to the layout file, for the "file" command.
func File(w io.Writer, path string) error {
	_, err := fmt.Fprintln(w, path)
	return err
}

// Version writes the version string, for the "version" command.
func Version(w io.Writer, version string) error {
	_, err := fmt.Fprintln(w, strings.TrimSpace(version))
	return err
}
