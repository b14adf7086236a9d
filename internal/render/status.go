// Package render produces the human-readable branch tree view ("status")
// and the plumbing-stable outputs of list/show/file/fork-point/is-managed/
// version.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/syncstate"
	"go.abhg.dev/ladder/internal/ui"
	"go.abhg.dev/ladder/internal/ui/fliptree"
)

// Style defines the visual styling of the status tree.
type Style struct {
	OutOfSync  lipgloss.Style
	ForkOff    lipgloss.Style
	InSync     lipgloss.Style
	Merged     lipgloss.Style
	Current    lipgloss.Style
	Qualifier  lipgloss.Style
	CommitHash lipgloss.Style
	Commit     lipgloss.Style
}

// DefaultStyle colors edges by [syncstate.EdgeState] per the status
// contract: out-of-sync red, fork-point-off yellow, in-sync green,
// merged grey. The current branch is underlined, falling back to
// bold+blue when the attached terminal lacks underline support is the
// caller's concern (lipgloss degrades automatically on dumb terminals).
func DefaultStyle() *Style {
	return &Style{
		OutOfSync:  ui.NewStyle().Foreground(ui.Red),
		ForkOff:    ui.NewStyle().Foreground(ui.Yellow),
		InSync:     ui.NewStyle().Foreground(ui.Green),
		Merged:     ui.NewStyle().Foreground(ui.Gray),
		Current:    ui.NewStyle().Underline(true).Bold(true),
		Qualifier:  ui.NewStyle().Faint(true),
		CommitHash: ui.NewStyle().Foreground(ui.Yellow),
		Commit:     ui.NewStyle().Faint(true),
	}
}

// Commit is a single commit in a branch's fork-point..tip range.
type Commit struct {
	Hash          string
	Subject       string
	CommitterDate time.Time
}

// BranchInfo carries the per-branch data the renderer needs beyond
// tree structure: its edge state relative to its parent (roots have
// none), an optional hook annotation, and (if requested) its commits.
type BranchInfo struct {
	Edge       syncstate.EdgeState
	HasEdge    bool
	HookNote   string
	Commits    []Commit
	WithHashes bool
}

// Options configures [Status].
type Options struct {
	Style *Style
	// Current is the current branch, underlined in the tree.
	Current string
	// ExtraSpaceBeforeBranchName mirrors
	// machete.status.extraSpaceBeforeBranchName.
	ExtraSpaceBeforeBranchName bool
	// Info supplies per-branch edge/commit/hook data; a branch absent
	// from the map renders with no edge color.
	Info map[string]BranchInfo
}

// Status renders tree as the human-readable status tree.
func Status(w io.Writer, tree *branchtree.Tree, opts Options) error {
	style := opts.Style
	if style == nil {
		style = DefaultStyle()
	}

	g := fliptree.Graph{
		Roots: tree.Roots(),
		Edges: func(b string) []string { return tree.Children(b) },
		View: func(b string) string {
			return renderBranch(style, tree, b, opts)
		},
	}

	return fliptree.Write(w, g, fliptree.Options{})
}

func renderBranch(style *Style, tree *branchtree.Tree, b string, opts Options) string {
	var sb strings.Builder

	name := b
	if opts.ExtraSpaceBeforeBranchName {
		name = " " + name
	}

	info := opts.Info[b]
	edgeStyle := ui.NewStyle()
	if info.HasEdge {
		switch info.Edge {
		case syncstate.OutOfSync:
			edgeStyle = style.OutOfSync
		case syncstate.InSyncButForkPointOff:
			edgeStyle = style.ForkOff
		case syncstate.Merged:
			edgeStyle = style.Merged
		default:
			edgeStyle = style.InSync
		}
	}

	if b == opts.Current {
		sb.WriteString(style.Current.Render(name))
	} else {
		sb.WriteString(edgeStyle.Render(name))
	}

	if q := tree.Annotation(b).Qualifiers; q.NoRebase || q.NoPush || q.NoSlideOut {
		sb.WriteString(" ")
		sb.WriteString(style.Qualifier.Render(qualifierBadge(q)))
	}

	if text := tree.Annotation(b).Text; text != "" {
		sb.WriteString(" ")
		sb.WriteString(style.Qualifier.Render(text))
	}

	if info.HookNote != "" {
		sb.WriteString("  ")
		sb.WriteString(info.HookNote)
	}

	for _, c := range info.Commits {
		sb.WriteString("\n")
		if info.WithHashes {
			sb.WriteString(style.CommitHash.Render(c.Hash))
			sb.WriteString(" ")
		}
		line := c.Subject
		if !c.CommitterDate.IsZero() {
			line = fmt.Sprintf("%s (%s)", line, humanize.Time(c.CommitterDate))
		}
		sb.WriteString(style.Commit.Render(line))
	}

	return sb.String()
}

func qualifierBadge(q branchtree.Qualifiers) string {
	var parts []string
	if q.NoRebase {
		parts = append(parts, "rebase=no")
	}
	if q.NoPush {
		parts = append(parts, "push=no")
	}
	if q.NoSlideOut {
		parts = append(parts, "slide-out=no")
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}
