// Package layout reads and writes the plaintext branch-layout file: an
// indented list of managed branch names with free-text annotations and
// qualifiers.
package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.abhg.dev/ladder/internal/branchtree"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/osutil"
)

// qualifierTokens recognizes the three qualifier tokens; order here is
// also the order in which they are re-emitted on serialization.
var qualifierTokens = []string{"rebase=no", "push=no", "slide-out=no"}

// Parse reads a layout file's contents into a [branchtree.Tree].
//
// Indentation must be either all-tabs or a single consistent run-length
// of spaces; blank lines and lines starting with "#" are ignored (see
// design notes §9 on the open question of comment/blank line handling:
// this implementation treats them as comments, which is the more
// permissive and more commonly useful policy). A line's indent depth may
// only increase by exactly one level relative to the previous
// non-blank line; decreasing by any amount is fine.
func Parse(data []byte) (*branchtree.Tree, error) {
	unit, err := detectIndentUnit(data)
	if err != nil {
		return nil, err
	}

	tree := branchtree.New()
	// stack[d] is the branch name at depth d.
	var stack []string

	scan := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scan.Scan() {
		lineNo++
		raw := scan.Bytes()
		if isBlankOrComment(raw) {
			continue
		}

		depth, rest, err := splitIndent(raw, unit, lineNo)
		if err != nil {
			return nil, err
		}
		if depth > len(stack) {
			return nil, &errs.LayoutIndentJumpError{Line: lineNo}
		}

		name, annText := splitNameAndAnnotation(rest)
		if name == "" {
			return nil, &errs.LayoutError{Reason: fmt.Sprintf("line %d: empty branch name", lineNo)}
		}

		var onto string
		if depth > 0 {
			onto = stack[depth-1]
		}

		if err := tree.Add(branchtree.AddRequest{
			Name:       name,
			Onto:       onto,
			Annotation: parseAnnotation(annText),
		}); err != nil {
			return nil, err
		}

		stack = append(stack[:depth], name)
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}

	return tree, nil
}

// ParseFile reads and parses the layout file at path. A missing file is
// treated as an empty tree.
func ParseFile(path string) (*branchtree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return branchtree.New(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// IndentUnit is the string used for one level of indentation when
// serializing; either one or more tabs, or N spaces.
type IndentUnit string

// DefaultIndentUnit matches the upstream tool's own default (one tab).
const DefaultIndentUnit IndentUnit = "\t"

// Serialize renders tree back to the layout file text, using unit for
// one level of indentation and a single trailing newline. Re-parsing
// the output must reproduce an equivalent tree.
func Serialize(tree *branchtree.Tree, unit IndentUnit) []byte {
	var buf bytes.Buffer
	var walk func(name string, depth int)
	walk = func(name string, depth int) {
		buf.WriteString(strings.Repeat(string(unit), depth))
		buf.WriteString(name)
		if ann := annotationText(tree.Annotation(name)); ann != "" {
			buf.WriteString(" ")
			buf.WriteString(ann)
		}
		buf.WriteString("\n")
		for _, c := range tree.Children(name) {
			walk(c, depth+1)
		}
	}
	for _, r := range tree.Roots() {
		walk(r, 0)
	}
	return buf.Bytes()
}

// WriteFile atomically writes the serialized tree to path: it writes to
// a temp file in the same directory, then renames over path. If path
// already exists and keepBackup is true (set by callers performing a
// bulk replacement, e.g. discover), the previous contents are
// first preserved at "<path>~".
func WriteFile(path string, tree *branchtree.Tree, unit IndentUnit, keepBackup bool) error {
	if keepBackup {
		if _, err := os.Stat(path); err == nil {
			if err := copyFile(path, path+"~"); err != nil {
				return fmt.Errorf("back up layout file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	dir := dirOf(path)
	tmp, err := osutil.TempFilePath(dir, "machete-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp) //nolint:errcheck // best-effort cleanup if rename fails

	data := Serialize(tree, unit)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func dirOf(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ""
	}
	return path[:i]
}

func isBlankOrComment(line []byte) bool {
	t := bytes.TrimSpace(line)
	return len(t) == 0 || t[0] == '#'
}

// detectIndentUnit inspects the first indented line to decide whether
// the file uses tabs or N spaces, then verifies every other indented
// line uses a multiple of that same unit with no mixing.
func detectIndentUnit(data []byte) (IndentUnit, error) {
	var unit IndentUnit
	lineNo := 0

	scan := bufio.NewScanner(bytes.NewReader(data))
	for scan.Scan() {
		lineNo++
		raw := scan.Bytes()
		if isBlankOrComment(raw) {
			continue
		}

		indent := leadingWhitespace(raw)
		if len(indent) == 0 {
			continue
		}

		if unit == "" {
			switch indent[0] {
			case '\t':
				if bytes.ContainsRune(indent, ' ') {
					return "", &errs.LayoutIndentError{Line: lineNo, Reason: "mixed tabs and spaces"}
				}
				unit = "\t"
			case ' ':
				if bytes.ContainsRune(indent, '\t') {
					return "", &errs.LayoutIndentError{Line: lineNo, Reason: "mixed tabs and spaces"}
				}
				unit = IndentUnit(indent)
			}
			continue
		}

		if _, ok := unitMultiple(indent, unit); !ok {
			return "", &errs.LayoutIndentError{
				Line:   lineNo,
				Reason: fmt.Sprintf("indentation does not match established unit %q", string(unit)),
			}
		}
	}

	if unit == "" {
		unit = DefaultIndentUnit
	}
	return unit, nil
}

// unitMultiple reports the depth (number of repetitions of unit) that
// exactly reconstructs indent, or false if indent is not a clean
// multiple of unit (including mixed tab/space indents).
func unitMultiple(indent []byte, unit IndentUnit) (int, bool) {
	if len(unit) == 0 || len(indent)%len(unit) != 0 {
		return 0, false
	}
	n := len(indent) / len(unit)
	if strings.Repeat(string(unit), n) != string(indent) {
		return 0, false
	}
	return n, true
}

func leadingWhitespace(line []byte) []byte {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

func splitIndent(raw []byte, unit IndentUnit, lineNo int) (depth int, rest []byte, err error) {
	indent := leadingWhitespace(raw)
	depth, ok := unitMultiple(indent, unit)
	if !ok {
		return 0, nil, &errs.LayoutIndentError{
			Line:   lineNo,
			Reason: fmt.Sprintf("indentation does not match established unit %q", string(unit)),
		}
	}
	return depth, raw[len(indent):], nil
}

func splitNameAndAnnotation(rest []byte) (name string, annotation string) {
	s := strings.TrimRight(string(rest), " \t")
	name = s
	// Branch names are whitespace-free; a tab between name and
	// annotation is equally valid, so cut on the first run of
	// whitespace by hand rather than relying on strings.Fields.
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		name = s[:i]
		annotation = strings.TrimSpace(s[i:])
	}
	return name, annotation
}

func parseAnnotation(text string) branchtree.Annotation {
	if text == "" {
		return branchtree.Annotation{}
	}

	var free []string
	var q branchtree.Qualifiers
	for _, tok := range strings.Fields(text) {
		switch tok {
		case "rebase=no":
			q.NoRebase = true
		case "push=no":
			q.NoPush = true
		case "slide-out=no":
			q.NoSlideOut = true
		default:
			free = append(free, tok)
		}
	}
	return branchtree.Annotation{Text: strings.Join(free, " "), Qualifiers: q}
}

// annotationText reassembles an annotation's free text followed by its
// qualifier tokens, in the stable order of qualifierTokens.
func annotationText(a branchtree.Annotation) string {
	var parts []string
	if a.Text != "" {
		parts = append(parts, a.Text)
	}
	if a.Qualifiers.NoRebase {
		parts = append(parts, "rebase=no")
	}
	if a.Qualifiers.NoPush {
		parts = append(parts, "push=no")
	}
	if a.Qualifiers.NoSlideOut {
		parts = append(parts, "slide-out=no")
	}
	return strings.Join(parts, " ")
}
