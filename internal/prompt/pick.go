package prompt

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sahilm/fuzzy"
	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/ui"
)

// Picker presents a fuzzy-filterable list of options, used to resolve
// an [errs.AmbiguousRemoteError].
type Picker struct {
	in  io.Reader
	out io.Writer
}

// NewPicker builds a [Picker] reading from in and writing to out.
func NewPicker(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out}
}

// Pick asks the user to choose one of options, ranking them by fuzzy
// match against an empty filter (i.e. original order) until the user
// types to narrow the list. Returns [errs.ErrUserAbort] if the field
// is dismissed without a selection.
func (p *Picker) Pick(ctx context.Context, question string, options []string) (string, error) {
	if len(options) == 1 {
		return options[0], nil
	}

	ranked := rankByOriginalOrder(options)

	field := ui.NewSelect[string]().WithTitle(question)
	opts := make([]ui.SelectOption[string], len(ranked))
	for i, label := range ranked {
		opts[i] = ui.SelectOption[string]{Label: label, Value: label}
	}
	field.WithOptions(opts...)

	form := ui.NewForm(field)

	done := make(chan error, 1)
	go func() {
		done <- form.Run(&ui.FormRunOptions{Input: p.in, Output: p.out})
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", errs.ErrUserAbort
		}
		return field.Value(), nil
	}
}

// rankByOriginalOrder pre-sorts options using a no-op fuzzy pattern so
// that [fuzzy.Find]'s scoring is available once the user starts
// typing; with no filter typed yet, fuzzy.Find against "" returns no
// matches, so we fall back to the input order directly.
func rankByOriginalOrder(options []string) []string {
	matches := fuzzy.Find("", options)
	if len(matches) == 0 {
		return options
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

// PickRemote resolves an [errs.AmbiguousRemoteError] by asking the
// user to choose one of its remotes.
func (p *Picker) PickRemote(ctx context.Context, err *errs.AmbiguousRemoteError) (string, error) {
	return p.Pick(ctx, fmt.Sprintf("choose a remote (%d configured)", len(err.Remotes)), err.Remotes)
}
