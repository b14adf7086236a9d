// Package prompt implements the traverser's y/N/q/yq confirmation
// prompts as a small bubbletea form, so that Ctrl-C during a pending
// prompt is caught as a key event and reported as a clean abort rather
// than killing the process mid-operation.
package prompt

import (
	"context"
	"io"

	"go.abhg.dev/ladder/internal/errs"
	"go.abhg.dev/ladder/internal/ui"
)

// Answer is a reply to a traversal prompt.
type Answer int

// Recognized answers.
const (
	// No skips the proposed action.
	No Answer = iota
	// Yes performs the proposed action and continues traversal.
	Yes
	// Quit stops traversal without performing the proposed action.
	Quit
	// YesQuit performs the proposed action, then stops traversal.
	YesQuit
)

func fromFieldAnswer(a ui.TraversalAnswer) Answer {
	switch a {
	case ui.TraversalYes:
		return Yes
	case ui.TraversalQuit:
		return Quit
	case ui.TraversalYesQuit:
		return YesQuit
	default:
		return No
	}
}

// Prompter asks y/N/q/yq confirmation questions.
type Prompter struct {
	in      io.Reader
	out     io.Writer
	autoYes bool
}

// New builds a [Prompter] reading from in and writing prompts to out.
// If autoYes is set, every [Prompter.Confirm] call answers [Yes]
// without reading input, per the traversal "--yes" flag.
func New(in io.Reader, out io.Writer, autoYes bool) *Prompter {
	return &Prompter{in: in, out: out, autoYes: autoYes}
}

// Confirm asks question, returning the user's [Answer]. Ctrl-C while
// the prompt is pending returns [errs.ErrUserAbort] instead of
// blocking, leaving any in-flight git state untouched.
func (p *Prompter) Confirm(ctx context.Context, question string) (Answer, error) {
	if p.autoYes {
		return Yes, nil
	}

	field := ui.NewTraversalPrompt(question)
	form := ui.NewForm(field)

	done := make(chan error, 1)
	go func() {
		done <- form.Run(&ui.FormRunOptions{Input: p.in, Output: p.out})
	}()

	select {
	case <-ctx.Done():
		return No, ctx.Err()
	case err := <-done:
		if err != nil {
			// The form's own Ctrl-C handler ("user cancelled") and an
			// EOF'd input stream both mean the same thing here: stop
			// without acting.
			return No, errs.ErrUserAbort
		}
		return fromFieldAnswer(field.Answer()), nil
	}
}
