package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmStyle configures the appearance of a [TraversalPrompt]'s key hints.
type ConfirmStyle struct {
	Key lipgloss.Style
}

// DefaultConfirmStyle is the default style for a [TraversalPrompt].
var DefaultConfirmStyle = ConfirmStyle{
	Key: lipgloss.NewStyle().Foreground(Magenta),
}

// TraversalAnswer is the reply to a [TraversalPrompt].
type TraversalAnswer int

// Recognized answers, in the order the traverser's decision table expects.
const (
	TraversalNo TraversalAnswer = iota
	TraversalYes
	TraversalQuit
	TraversalYesQuit
)

// TraversalKeyMap defines the key bindings for a [TraversalPrompt].
type TraversalKeyMap struct {
	Yes     key.Binding
	No      key.Binding
	Quit    key.Binding
	YesQuit key.Binding
	Accept  key.Binding
}

// DefaultTraversalKeyMap mirrors the traverser's y/N/q/yq vocabulary:
// lowercase y performs the action and continues, q quits and stays,
// shift-Y performs the action then quits, n/enter skips.
var DefaultTraversalKeyMap = TraversalKeyMap{
	Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	No:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	YesQuit: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "yes, then quit")),
	Accept:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "no")),
}

// TraversalPrompt is a [Field] presenting the traverser's four-way
// confirmation: do it, skip it, quit without doing it, or do it and quit.
type TraversalPrompt struct {
	KeyMap TraversalKeyMap
	Style  ConfirmStyle

	title  string
	desc   string
	answer TraversalAnswer
}

var _ Field = (*TraversalPrompt)(nil)

// NewTraversalPrompt builds a traversal confirmation field with the
// given question as its title.
func NewTraversalPrompt(question string) *TraversalPrompt {
	return &TraversalPrompt{
		KeyMap: DefaultTraversalKeyMap,
		Style:  DefaultConfirmStyle,
		title:  question,
	}
}

// Answer returns the answer chosen by the user.
func (p *TraversalPrompt) Answer() TraversalAnswer { return p.answer }

// Init implements [Field].
func (p *TraversalPrompt) Init() tea.Cmd { return nil }

// Err implements [Field].
func (p *TraversalPrompt) Err() error { return nil }

// Title implements [Field].
func (p *TraversalPrompt) Title() string { return p.title }

// Description implements [Field].
func (p *TraversalPrompt) Description() string { return p.desc }

// UnmarshalValue implements [Field], for scripted tests.
func (p *TraversalPrompt) UnmarshalValue(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "y":
		p.answer = TraversalYes
	case "q":
		p.answer = TraversalQuit
	case "Y", "yq":
		p.answer = TraversalYesQuit
	default:
		p.answer = TraversalNo
	}
	return nil
}

// Update implements [Field].
func (p *TraversalPrompt) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.KeyMap.Yes):
		p.answer = TraversalYes
	case key.Matches(keyMsg, p.KeyMap.YesQuit):
		p.answer = TraversalYesQuit
	case key.Matches(keyMsg, p.KeyMap.Quit):
		p.answer = TraversalQuit
	case key.Matches(keyMsg, p.KeyMap.No), key.Matches(keyMsg, p.KeyMap.Accept):
		p.answer = TraversalNo
	default:
		return nil
	}
	return AcceptField
}

// Render implements [Field].
func (p *TraversalPrompt) Render(w Writer) {
	w.WriteString("[")
	w.WriteString(p.Style.Key.Render("y"))
	w.WriteString("/N/")
	w.WriteString(p.Style.Key.Render("q"))
	w.WriteString("/")
	w.WriteString(p.Style.Key.Render("Y"))
	w.WriteString("(=yq)]")
}
