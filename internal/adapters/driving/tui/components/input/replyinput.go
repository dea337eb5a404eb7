// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
)

// ReplyInput wraps a bubbles textinput for writing and editing replies.
type ReplyInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewReplyInput creates a new reply input component.
func NewReplyInput(s *styles.Styles) *ReplyInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Write a reply..."
	ti.CharLimit = 2000
	ti.Width = 50

	return &ReplyInput{
		textinput: ti,
		styles:    s,
		label:     "Reply: ",
		width:     50,
	}
}

// Init initialises the reply input.
func (r *ReplyInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (r *ReplyInput) Update(msg tea.Msg) (*ReplyInput, tea.Cmd) {
	var cmd tea.Cmd
	r.textinput, cmd = r.textinput.Update(msg)
	return r, cmd
}

// View renders the reply input.
func (r *ReplyInput) View() string {
	label := r.styles.Subtitle.Render(r.label)
	field := r.styles.InputField.Render(r.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// SetLabel sets the text shown before the field.
func (r *ReplyInput) SetLabel(label string) {
	r.label = label
}

// Label returns the text shown before the field.
func (r *ReplyInput) Label() string {
	return r.label
}

// Value returns the current input value.
func (r *ReplyInput) Value() string {
	return r.textinput.Value()
}

// SetValue sets the input value.
func (r *ReplyInput) SetValue(value string) {
	r.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (r *ReplyInput) Focus() tea.Cmd {
	return r.textinput.Focus()
}

// Blur removes focus from the input.
func (r *ReplyInput) Blur() {
	r.textinput.Blur()
}

// Focused returns whether the input is focused.
func (r *ReplyInput) Focused() bool {
	return r.textinput.Focused()
}

// SetWidth sets the width of the input.
func (r *ReplyInput) SetWidth(width int) {
	r.width = width
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	r.textinput.Width = inputWidth
}

// Width returns the current width.
func (r *ReplyInput) Width() int {
	return r.width
}

// Reset clears and blurs the input.
func (r *ReplyInput) Reset() {
	r.textinput.Reset()
	r.textinput.Blur()
}
