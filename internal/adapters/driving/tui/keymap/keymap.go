// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view or cancels the current operation.
	Back key.Binding

	// Up moves the cursor up a line or list entry.
	Up key.Binding

	// Down moves the cursor down a line or list entry.
	Down key.Binding

	// Left moves the cursor to the previous word.
	Left key.Binding

	// Right moves the cursor to the next word.
	Right key.Binding

	// NextPage shows the next page.
	NextPage key.Binding

	// PrevPage shows the previous page.
	PrevPage key.Binding

	// Mark starts or ends a text selection at the cursor.
	Mark key.Binding

	// Annotate creates an annotation from the selection.
	Annotate key.Binding

	// Panel switches between the pages and the annotation panel.
	Panel key.Binding

	// Jump scrolls to the selected annotation's highlight.
	Jump key.Binding

	// Reply adds a reply to the selected annotation.
	Reply key.Binding

	// Edit edits the selected reply.
	Edit key.Binding

	// Delete deletes the selected annotation or reply.
	Delete key.Binding

	// Copy copies the selected annotation's text.
	Copy key.Binding

	// Export opens the export template chooser.
	Export key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev word"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next word"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "prev page"),
		),
		Mark: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select"),
		),
		Annotate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "annotate"),
		),
		Panel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "panel"),
		),
		Jump: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reply"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Panel, k.Help, k.Quit}
}

// PagesHelp returns keybindings for the page viewer.
func (k *KeyMap) PagesHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Annotate, k.NextPage, k.Panel, k.Quit}
}

// PanelHelp returns keybindings for the annotation panel.
func (k *KeyMap) PanelHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Reply, k.Copy, k.Delete, k.Export, k.Panel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextPage, k.PrevPage},
		{k.Mark, k.Annotate, k.Panel, k.Jump},
		{k.Reply, k.Edit, k.Delete, k.Copy, k.Export},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
