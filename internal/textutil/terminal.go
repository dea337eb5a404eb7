package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TerminalSafe prepares a user-supplied string for display in a terminal.
// Escape sequences are stripped and remaining control characters other
// than newline and tab are shown as U+FFFD.
func TerminalSafe(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if isC0orC1(r) {
			return '\uFFFD'
		}
		return r
	}, s)
}

// SingleLine is TerminalSafe with newlines and tabs folded to spaces.
func SingleLine(s string) string {
	s = TerminalSafe(s)
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
}
