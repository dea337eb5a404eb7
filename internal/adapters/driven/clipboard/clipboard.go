// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// System is the operating system clipboard.
type System struct {
	write func(string) error
}

// NewSystem creates a clipboard backed by the OS.
func NewSystem() *System {
	return &System{write: clipboard.WriteAll}
}

// Available reports whether a clipboard utility was found.
func Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(text string) error {
	if err := s.write(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
