// Package confirm asks the user yes/no questions before destructive actions.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure the confirmers implement the interface.
var (
	_ driven.Confirmer = (*Prompt)(nil)
	_ driven.Confirmer = Always(true)
	_ driven.Confirmer = (*Switch)(nil)
)

// Prompt asks on a terminal and reads a y/N answer.
type Prompt struct {
	in          io.Reader
	out         io.Writer
	interactive func() bool
}

// NewPrompt creates a confirmer on stdin and stderr.
func NewPrompt() *Prompt {
	return &Prompt{
		in:  os.Stdin,
		out: os.Stderr,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// NewPromptFrom creates a confirmer reading from in and writing to out.
// The input is treated as interactive.
func NewPromptFrom(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out, interactive: func() bool { return true }}
}

// Confirm prints prompt and waits for an answer. Anything other than
// y or yes declines. Non-interactive input always declines.
func (p *Prompt) Confirm(prompt string) (bool, error) {
	if !p.interactive() {
		return false, nil
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Always answers every prompt the same way. Used by --yes flags and by
// surfaces that ask through their own dialog first.
type Always bool

// Confirm returns the fixed answer.
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Switch delegates to another confirmer until assume-yes is turned on.
type Switch struct {
	next      driven.Confirmer
	assumeYes atomic.Bool
}

// NewSwitch wraps next.
func NewSwitch(next driven.Confirmer) *Switch {
	return &Switch{next: next}
}

// AssumeYes makes every later prompt answer yes without asking.
func (s *Switch) AssumeYes(v bool) {
	s.assumeYes.Store(v)
}

// Confirm answers yes when assume-yes is on and asks next otherwise.
func (s *Switch) Confirm(prompt string) (bool, error) {
	if s.assumeYes.Load() || s.next == nil {
		return s.assumeYes.Load(), nil
	}
	return s.next.Confirm(prompt)
}
