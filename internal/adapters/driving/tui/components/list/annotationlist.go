// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
)

// row addresses one line of the list: an annotation or one of its replies.
type row struct {
	entry int
	reply int // -1 for the annotation itself
}

// AnnotationList displays annotation blocks and their replies in a
// navigable list. The cursor moves across annotations and replies alike.
type AnnotationList struct {
	entries     []domain.Annotation
	rows        []row
	selected    int
	placeholder string
	styles      *styles.Styles
	width       int
	height      int
}

// NewAnnotationList creates a new annotation list component.
func NewAnnotationList(s *styles.Styles) *AnnotationList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &AnnotationList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *AnnotationList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *AnnotationList) Update(msg tea.Msg) (*AnnotationList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *AnnotationList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render(l.placeholder)
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

// renderRow formats a single annotation or reply line.
func (l *AnnotationList) renderRow(i int) string {
	r := l.rows[i]
	a := &l.entries[r.entry]

	indicator := "  "
	if i == l.selected {
		indicator = "> "
	}

	if r.reply < 0 {
		label := fmt.Sprintf("[%d] p.%d ", a.ID, a.PageNumber)
		text := truncate(a.Text, l.width-len(label)-4)
		if i == l.selected {
			return l.styles.Selected.Render(indicator + label + text)
		}
		return l.styles.Normal.Render(indicator) +
			l.styles.Subtitle.Render(label) +
			l.styles.Normal.Render(text)
	}

	label := fmt.Sprintf("    %d. ", r.reply+1)
	text := truncate(a.Replies[r.reply], l.width-len(label)-4)
	if i == l.selected {
		return l.styles.Selected.Render(indicator + label + text)
	}
	return l.styles.Muted.Render(indicator + label + text)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// SetEntries replaces the entries, keeping the cursor on the same
// annotation when it still exists.
func (l *AnnotationList) SetEntries(entries []domain.Annotation, placeholder string) {
	var keep int64
	if a := l.SelectedAnnotation(); a != nil {
		keep = a.ID
	}

	l.entries = entries
	l.placeholder = placeholder
	l.rows = l.rows[:0]
	for i := range entries {
		l.rows = append(l.rows, row{entry: i, reply: -1})
		for j := range entries[i].Replies {
			l.rows = append(l.rows, row{entry: i, reply: j})
		}
	}

	l.selected = 0
	if keep == 0 {
		return
	}
	for i, r := range l.rows {
		if r.reply < 0 && entries[r.entry].ID == keep {
			l.selected = i
			return
		}
	}
}

// Entries returns the current entries.
func (l *AnnotationList) Entries() []domain.Annotation {
	return l.entries
}

// Selected returns the cursor row index.
func (l *AnnotationList) Selected() int {
	return l.selected
}

// SelectedAnnotation returns the annotation under the cursor, or nil.
// A reply row resolves to its annotation.
func (l *AnnotationList) SelectedAnnotation() *domain.Annotation {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.entries[l.rows[l.selected].entry]
}

// SelectedReply returns the reply index under the cursor, or -1 when the
// cursor is on an annotation.
func (l *AnnotationList) SelectedReply() int {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return -1
	}
	return l.rows[l.selected].reply
}

// MoveUp moves the cursor up.
func (l *AnnotationList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the cursor down.
func (l *AnnotationList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *AnnotationList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of annotations.
func (l *AnnotationList) Count() int {
	return len(l.entries)
}

// IsEmpty returns whether the list has no annotations.
func (l *AnnotationList) IsEmpty() bool {
	return len(l.entries) == 0
}
