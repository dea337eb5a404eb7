// Package pages provides the page viewer for the TUI. It shows the text
// layer of one rendered page at a time, marks annotated words and lets the
// user select a run of words to annotate.
package pages

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// View is the page viewer.
type View struct {
	styles            *styles.Styles
	documentService   driving.DocumentService
	annotationService driving.AnnotationService
	ctx               context.Context

	pages   []domain.PageView
	page    int // index into pages
	cursor  int // span index on the current page
	anchor  int // span index where the selection started, -1 when none
	pending *driving.PendingSelection

	pulseID    int64
	pulseColor string

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new page viewer.
func NewView(
	s *styles.Styles,
	documentService driving.DocumentService,
	annotationService driving.AnnotationService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:            s,
		documentService:   documentService,
		annotationService: annotationService,
		ctx:               context.Background(),
		anchor:            -1,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads the rendered pages and their highlights.
func (v *View) Refresh() {
	if v.documentService == nil {
		v.pages = nil
		return
	}
	v.pages = v.documentService.Pages()
	if v.page >= len(v.pages) {
		v.page = max(len(v.pages)-1, 0)
	}
	if n := v.spanCount(); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

// Update handles messages for the page viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if v.cursor > 0 {
			v.cursor--
			return v, v.extendSelection()
		}
	case "right", "l":
		if v.cursor < v.spanCount()-1 {
			v.cursor++
			return v, v.extendSelection()
		}
	case "up", "k":
		return v, v.moveLine(-1)
	case "down", "j":
		return v, v.moveLine(1)
	case "n", "pgdown":
		return v, v.showIndex(v.page + 1)
	case "p", "pgup":
		return v, v.showIndex(v.page - 1)
	case "v":
		if v.anchor >= 0 {
			return v, v.clearSelection()
		}
		if v.spanCount() == 0 {
			return v, nil
		}
		v.anchor = v.cursor
		return v, v.extendSelection()
	case "esc":
		if v.anchor >= 0 {
			return v, v.clearSelection()
		}
	case "a":
		return v, v.annotate()
	}
	return v, nil
}

// moveLine moves the cursor to the nearest word on an adjacent line.
func (v *View) moveLine(delta int) tea.Cmd {
	lines := v.lines()
	li, col := v.cursorLine(lines)
	if li < 0 {
		return nil
	}
	next := li + delta
	if next < 0 || next >= len(lines) {
		return nil
	}
	col = min(col, len(lines[next])-1)
	v.cursor = lines[next][col]
	return v.extendSelection()
}

// showIndex switches to the page at index i and scrolls the viewport to it.
func (v *View) showIndex(i int) tea.Cmd {
	if i < 0 || i >= len(v.pages) || i == v.page {
		return nil
	}
	v.page = i
	v.cursor = 0
	if v.documentService != nil {
		v.documentService.ScrollTo(v.pages[i].Top)
	}
	return v.clearSelection()
}

// ShowPage switches to the 1-based page number n. It reports whether the
// page is rendered.
func (v *View) ShowPage(n int) bool {
	for i := range v.pages {
		if v.pages[i].Page.Number == n {
			if i != v.page {
				v.page = i
				v.cursor = 0
				v.anchor = -1
				v.pending = nil
			}
			return true
		}
	}
	return false
}

// extendSelection updates the pending selection to span anchor..cursor.
func (v *View) extendSelection() tea.Cmd {
	if v.anchor < 0 || v.annotationService == nil {
		return nil
	}
	pv := v.current()
	if pv == nil {
		return nil
	}

	from, to := min(v.anchor, v.cursor), max(v.anchor, v.cursor)
	var scrollTop float64
	if v.documentService != nil {
		scrollTop = v.documentService.Viewport().ScrollTop
	}
	pending, err := v.annotationService.Select(pv.SpanSelection(scrollTop, from, to))
	if err != nil {
		v.err = err
		v.pending = nil
	} else {
		v.err = nil
		v.pending = pending
	}

	p := v.pending
	return func() tea.Msg {
		return messages.SelectionChanged{Pending: p}
	}
}

// clearSelection drops the anchor and the pending selection.
func (v *View) clearSelection() tea.Cmd {
	had := v.anchor >= 0 || v.pending != nil
	v.anchor = -1
	v.pending = nil
	if !had {
		return nil
	}
	if v.annotationService != nil {
		v.annotationService.Dismiss()
	}
	return func() tea.Msg {
		return messages.SelectionChanged{}
	}
}

// annotate returns a command that annotates the pending selection.
func (v *View) annotate() tea.Cmd {
	if v.pending == nil || v.annotationService == nil {
		return nil
	}
	v.anchor = -1
	v.pending = nil

	svc, ctx := v.annotationService, v.ctx
	return func() tea.Msg {
		a, err := svc.Annotate(ctx)
		return messages.AnnotationCreated{Annotation: a, Err: err}
	}
}

// View renders the page viewer.
func (v *View) View() string {
	var b strings.Builder

	if v.documentService == nil || v.documentService.Current() == nil {
		b.WriteString(v.styles.Title.Render("No document"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("Open a PDF with 'folio open <file>' or drop one into a watched folder."))
		b.WriteString("\n")
		return b.String()
	}

	vp := v.documentService.Viewport()
	pv := v.current()
	if pv == nil {
		if vp.Loading {
			b.WriteString(v.styles.Muted.Render("Rendering pages..."))
		} else {
			b.WriteString(v.styles.Muted.Render("No pages rendered"))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Page %d of %d", pv.Page.Number, len(v.pages))))
	b.WriteString("\n")
	switch {
	case vp.Error != "":
		b.WriteString(v.styles.Error.Render(vp.Error))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
	case v.pending != nil:
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Selected %d chars  [a] annotate  [esc] cancel", len([]rune(v.pending.Text)))))
	}
	b.WriteString("\n\n")

	lines := v.lines()
	if len(lines) == 0 {
		b.WriteString(v.styles.Muted.Render("This page has no text layer."))
		b.WriteString("\n")
		return b.String()
	}

	visible := max(v.height-6, 1)
	li, _ := v.cursorLine(lines)
	start := 0
	if li >= visible {
		start = li - visible + 1
	}
	end := min(start+visible, len(lines))
	for _, line := range lines[start:end] {
		b.WriteString(v.renderLine(pv, line))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLine styles each word of a line by cursor, selection and highlight.
func (v *View) renderLine(pv *domain.PageView, line []int) string {
	from, to := -1, -1
	if v.anchor >= 0 {
		from, to = min(v.anchor, v.cursor), max(v.anchor, v.cursor)
	}

	words := make([]string, 0, len(line))
	width := 0
	for _, i := range line {
		span := pv.Page.TextLayer[i]
		text := span.Text
		if v.width > 0 && width+lipgloss.Width(text)+1 > v.width {
			break
		}
		width += lipgloss.Width(text) + 1

		var style lipgloss.Style
		switch id, hit := highlightAt(pv, span.Rect); {
		case i == v.cursor:
			style = v.styles.Cursor
		case i >= from && i <= to:
			style = v.styles.Selection
		case hit && id == v.pulseID && v.pulseColor != "":
			style = v.styles.Pulse(v.pulseColor)
		case hit:
			style = v.styles.Highlight
		default:
			style = v.styles.Normal
		}
		words = append(words, style.Render(text))
	}
	return strings.Join(words, " ")
}

// highlightAt returns the annotation whose highlight overlaps r.
func highlightAt(pv *domain.PageView, r domain.Rect) (int64, bool) {
	for _, h := range pv.Highlights {
		if h.Rect.Intersects(r) {
			return h.AnnotationID, true
		}
	}
	return 0, false
}

// lines groups the current page's spans into visual lines by vertical position.
func (v *View) lines() [][]int {
	pv := v.current()
	if pv == nil {
		return nil
	}

	var out [][]int
	lastY := math.Inf(-1)
	for i, span := range pv.Page.TextLayer {
		mid := span.Rect.Y + span.Rect.Height/2
		if len(out) == 0 || math.Abs(mid-lastY) > span.Rect.Height/2 {
			out = append(out, nil)
			lastY = mid
		}
		out[len(out)-1] = append(out[len(out)-1], i)
	}
	return out
}

// cursorLine returns the line and column of the cursor.
func (v *View) cursorLine(lines [][]int) (int, int) {
	for li, line := range lines {
		for col, i := range line {
			if i == v.cursor {
				return li, col
			}
		}
	}
	return -1, 0
}

// current returns the page being shown, or nil.
func (v *View) current() *domain.PageView {
	if v.page < 0 || v.page >= len(v.pages) || v.pages[v.page].Page == nil {
		return nil
	}
	return &v.pages[v.page]
}

// spanCount returns the number of spans on the current page.
func (v *View) spanCount() int {
	if pv := v.current(); pv != nil {
		return len(pv.Page.TextLayer)
	}
	return 0
}

// SetPulse tints the highlights of an annotation with a pulse colour.
func (v *View) SetPulse(id int64, color string) {
	v.pulseID = id
	v.pulseColor = color
}

// ClearPulse removes the pulse tint.
func (v *View) ClearPulse() {
	v.pulseID = 0
	v.pulseColor = ""
}

// SetStyles replaces the styles, used when the highlight colour changes.
func (v *View) SetStyles(s *styles.Styles) {
	if s != nil {
		v.styles = s
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// PageNumber returns the 1-based number of the page shown, or 0.
func (v *View) PageNumber() int {
	if pv := v.current(); pv != nil {
		return pv.Page.Number
	}
	return 0
}

// Pending returns the pending selection, or nil.
func (v *View) Pending() *driving.PendingSelection {
	return v.pending
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
