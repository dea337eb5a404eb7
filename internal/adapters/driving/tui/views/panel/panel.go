// Package panel provides the annotation panel view for the TUI.
package panel

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mode is what the panel is currently doing with key presses.
type mode int

const (
	modeBrowse mode = iota
	modeReply
	modeEdit
	modeConfirm
)

// View is the annotation panel.
type View struct {
	styles            *styles.Styles
	annotationService driving.AnnotationService
	ctx               context.Context

	list  *list.AnnotationList
	input *input.ReplyInput

	mode          mode
	target        int64 // annotation the input or modal acts on
	targetReply   int
	exportEnabled bool

	width  int
	height int
	err    error
}

// NewView creates a new annotation panel.
func NewView(s *styles.Styles, annotationService driving.AnnotationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:            s,
		annotationService: annotationService,
		ctx:               context.Background(),
		list:              list.NewAnnotationList(s),
		input:             input.NewReplyInput(s),
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

// Refresh reloads the panel entries from the annotation service.
func (v *View) Refresh() {
	if v.annotationService == nil {
		return
	}
	p := v.annotationService.Panel()
	v.list.SetEntries(p.Entries, p.Placeholder)
	v.exportEnabled = p.ExportEnabled
}

// Update handles messages for the panel.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeReply, modeEdit:
			return v.handleInputKey(msg)
		case modeConfirm:
			return v.handleConfirmKey(msg)
		case modeBrowse:
		}
		return v.handleKeyMsg(msg)

	case messages.ReplySaved:
		v.err = msg.Err
		if msg.Err == nil {
			v.Refresh()
		}
		return v, nil

	case messages.AnnotationDeleted:
		v.err = msg.Err
		v.Refresh()
		return v, nil
	}

	// Forward blink and other messages to the input while it is open.
	if v.mode == modeReply || v.mode == modeEdit {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// handleKeyMsg handles key presses while browsing.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	a := v.list.SelectedAnnotation()

	switch msg.String() {
	case "up", "k", "down", "j":
		v.list, _ = v.list.Update(msg)
	case "enter":
		if a != nil {
			id := a.ID
			return v, func() tea.Msg {
				return messages.JumpRequested{AnnotationID: id}
			}
		}
	case "r":
		if a != nil {
			return v, v.openInput(modeReply, a.ID, -1, "Reply: ", "")
		}
	case "e":
		if a != nil {
			if idx := v.list.SelectedReply(); idx >= 0 {
				return v, v.openInput(modeEdit, a.ID, idx, fmt.Sprintf("Edit %d: ", idx+1), a.Replies[idx])
			}
		}
	case "d", "delete":
		if a == nil {
			return v, nil
		}
		if idx := v.list.SelectedReply(); idx >= 0 {
			return v, v.deleteReply(a.ID, idx)
		}
		v.mode = modeConfirm
		v.target = a.ID
	case "c":
		if a != nil {
			return v, v.copyText(a.ID)
		}
	case "x":
		if v.exportEnabled {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewExport}
			}
		}
	}
	return v, nil
}

// handleInputKey handles key presses while writing or editing a reply.
func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.closeInput()
		return v, nil
	case tea.KeyEnter:
		text := v.input.Value()
		id, idx, m := v.target, v.targetReply, v.mode
		v.closeInput()
		if m == modeEdit {
			return v, v.editReply(id, idx, text)
		}
		return v, v.addReply(id, text)
	default:
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
}

// handleConfirmKey handles the delete confirmation modal.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := v.target
		v.mode = modeBrowse
		v.target = 0
		return v, v.deleteAnnotation(id)
	case "n", "N", "esc":
		v.mode = modeBrowse
		v.target = 0
	}
	return v, nil
}

// openInput focuses the reply input for id.
func (v *View) openInput(m mode, id int64, idx int, label, value string) tea.Cmd {
	v.mode = m
	v.target = id
	v.targetReply = idx
	v.input.Reset()
	v.input.SetLabel(label)
	v.input.SetValue(value)
	return v.input.Focus()
}

// closeInput returns to browsing.
func (v *View) closeInput() {
	v.mode = modeBrowse
	v.target = 0
	v.targetReply = -1
	v.input.Reset()
}

func (v *View) addReply(id int64, text string) tea.Cmd {
	svc, ctx := v.annotationService, v.ctx
	return func() tea.Msg {
		return messages.ReplySaved{AnnotationID: id, Err: svc.AddReply(ctx, id, text)}
	}
}

func (v *View) editReply(id int64, idx int, text string) tea.Cmd {
	svc, ctx := v.annotationService, v.ctx
	return func() tea.Msg {
		return messages.ReplySaved{AnnotationID: id, Err: svc.EditReply(ctx, id, idx, text)}
	}
}

func (v *View) deleteReply(id int64, idx int) tea.Cmd {
	svc, ctx := v.annotationService, v.ctx
	return func() tea.Msg {
		return messages.ReplySaved{AnnotationID: id, Err: svc.DeleteReply(ctx, id, idx)}
	}
}

func (v *View) deleteAnnotation(id int64) tea.Cmd {
	svc, ctx := v.annotationService, v.ctx
	return func() tea.Msg {
		deleted, err := svc.Delete(ctx, id)
		return messages.AnnotationDeleted{AnnotationID: id, Deleted: deleted, Err: err}
	}
}

func (v *View) copyText(id int64) tea.Cmd {
	svc := v.annotationService
	return func() tea.Msg {
		return messages.Copied{Err: svc.CopyText(id)}
	}
}

// View renders the panel.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Annotations (%d)", v.list.Count())))
	b.WriteString("\n\n")

	if v.mode == modeConfirm {
		b.WriteString(v.renderConfirm())
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(v.list.View())
	b.WriteString("\n\n")

	if v.mode == modeReply || v.mode == modeEdit {
		b.WriteString(v.input.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
		b.WriteString("\n")
		return b.String()
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n\n")
	}
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderConfirm renders the delete confirmation modal.
func (v *View) renderConfirm() string {
	width := min(max(v.width-8, 30), 70)
	body := lipgloss.NewStyle().Width(width).Render(domain.DeleteConfirmPrompt)
	prompt := v.styles.Help.Render("[y] delete  [n] cancel")
	return v.styles.Modal.Render(body + "\n\n" + prompt)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	help := "[enter] jump  [r] reply  [e] edit  [d] delete  [c] copy"
	if v.exportEnabled {
		help += "  [x] export"
	}
	return v.styles.Help.Render(help + "  [tab] pages")
}

// Capturing reports whether key presses are being typed into an input or
// answered in a modal rather than treated as shortcuts.
func (v *View) Capturing() bool {
	return v.mode != modeBrowse
}

// SetStyles replaces the styles.
func (v *View) SetStyles(s *styles.Styles) {
	if s != nil {
		v.styles = s
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
	v.input.SetWidth(width)
}

// SelectedAnnotation returns the annotation under the cursor, or nil.
func (v *View) SelectedAnnotation() *domain.Annotation {
	return v.list.SelectedAnnotation()
}

// ExportEnabled reports whether there is anything to export.
func (v *View) ExportEnabled() bool {
	return v.exportEnabled
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
