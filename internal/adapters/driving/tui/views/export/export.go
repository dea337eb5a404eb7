// Package export provides the export template chooser for the TUI.
package export

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// View lists the export templates and copies the chosen rendering.
type View struct {
	styles        *styles.Styles
	exportService driving.ExportService
	ctx           context.Context

	templates []domain.ExportTemplate
	selected  int
	preview   string
	exporting bool

	width  int
	height int
	err    error
}

// NewView creates a new export chooser.
func NewView(s *styles.Styles, exportService driving.ExportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		exportService: exportService,
		ctx:           context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the templates and preselects the fallback.
func (v *View) Init() tea.Cmd {
	v.preview = ""
	v.err = nil
	v.exporting = false
	if v.exportService == nil {
		v.templates = nil
		return nil
	}

	v.templates = v.exportService.Templates()
	v.selected = 0
	fallback := v.exportService.Fallback()
	for i, t := range v.templates {
		if t == fallback {
			v.selected = i
			break
		}
	}
	v.updatePreview()
	return nil
}

// Update handles messages for the export chooser.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.Exported:
		v.exporting = false
		v.err = msg.Err
		if msg.Err == nil {
			v.preview = msg.Text
		}
		return v, nil
	}
	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.updatePreview()
		}
	case "down", "j":
		if v.selected < len(v.templates)-1 {
			v.selected++
			v.updatePreview()
		}
	case "enter":
		if tmpl, ok := v.Selected(); ok && !v.exporting {
			v.exporting = true
			return v, v.export(tmpl)
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewPanel}
		}
	}
	return v, nil
}

// updatePreview renders the selected template without copying.
func (v *View) updatePreview() {
	tmpl, ok := v.Selected()
	if !ok {
		v.preview = ""
		return
	}
	text, err := v.exportService.Format(tmpl)
	if err != nil {
		v.err = err
		v.preview = ""
		return
	}
	v.err = nil
	v.preview = text
}

// export returns a command that formats all annotations and copies them.
func (v *View) export(tmpl domain.ExportTemplate) tea.Cmd {
	svc, ctx := v.exportService, v.ctx
	return func() tea.Msg {
		text, err := svc.Export(ctx, tmpl)
		return messages.Exported{Template: tmpl, Text: text, Err: err}
	}
}

// View renders the chooser and a preview of the selected template.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Export annotations"))
	b.WriteString("\n\n")

	if len(v.templates) == 0 {
		b.WriteString(v.styles.Muted.Render("No export templates available."))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range v.templates {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%-14s %s", indicator, t, t.Description())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err)))
		b.WriteString("\n\n")
	} else if v.preview != "" {
		b.WriteString(v.styles.Subtitle.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(v.clip(v.preview)))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] copy  [esc] back"))
	return b.String()
}

// clip trims the preview to the lines that fit under the list.
func (v *View) clip(text string) string {
	room := v.height - len(v.templates) - 8
	if room < 3 {
		room = 3
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= room {
		return text
	}
	return strings.Join(lines[:room], "\n") + "\n..."
}

// Selected returns the template under the cursor.
func (v *View) Selected() (domain.ExportTemplate, bool) {
	if v.selected < 0 || v.selected >= len(v.templates) {
		return "", false
	}
	return v.templates[v.selected], true
}

// Preview returns the rendered preview text.
func (v *View) Preview() string {
	return v.preview
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
