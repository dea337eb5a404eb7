package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/views/export"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/views/pages"
	"github.com/custodia-labs/folio/internal/adapters/driving/tui/views/panel"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// noticeDuration is how long a transient status message stays visible.
const noticeDuration = 2 * time.Second

// Pixel size of one terminal cell when mapping the terminal onto the page
// container.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// pagesView shows the rendered pages.
	pagesView *pages.View

	// panelView shows the annotation panel.
	panelView *panel.View

	// exportView is the export template chooser.
	exportView *export.View

	// statusBar is the bottom line.
	statusBar *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when help closes.
	previousView messages.ViewType

	// pulse is the jump whose highlight is currently pulsing.
	pulse *driving.Jump

	// noticeSeq identifies the latest transient status message.
	noticeSeq int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil && settings != nil {
			s = s.WithHighlight(settings.Highlight.Color)
		}
	}
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		pagesView:   pages.NewView(s, ports.Document, ports.Annotation),
		panelView:   panel.NewView(s, ports.Annotation),
		exportView:  export.NewView(s, ports.Export),
		statusBar:   status.NewBar(s, km),
		currentView: messages.ViewPages,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.pagesView.WithContext(ctx)
	a.panelView.WithContext(ctx)
	a.exportView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("folio"),
		a.loadDocument(),
		a.waitRelayout(),
	)
}

// waitRelayout returns a command that waits for the next debounced
// re-layout of the pages.
func (a *App) waitRelayout() tea.Cmd {
	ch, ctx := a.ports.Document.Relayouts(), a.ctx
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case err := <-ch:
			return messages.Relayout{Err: err}
		case <-ctx.Done():
			return nil
		}
	}
}

// loadDocument returns a command that restores the last PDF when none is open.
func (a *App) loadDocument() tea.Cmd {
	svc, ctx := a.ports.Document, a.ctx
	return func() tea.Msg {
		if doc := svc.Current(); doc != nil {
			return messages.DocumentLoaded{Document: doc}
		}
		doc, err := svc.Restore(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			err = nil
		}
		return messages.DocumentLoaded{Document: doc, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		if msg.Err != nil {
			return a, a.fail(msg.Err)
		}
		if msg.Document != nil {
			a.statusBar.SetDocument(msg.Document.Name, msg.Document.PageCount)
		}
		a.refresh()
		return a, nil

	case messages.Relayout:
		if msg.Err != nil {
			return a, tea.Batch(a.fail(msg.Err), a.waitRelayout())
		}
		a.pagesView.Refresh()
		a.statusBar.SetPage(a.pagesView.PageNumber())
		return a, a.waitRelayout()

	case messages.SelectionChanged:
		return a, nil

	case messages.AnnotationCreated:
		if msg.Err != nil {
			return a, a.fail(msg.Err)
		}
		a.refresh()
		return a, a.notify(fmt.Sprintf("Annotation %d created", msg.Annotation.ID))

	case messages.JumpRequested:
		svc := a.ports.Annotation
		return a, func() tea.Msg {
			j, err := svc.Jump(msg.AnnotationID)
			return messages.Jumped{Jump: j, Err: err}
		}

	case messages.Jumped:
		if msg.Err != nil {
			return a, a.fail(msg.Err)
		}
		a.pagesView.Refresh()
		a.pagesView.ShowPage(msg.Jump.PageNumber)
		a.statusBar.SetPage(a.pagesView.PageNumber())
		a.setView(messages.ViewPages)
		return a, a.startPulse(msg.Jump)

	case messages.PulseTick:
		return a, a.advancePulse(msg)

	case messages.ReplySaved:
		a.panelView, cmd = a.panelView.Update(msg)
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.fail(msg.Err))
		}
		a.refresh()
		return a, cmd

	case messages.AnnotationDeleted:
		a.panelView, cmd = a.panelView.Update(msg)
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.fail(msg.Err))
		}
		a.refresh()
		if msg.Deleted {
			return a, tea.Batch(cmd, a.notify("Annotation deleted"))
		}
		return a, cmd

	case messages.Exported:
		a.exportView, cmd = a.exportView.Update(msg)
		if msg.Err != nil {
			return a, tea.Batch(cmd, a.fail(msg.Err))
		}
		return a, tea.Batch(cmd, a.notify("Copied!"))

	case messages.Copied:
		if msg.Err != nil {
			return a, a.fail(msg.Err)
		}
		return a, a.notify("Copied!")

	case messages.StatusExpired:
		if msg.Seq == a.noticeSeq {
			a.statusBar.Clear()
		}
		return a, nil

	case messages.ViewChanged:
		a.setView(msg.View)
		switch msg.View {
		case messages.ViewExport:
			return a, a.exportView.Init()
		case messages.ViewPanel:
			a.panelView.Refresh()
		case messages.ViewPages, messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		return a, a.fail(msg.Err)

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewPages:
		a.pagesView, cmd = a.pagesView.Update(msg)
	case messages.ViewPanel:
		a.panelView, cmd = a.panelView.Update(msg)
	case messages.ViewExport:
		a.exportView, cmd = a.exportView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// handleKeyMsg routes key presses to global bindings or the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Typing into a reply or answering the delete modal
	if a.currentView == messages.ViewPanel && a.panelView.Capturing() {
		a.panelView, cmd = a.panelView.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		if a.currentView == messages.ViewHelp {
			a.setView(a.previousView)
		} else {
			a.previousView = a.currentView
			a.setView(messages.ViewHelp)
		}
		return a, nil
	case key.Matches(msg, a.keymap.Panel):
		if a.currentView == messages.ViewPanel {
			a.setView(messages.ViewPages)
		} else {
			a.panelView.Refresh()
			a.setView(messages.ViewPanel)
		}
		return a, nil
	}

	switch a.currentView {
	case messages.ViewPages:
		a.pagesView, cmd = a.pagesView.Update(msg)
		a.statusBar.SetPage(a.pagesView.PageNumber())
	case messages.ViewPanel:
		a.panelView, cmd = a.panelView.Update(msg)
	case messages.ViewExport:
		a.exportView, cmd = a.exportView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc {
			a.setView(a.previousView)
		}
	}
	return a, cmd
}

// setView switches the active view and the status bar hints.
func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	switch v {
	case messages.ViewPages:
		a.statusBar.SetBindings(a.keymap.PagesHelp())
	case messages.ViewPanel:
		a.statusBar.SetBindings(a.keymap.PanelHelp())
	case messages.ViewExport, messages.ViewHelp:
		a.statusBar.SetBindings(nil)
	}
}

// refresh reloads the pages, the panel and the annotation count.
func (a *App) refresh() {
	a.pagesView.Refresh()
	a.panelView.Refresh()
	a.statusBar.SetCount(len(a.ports.Annotation.List()))
	a.statusBar.SetPage(a.pagesView.PageNumber())
}

// startPulse tints the jumped-to highlight with the first frame and
// schedules the rest.
func (a *App) startPulse(j *driving.Jump) tea.Cmd {
	if j == nil || len(j.Frames) == 0 {
		a.pulse = nil
		a.pagesView.ClearPulse()
		return nil
	}
	a.pulse = j
	a.pagesView.SetPulse(j.AnnotationID, j.Frames[0])
	return pulseTick(j.AnnotationID, 1, j.FrameInterval)
}

// advancePulse shows the next pulse frame. Ticks from a superseded jump
// are ignored.
func (a *App) advancePulse(msg messages.PulseTick) tea.Cmd {
	j := a.pulse
	if j == nil || j.AnnotationID != msg.AnnotationID {
		return nil
	}
	if msg.Frame >= len(j.Frames) {
		a.pulse = nil
		a.pagesView.ClearPulse()
		return nil
	}
	a.pagesView.SetPulse(j.AnnotationID, j.Frames[msg.Frame])
	return pulseTick(j.AnnotationID, msg.Frame+1, j.FrameInterval)
}

// pulseTick schedules the given pulse frame.
func pulseTick(id int64, frame int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return messages.PulseTick{AnnotationID: id, Frame: frame}
	})
}

// notify shows a transient message in the status bar.
func (a *App) notify(text string) tea.Cmd {
	a.noticeSeq++
	seq := a.noticeSeq
	a.statusBar.SetState(status.StateNotice)
	a.statusBar.SetMessage(text)
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return messages.StatusExpired{Seq: seq}
	})
}

// fail records err and shows it in the status bar until the next notice.
func (a *App) fail(err error) tea.Cmd {
	a.err = err
	a.noticeSeq++
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewPanel:
		body = a.panelView.View()
	case messages.ViewExport:
		body = a.exportView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewPages:
		body = a.pagesView.View()
	default:
		body = a.pagesView.View()
	}

	body = lipgloss.NewStyle().Height(max(a.height-1, 1)).MaxHeight(max(a.height-1, 1)).Render(body)
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view from the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and its views and
// resizes the page container to match. The container re-lays out pages
// once the resize settles.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-1, 1)
	a.ports.Document.Resize(float64(width)*cellWidth, float64(body)*cellHeight)
	a.pagesView.SetDimensions(width, body)
	a.panelView.SetDimensions(width, body)
	a.exportView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
