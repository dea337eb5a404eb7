package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
	"github.com/custodia-labs/folio/internal/textutil"
)

// WorkspaceConfig holds the ports a Workspace needs.
// KV, Clipboard and Confirmer may be nil.
type WorkspaceConfig struct {
	Renderer  driven.PDFRenderer
	KV        driven.KeyValueStore
	Clipboard driven.Clipboard
	Confirmer driven.Confirmer
	Settings  domain.AppSettings
	Clock     func() time.Time
}

// Workspace is the single owned application state: the annotation store,
// the page container, the loaded document and the pending selection.
// Store changes are wired to persistence, highlight rendering and the panel.
type Workspace struct {
	settings  domain.AppSettings
	store     *AnnotationStore
	container *PageContainer
	pipeline  *RenderPipeline
	panel     *PanelRenderer
	editor    *ReplyEditor
	persister *Persister
	debounce  *Debouncer
	highlight HighlightRenderer
	mapper    GeometryMapper
	clipboard driven.Clipboard
	confirmer driven.Confirmer
	clock     func() time.Time

	relayouts chan error

	mu      sync.Mutex
	doc     *domain.Document
	pending *driving.PendingSelection
}

// NewWorkspace creates a workspace with an empty store and container.
func NewWorkspace(cfg WorkspaceConfig) *Workspace {
	settings := cfg.Settings
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	container := NewPageContainer(settings.Layout.PageGap, settings.Render.ContainerWidth, 0)
	w := &Workspace{
		settings:  settings,
		store:     NewAnnotationStore(),
		container: container,
		pipeline:  NewRenderPipeline(cfg.Renderer, container, settings.Render),
		panel:     NewPanelRenderer(),
		debounce:  NewDebouncer(time.Duration(settings.Layout.DebounceMillis) * time.Millisecond),
		clipboard: cfg.Clipboard,
		confirmer: cfg.Confirmer,
		clock:     clock,
		relayouts: make(chan error, 1),
	}
	w.store.SetClock(clock)
	w.editor = NewReplyEditor(w.store)
	if cfg.KV != nil {
		w.persister = NewPersister(cfg.KV, settings.Storage.ChunkSize)
	}

	w.store.OnChange(w.persistAnnotations)
	w.store.OnChange(func(annotations []domain.Annotation) {
		w.highlight.Render(annotations, w.container)
	})
	w.store.OnChange(func(annotations []domain.Annotation) {
		w.panel.Render(annotations)
	})

	return w
}

// Store returns the annotation store.
func (w *Workspace) Store() *AnnotationStore { return w.store }

// Container returns the page container.
func (w *Workspace) Container() *PageContainer { return w.container }

// Pipeline returns the render pipeline.
func (w *Workspace) Pipeline() *RenderPipeline { return w.pipeline }

// Panel returns the panel renderer.
func (w *Workspace) Panel() *PanelRenderer { return w.panel }

// Editor returns the inline reply editor.
func (w *Workspace) Editor() *ReplyEditor { return w.editor }

// Settings returns the settings the workspace was built with.
func (w *Workspace) Settings() domain.AppSettings { return w.settings }

// Document returns the loaded document, or nil.
func (w *Workspace) Document() *domain.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doc == nil {
		return nil
	}
	d := *w.doc
	return &d
}

// Load replaces the current document. Existing annotations are cleared
// before any page renders unless keepAnnotations is set (used on restore).
func (w *Workspace) Load(ctx context.Context, name string, data []byte, keepAnnotations bool) (*domain.Document, error) {
	if !IsPDF(name, data) {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrNotPDF)
	}

	logger.Section("Load " + name)
	if !keepAnnotations {
		w.store.Clear()
	}
	w.Dismiss()

	count, err := w.pipeline.Open(ctx, data)
	if err != nil {
		w.setDocument(nil)
		return nil, err
	}
	if err := w.pipeline.Render(ctx); err != nil {
		w.setDocument(nil)
		return nil, err
	}

	doc := &domain.Document{
		ID:        uuid.NewString(),
		Name:      name,
		Size:      len(data),
		PageCount: count,
		LoadedAt:  w.clock(),
	}
	w.setDocument(doc)
	w.renderHighlights()

	if w.persister != nil && !keepAnnotations {
		if err := w.persister.SaveDocument(ctx, name, data, doc.LoadedAt); err != nil {
			logger.Warn("document not persisted: %v", err)
		}
	}

	logger.Info("loaded %s: %d pages", name, count)
	d := *doc
	return &d, nil
}

// Restore reloads the persisted document and its annotations.
func (w *Workspace) Restore(ctx context.Context) (*domain.Document, error) {
	if w.persister == nil {
		return nil, fmt.Errorf("restoring: %w", domain.ErrNotFound)
	}

	w.hydrate(ctx)

	stored, err := w.persister.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := w.Load(ctx, stored.Name, stored.Data, true)
	if err != nil {
		return nil, err
	}

	dropped := w.store.Retain(func(a domain.Annotation) bool {
		return doc.HasPage(a.PageNumber)
	})
	if dropped > 0 {
		logger.Warn("dropped %d stored annotations beyond page %d", dropped, doc.PageCount)
	}
	return doc, nil
}

// hydrate loads persisted annotations. Corrupt data clears the key and
// leaves the store empty.
func (w *Workspace) hydrate(ctx context.Context) {
	data, ok, err := w.persister.LoadAnnotations(ctx)
	if err != nil {
		logger.Warn("annotations not restored: %v", err)
		return
	}
	if !ok {
		return
	}
	dropped, err := w.store.Hydrate(data)
	if errors.Is(err, domain.ErrCorruptData) {
		logger.Warn("discarding stored annotations: %v", err)
		_ = w.persister.ClearAnnotations(ctx)
		return
	}
	if dropped > 0 {
		logger.Warn("dropped %d invalid stored annotations", dropped)
	}
}

// Relayout re-renders every page at the current viewport width and redraws
// highlights from the stored page-local rects.
func (w *Workspace) Relayout(ctx context.Context) error {
	if err := w.pipeline.Render(ctx); err != nil {
		return err
	}
	w.renderHighlights()
	return nil
}

// Resize updates the viewport and schedules one debounced re-layout.
func (w *Workspace) Resize(width, height float64) {
	oldWidth, _ := w.container.ViewportSize()
	w.container.SetViewport(width, height)
	if width == oldWidth || w.Document() == nil {
		return
	}
	w.debounce.Trigger(func() {
		err := w.Relayout(context.Background())
		if err != nil {
			logger.Warn("relayout: %v", err)
		}
		select {
		case w.relayouts <- err:
		default:
		}
	})
}

// Relayouts delivers the result of each debounced re-layout. A result is
// dropped when the previous one has not been received yet.
func (w *Workspace) Relayouts() <-chan error {
	return w.relayouts
}

// Select maps a selection onto a page and makes it pending.
func (w *Workspace) Select(sel domain.Selection) (*driving.PendingSelection, error) {
	text := textutil.Sanitize(sel.Text)
	if text == "" {
		w.Dismiss()
		return nil, domain.ErrEmptyText
	}
	meta, ok := w.mapper.Map(sel, w.container)
	if !ok {
		w.Dismiss()
		return nil, fmt.Errorf("selection is not on a rendered page: %w", domain.ErrNoRects)
	}

	pending := &driving.PendingSelection{Text: text, Meta: *meta}
	w.mu.Lock()
	w.pending = pending
	w.mu.Unlock()

	out := *pending
	return &out, nil
}

// SelectText finds query on page n and makes the match pending.
func (w *Workspace) SelectText(n int, query string) (*driving.PendingSelection, error) {
	if w.Document() == nil {
		return nil, domain.ErrNoDocument
	}
	view, ok := w.container.Page(n)
	if !ok {
		return nil, fmt.Errorf("page %d: %w", n, domain.ErrPageOutOfRange)
	}
	text, from, to, ok := view.FindText(query)
	if !ok {
		return nil, fmt.Errorf("text %q on page %d: %w", query, n, domain.ErrNotFound)
	}
	sel := view.SpanSelection(w.container.ScrollTop(), from, to)
	sel.Text = text
	return w.Select(sel)
}

// Pending returns the pending selection.
func (w *Workspace) Pending() (*driving.PendingSelection, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return nil, false
	}
	p := *w.pending
	return &p, true
}

// Dismiss discards the pending selection.
func (w *Workspace) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = nil
}

// Annotate creates an annotation from the pending selection.
func (w *Workspace) Annotate() (*domain.Annotation, error) {
	pending, ok := w.Pending()
	if !ok {
		return nil, fmt.Errorf("no selection: %w", domain.ErrInvalidInput)
	}
	a, err := w.Create(pending.Text, pending.Meta)
	if err != nil {
		return nil, err
	}
	w.Dismiss()
	return a, nil
}

// Create adds an annotation on a page of the loaded document.
func (w *Workspace) Create(text string, meta domain.SelectionMeta) (*domain.Annotation, error) {
	doc := w.Document()
	if doc == nil {
		return nil, domain.ErrNoDocument
	}
	if !doc.HasPage(meta.PageNumber) {
		return nil, fmt.Errorf("page %d of %d: %w", meta.PageNumber, doc.PageCount, domain.ErrPageOutOfRange)
	}

	scale := 0.0
	if page, ok := w.container.Page(meta.PageNumber); ok {
		scale = page.Page.Scale
	}
	id, err := w.store.CreateScaled(text, meta.PageNumber, meta.Rects, scale)
	if err != nil {
		return nil, err
	}
	return w.store.Get(id)
}

// Delete removes an annotation after the user confirms.
func (w *Workspace) Delete(id int64) (bool, error) {
	if _, err := w.store.Get(id); err != nil {
		return false, err
	}
	if w.confirmer == nil {
		return false, nil
	}
	ok, err := w.confirmer.Confirm(DeleteConfirmPrompt)
	if err != nil {
		return false, fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := w.store.Delete(id); err != nil {
		return false, err
	}
	return true, nil
}

// Jump scrolls so the annotation's first rect is vertically centred and
// returns the pulse to play on its highlight boxes.
func (w *Workspace) Jump(id int64) (*driving.Jump, error) {
	a, err := w.store.Get(id)
	if err != nil {
		return nil, err
	}
	page, ok := w.container.Page(a.PageNumber)
	if !ok {
		return nil, fmt.Errorf("page %d not rendered: %w", a.PageNumber, domain.ErrNotFound)
	}

	r := a.FirstRect().Scale(projection(a.Scale, page.Page.Scale))
	_, viewport := w.container.ViewportSize()
	w.container.ScrollTo(page.Top + r.Y + r.Height/2 - viewport/2)

	hl := w.settings.Highlight
	frames, err := PulseFrames(hl.PulseColor, hl.Color, pulseFrames)
	if err != nil {
		return nil, err
	}
	return &driving.Jump{
		AnnotationID:  id,
		PageNumber:    a.PageNumber,
		ScrollTop:     w.container.ScrollTop(),
		Frames:        frames,
		FrameInterval: pulseInterval(time.Duration(hl.PulseMillis)*time.Millisecond, len(frames)),
	}, nil
}

// Copy writes text to the clipboard.
func (w *Workspace) Copy(text string) error {
	if w.clipboard == nil {
		return errors.New("clipboard not configured")
	}
	if err := w.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// Close releases the loaded document and cancels pending layout.
func (w *Workspace) Close() error {
	w.debounce.Cancel()
	w.setDocument(nil)
	return w.pipeline.Close()
}

func (w *Workspace) setDocument(doc *domain.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.doc = doc
}

func (w *Workspace) renderHighlights() {
	w.store.Replay(func(annotations []domain.Annotation) {
		w.highlight.Render(annotations, w.container)
	})
}

func (w *Workspace) persistAnnotations(_ []domain.Annotation) {
	if w.persister == nil {
		return
	}
	data, err := w.store.Serialize()
	if err != nil {
		logger.Error("serializing annotations: %v", err)
		return
	}
	// Failures are logged and purged by the persister.
	_ = w.persister.SaveAnnotations(context.Background(), data)
}
