package services

import (
	"sort"
	"sync"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// EmptyPanelMessage is shown when there are no annotations.
const EmptyPanelMessage = "No annotations added yet. Select text in the PDF to start annotating."

// DeleteConfirmPrompt is asked before an annotation is deleted.
const DeleteConfirmPrompt = domain.DeleteConfirmPrompt

// PanelRenderer keeps the display-ordered annotation panel.
type PanelRenderer struct {
	mu      sync.RWMutex
	view    driving.PanelView
	version uint64
}

// NewPanelRenderer creates a panel showing the empty state.
func NewPanelRenderer() *PanelRenderer {
	p := &PanelRenderer{}
	p.Render(nil)
	return p
}

// Render rebuilds the panel from annotations in reading order.
func (p *PanelRenderer) Render(annotations []domain.Annotation) driving.PanelView {
	entries := SortForDisplay(annotations)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.version++
	p.view = driving.PanelView{
		Entries:       entries,
		ExportEnabled: len(entries) > 0,
		Version:       p.version,
	}
	if len(entries) == 0 {
		p.view.Placeholder = EmptyPanelMessage
	}
	return p.view
}

// Current returns the last rendered panel.
func (p *PanelRenderer) Current() driving.PanelView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// SortForDisplay orders annotations by page, first-rect top, first-rect
// left, then ID. The input is not modified.
func SortForDisplay(annotations []domain.Annotation) []domain.Annotation {
	out := make([]domain.Annotation, len(annotations))
	copy(out, annotations)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PageNumber != b.PageNumber {
			return a.PageNumber < b.PageNumber
		}
		ra, rb := a.FirstRect(), b.FirstRect()
		if ra.Y != rb.Y {
			return ra.Y < rb.Y
		}
		if ra.X != rb.X {
			return ra.X < rb.X
		}
		return a.ID < b.ID
	})
	return out
}

// ReplyEditor is the inline edit state for one reply.
// Commit writes through the store; Cancel leaves it untouched.
type ReplyEditor struct {
	store *AnnotationStore

	mu      sync.Mutex
	active  bool
	id      int64
	index   int
	initial string
}

// NewReplyEditor creates an idle editor.
func NewReplyEditor(store *AnnotationStore) *ReplyEditor {
	return &ReplyEditor{store: store}
}

// Begin starts editing reply index of annotation id and returns its text.
func (e *ReplyEditor) Begin(id int64, index int) (string, error) {
	a, err := e.store.Get(id)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(a.Replies) {
		return "", domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.active, e.id, e.index, e.initial = true, id, index, a.Replies[index]
	return e.initial, nil
}

// Active reports whether an edit is in progress and which reply it targets.
func (e *ReplyEditor) Active() (id int64, index int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id, e.index, e.active
}

// Commit saves text. Blank text deletes the reply.
func (e *ReplyEditor) Commit(text string) error {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return domain.ErrInvalidInput
	}
	id, index := e.id, e.index
	e.active = false
	e.mu.Unlock()

	return e.store.EditReply(id, index, text)
}

// Cancel abandons the edit without touching the store.
func (e *ReplyEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = false
}
