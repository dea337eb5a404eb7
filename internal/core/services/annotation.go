package services

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService is the user-facing annotation workflow: selecting text,
// annotating it, replying, deleting and jumping to highlights.
type AnnotationService struct {
	ws *Workspace
}

// NewAnnotationService creates an annotation service over ws.
func NewAnnotationService(ws *Workspace) *AnnotationService {
	return &AnnotationService{ws: ws}
}

// Select records a text selection as pending.
func (s *AnnotationService) Select(sel domain.Selection) (*driving.PendingSelection, error) {
	return s.ws.Select(sel)
}

// SelectText finds text on a page and records it as pending.
func (s *AnnotationService) SelectText(page int, query string) (*driving.PendingSelection, error) {
	return s.ws.SelectText(page, query)
}

// Pending returns the pending selection, if any.
func (s *AnnotationService) Pending() (*driving.PendingSelection, bool) {
	return s.ws.Pending()
}

// Dismiss discards the pending selection.
func (s *AnnotationService) Dismiss() {
	s.ws.Dismiss()
}

// Annotate turns the pending selection into an annotation.
func (s *AnnotationService) Annotate(_ context.Context) (*domain.Annotation, error) {
	return s.ws.Annotate()
}

// Create adds an annotation from explicit text and geometry.
func (s *AnnotationService) Create(_ context.Context, text string, meta domain.SelectionMeta) (*domain.Annotation, error) {
	return s.ws.Create(text, meta)
}

// List returns all annotations in insertion order.
func (s *AnnotationService) List() []domain.Annotation {
	return s.ws.Store().List()
}

// Get returns one annotation.
func (s *AnnotationService) Get(id int64) (*domain.Annotation, error) {
	return s.ws.Store().Get(id)
}

// Panel returns the current panel view.
func (s *AnnotationService) Panel() driving.PanelView {
	return s.ws.Panel().Current()
}

// Delete removes an annotation once the user confirms. The boolean is
// false when the user declined.
func (s *AnnotationService) Delete(_ context.Context, id int64) (bool, error) {
	return s.ws.Delete(id)
}

// AddReply appends a reply.
func (s *AnnotationService) AddReply(_ context.Context, id int64, text string) error {
	return s.ws.Store().AddReply(id, text)
}

// EditReply replaces a reply; blank text deletes it.
func (s *AnnotationService) EditReply(_ context.Context, id int64, index int, text string) error {
	return s.ws.Store().EditReply(id, index, text)
}

// DeleteReply removes a reply.
func (s *AnnotationService) DeleteReply(_ context.Context, id int64, index int) error {
	return s.ws.Store().DeleteReply(id, index)
}

// Clear removes every annotation.
func (s *AnnotationService) Clear(_ context.Context) error {
	s.ws.Store().Clear()
	return nil
}

// Jump scrolls to an annotation and returns its pulse animation.
func (s *AnnotationService) Jump(id int64) (*driving.Jump, error) {
	return s.ws.Jump(id)
}

// CopyText copies an annotation's highlighted text to the clipboard.
func (s *AnnotationService) CopyText(id int64) error {
	a, err := s.ws.Store().Get(id)
	if err != nil {
		return err
	}
	return s.ws.Copy(a.Text)
}
