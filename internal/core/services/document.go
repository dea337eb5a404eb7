package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService loads PDFs into the workspace and exposes the page layout.
type DocumentService struct {
	ws *Workspace
}

// NewDocumentService creates a document service over ws.
func NewDocumentService(ws *Workspace) *DocumentService {
	return &DocumentService{ws: ws}
}

// Open loads a PDF from memory, replacing the current document.
func (s *DocumentService) Open(ctx context.Context, name string, data []byte) (*domain.Document, error) {
	return s.ws.Load(ctx, name, data, false)
}

// OpenFile loads a PDF from disk.
func (s *DocumentService) OpenFile(ctx context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("reading %s: %w", path, domain.ErrPermissionDenied)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.Open(ctx, filepath.Base(path), data)
}

// Restore reloads the last persisted document and its annotations.
func (s *DocumentService) Restore(ctx context.Context) (*domain.Document, error) {
	return s.ws.Restore(ctx)
}

// Current returns the loaded document, or nil.
func (s *DocumentService) Current() *domain.Document {
	return s.ws.Document()
}

// Pages returns the rendered pages with their highlight boxes.
func (s *DocumentService) Pages() []domain.PageView {
	return s.ws.Container().Pages()
}

// Resize sets the viewport size; re-layout is debounced.
func (s *DocumentService) Resize(width, height float64) {
	s.ws.Resize(width, height)
}

// Relayouts delivers the result of each debounced re-layout.
func (s *DocumentService) Relayouts() <-chan error {
	return s.ws.Relayouts()
}

// ScrollTo scrolls the page container.
func (s *DocumentService) ScrollTo(top float64) {
	s.ws.Container().ScrollTo(top)
}

// Viewport returns the container's scroll and loading state.
func (s *DocumentService) Viewport() driving.Viewport {
	c := s.ws.Container()
	width, height := c.ViewportSize()
	return driving.Viewport{
		Width:         width,
		Height:        height,
		ScrollTop:     c.ScrollTop(),
		ContentHeight: c.ContentHeight(),
		Loading:       c.Loading(),
		Error:         c.Error(),
	}
}

// Close releases the document.
func (s *DocumentService) Close() error {
	return s.ws.Close()
}
