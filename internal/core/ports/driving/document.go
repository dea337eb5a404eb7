package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// DocumentService loads PDFs and manages the page viewport.
type DocumentService interface {
	// Open loads a PDF from memory, clearing existing annotations first.
	// Returns domain.ErrNotPDF when name and content are not a PDF.
	Open(ctx context.Context, name string, data []byte) (*domain.Document, error)

	// OpenFile reads and loads the PDF at path.
	OpenFile(ctx context.Context, path string) (*domain.Document, error)

	// Restore reloads the last persisted PDF and its annotations.
	// Returns domain.ErrNotFound when nothing was persisted.
	Restore(ctx context.Context) (*domain.Document, error)

	// Current returns the loaded document, or nil.
	Current() *domain.Document

	// Pages returns the rendered pages in order.
	Pages() []domain.PageView

	// Resize schedules a debounced re-layout at the new viewport size.
	Resize(width, height float64)

	// Relayouts delivers the result of each debounced re-layout so
	// surfaces can redraw. Results nobody receives are dropped.
	Relayouts() <-chan error

	// ScrollTo moves the viewport, clamped to the content.
	ScrollTo(top float64)

	// Viewport describes the page container state.
	Viewport() Viewport

	// Close releases the loaded document.
	Close() error
}

// Viewport describes the scrollable page container.
type Viewport struct {
	Width         float64
	Height        float64
	ScrollTop     float64
	ContentHeight float64

	// Loading is true while a render pass is in flight.
	Loading bool

	// Error is the inline message shown instead of pages after a decode failure.
	Error string
}
