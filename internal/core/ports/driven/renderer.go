package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// PDFRenderer decodes PDF documents.
type PDFRenderer interface {
	// Open decodes data. Returns domain.ErrDecodeFailed for unreadable input.
	Open(ctx context.Context, data []byte) (RenderedDocument, error)
}

// RenderedDocument is an open PDF that can rasterise its pages.
// RenderPage must be safe for concurrent use.
type RenderedDocument interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the natural size of page n (1-based) in points.
	PageSize(n int) (domain.PageSize, error)

	// RenderPage rasterises page n at scale and extracts its text layer.
	// Returned dimensions and text rects are in pixels at that scale.
	RenderPage(ctx context.Context, n int, scale float64) (*domain.RenderedPage, error)

	// Close releases decoder resources.
	Close() error
}
