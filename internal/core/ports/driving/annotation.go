package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// AnnotationService manages annotations, replies and the pending selection.
type AnnotationService interface {
	// Select sanitises the selection text and maps it onto a page.
	// A mapped selection becomes pending until Annotate or Dismiss.
	Select(sel domain.Selection) (*PendingSelection, error)

	// SelectText finds query in page n's text layer and selects the match.
	SelectText(page int, query string) (*PendingSelection, error)

	// Pending returns the pending selection, if any.
	Pending() (*PendingSelection, bool)

	// Dismiss discards the pending selection.
	Dismiss()

	// Annotate creates an annotation from the pending selection.
	Annotate(ctx context.Context) (*domain.Annotation, error)

	// Create adds an annotation for already-mapped text.
	Create(ctx context.Context, text string, meta domain.SelectionMeta) (*domain.Annotation, error)

	// List returns annotations in creation order.
	List() []domain.Annotation

	// Get retrieves an annotation by ID.
	Get(id int64) (*domain.Annotation, error)

	// Panel returns the display-ordered panel state.
	Panel() PanelView

	// Delete removes an annotation and its replies after confirmation.
	// Returns false when the user declined.
	Delete(ctx context.Context, id int64) (bool, error)

	// AddReply appends a trimmed, non-empty reply.
	AddReply(ctx context.Context, id int64, text string) error

	// EditReply replaces a reply. Empty text deletes it.
	EditReply(ctx context.Context, id int64, index int, text string) error

	// DeleteReply removes a reply by index.
	DeleteReply(ctx context.Context, id int64, index int) error

	// Clear removes every annotation.
	Clear(ctx context.Context) error

	// Jump scrolls the viewport to an annotation and returns its pulse.
	Jump(id int64) (*Jump, error)

	// CopyText writes one annotation's text to the clipboard.
	CopyText(id int64) error
}

// PendingSelection is a mapped selection awaiting confirmation.
type PendingSelection struct {
	Text string
	Meta domain.SelectionMeta
}

// PanelView is the rendered annotation panel.
type PanelView struct {
	// Entries are sorted by page, first-rect top, first-rect left, then ID.
	Entries []domain.Annotation

	// Placeholder is shown when there are no entries.
	Placeholder string

	// ExportEnabled is false when there is nothing to export.
	ExportEnabled bool

	// Version increases on every re-render.
	Version uint64
}

// Jump is the result of jumping to a highlight.
type Jump struct {
	AnnotationID int64
	PageNumber   int
	ScrollTop    float64

	// Frames are hex colours fading from the pulse colour to the highlight colour.
	Frames []string

	// FrameInterval is the delay between frames.
	FrameInterval time.Duration
}
