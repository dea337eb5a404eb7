package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// DropFolderService loads PDFs as they appear in a directory.
type DropFolderService interface {
	// Watch blocks until ctx is cancelled, calling onLoad after each load attempt.
	Watch(ctx context.Context, dir string, onLoad func(doc *domain.Document, err error)) error
}
