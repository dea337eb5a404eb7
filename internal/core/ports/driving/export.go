package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// ExportService formats annotations as text and copies them to the clipboard.
type ExportService interface {
	// Export renders the given annotations (all when ids is empty) with tmpl
	// and copies the result. An empty tmpl returns domain.ErrTemplateRequired.
	Export(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error)

	// Format renders without touching the clipboard.
	Format(tmpl domain.ExportTemplate, ids ...int64) (string, error)

	// Templates lists the available templates.
	Templates() []domain.ExportTemplate

	// Fallback is the template for non-interactive callers.
	Fallback() domain.ExportTemplate
}
