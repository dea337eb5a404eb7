package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// IsometricService produces isometric projections of an image.
type IsometricService interface {
	// Generate writes every direction and scale variant of data into dir.
	Generate(ctx context.Context, data []byte, dir string) ([]domain.IsoVariant, error)

	// SavePasted stores a pasted image as a timestamped PNG in dir.
	SavePasted(ctx context.Context, data []byte, dir string) (string, error)
}
