package driven

import (
	"context"
	"image"
)

// Affine is a 2x3 affine matrix in row-major order mapping source to
// destination coordinates: [a b c; d e f].
type Affine [6]float64

// ImageTransformer rasterises affine projections of images.
type ImageTransformer interface {
	// Transform draws src through m onto a transparent canvas of bounds.
	Transform(src image.Image, m Affine, bounds image.Rectangle) (image.Image, error)
}

// FileSink writes generated files into a directory.
type FileSink interface {
	// WriteFile creates dir if needed and writes name inside it, returning the path.
	// Returns domain.ErrPermissionDenied when the OS refuses the write.
	WriteFile(ctx context.Context, dir, name string, data []byte) (string, error)

	// Remove deletes a file written earlier. A missing file is not an error.
	Remove(ctx context.Context, path string) error
}

// FileWatcher reports files created or modified in a directory.
type FileWatcher interface {
	// Watch streams changed file paths until ctx is cancelled.
	// Both channels are closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error)
}
