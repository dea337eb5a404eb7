// Package imaging rasterises affine image transforms.
package imaging

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Transformer implements the interface.
var _ driven.ImageTransformer = (*Transformer)(nil)

// Transformer draws images through affine matrices with a chosen kernel.
type Transformer struct {
	interp draw.Transformer
}

// NewTransformer creates a transformer using Catmull-Rom resampling.
func NewTransformer() *Transformer {
	return &Transformer{interp: draw.CatmullRom}
}

// NewFastTransformer creates a transformer using bilinear resampling.
func NewFastTransformer() *Transformer {
	return &Transformer{interp: draw.BiLinear}
}

// Transform draws src through m onto a transparent canvas of bounds.
func (t *Transformer) Transform(src image.Image, m driven.Affine, bounds image.Rectangle) (image.Image, error) {
	if bounds.Empty() {
		return nil, fmt.Errorf("empty output bounds %v", bounds)
	}
	dst := image.NewNRGBA(bounds)
	s2d := f64.Aff3{m[0], m[1], m[2], m[3], m[4], m[5]}
	t.interp.Transform(dst, s2d, src, src.Bounds(), draw.Over, nil)
	return dst, nil
}
