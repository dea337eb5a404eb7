package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestTransformer_Identity(t *testing.T) {
	src := solid(10, 10, color.NRGBA{R: 255, A: 255})
	identity := driven.Affine{1, 0, 0, 0, 1, 0}

	out, err := NewFastTransformer().Transform(src, identity, image.Rect(0, 0, 10, 10))

	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), out.Bounds())
	r, _, _, a := out.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestTransformer_TranslateLeavesTransparentMargin(t *testing.T) {
	src := solid(4, 4, color.NRGBA{G: 255, A: 255})
	shift := driven.Affine{1, 0, 4, 0, 1, 0}

	out, err := NewTransformer().Transform(src, shift, image.Rect(0, 0, 8, 4))

	require.NoError(t, err)
	_, _, _, a := out.At(1, 2).RGBA()
	assert.Equal(t, uint32(0), a)
	_, g, _, _ := out.At(6, 2).RGBA()
	assert.Positive(t, g)
}

func TestTransformer_EmptyBounds(t *testing.T) {
	_, err := NewTransformer().Transform(solid(1, 1, color.Black), driven.Affine{1, 0, 0, 0, 1, 0}, image.Rectangle{})
	assert.Error(t, err)
}
