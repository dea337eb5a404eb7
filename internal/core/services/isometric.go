package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"math"
	"strconv"
	"time"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure IsometricService implements the interface.
var _ driving.IsometricService = (*IsometricService)(nil)

const (
	isoShear   = 0.5                // sin 30°
	isoCos     = 0.8660254037844386 // cos 30°
	isoFlatten = 0.5773502691896258 // tan 30°
	isoRotate  = math.Sqrt2 / 2     // cos 45° = sin 45°
)

// IsometricService produces isometric projections of an image.
type IsometricService struct {
	transformer driven.ImageTransformer
	sink        driven.FileSink
	scales      []float64
	clock       func() time.Time
}

// NewIsometricService creates the service. Empty scales use the defaults.
func NewIsometricService(transformer driven.ImageTransformer, sink driven.FileSink, scales []float64) *IsometricService {
	if len(scales) == 0 {
		scales = domain.DefaultAppSettings().Iso.Scales
	}
	return &IsometricService{
		transformer: transformer,
		sink:        sink,
		scales:      scales,
		clock:       time.Now,
	}
}

// SetClock replaces the clock used for pasted file names.
func (s *IsometricService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Generate writes every direction at every scale into dir as PNG files.
// Variants are returned in direction then scale order. If any variant
// fails the variants already written are removed.
func (s *IsometricService) Generate(ctx context.Context, data []byte, dir string) ([]domain.IsoVariant, error) {
	src, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	size := src.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return nil, fmt.Errorf("empty image: %w", domain.ErrNotImage)
	}

	dirs := domain.IsoDirections()
	variants := make([]domain.IsoVariant, len(dirs)*len(s.scales))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range dirs {
		for j, scale := range s.scales {
			idx := i*len(s.scales) + j
			g.Go(func() error {
				m, bounds := IsoMatrix(d, size.X, size.Y, scale)
				out, err := s.transformer.Transform(src, m, bounds)
				if err != nil {
					return fmt.Errorf("transforming %s at %gx: %w", d, scale, err)
				}
				var buf bytes.Buffer
				if err := png.Encode(&buf, out); err != nil {
					return fmt.Errorf("encoding %s at %gx: %w", d, scale, err)
				}
				path, err := s.sink.WriteFile(gctx, dir, IsoFileName(d, scale), buf.Bytes())
				if err != nil {
					return err
				}
				variants[idx] = domain.IsoVariant{Direction: d, Scale: scale, Path: path}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		s.removeWritten(variants)
		return nil, err
	}

	logger.Info("wrote %d isometric variants to %s", len(variants), dir)
	return variants, nil
}

// removeWritten deletes the files of variants that were written before a
// failure.
func (s *IsometricService) removeWritten(variants []domain.IsoVariant) {
	ctx := context.Background()
	for _, v := range variants {
		if v.Path == "" {
			continue
		}
		if err := s.sink.Remove(ctx, v.Path); err != nil {
			logger.Warn("removing partial variant %s: %v", v.Path, err)
		}
	}
}

// SavePasted stores a pasted image as a timestamped PNG.
func (s *IsometricService) SavePasted(ctx context.Context, data []byte, dir string) (string, error) {
	src, err := decodeImage(data)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return "", fmt.Errorf("encoding pasted image: %w", err)
	}
	return s.sink.WriteFile(ctx, dir, PastedFileName(s.clock()), buf.Bytes())
}

// IsoFileName names the file for one variant.
func IsoFileName(d domain.IsoDirection, scale float64) string {
	return fmt.Sprintf("iso-%s-%sx.png", d, strconv.FormatFloat(scale, 'f', -1, 64))
}

// PastedFileName names a pasted image saved at t.
func PastedFileName(t time.Time) string {
	return "pasted-" + t.Format("20060102-150405") + ".png"
}

// IsoMatrix returns the affine map from a w×h source onto the projected
// canvas and the canvas bounds. The projection is translated so its
// bounding box starts at the origin.
func IsoMatrix(d domain.IsoDirection, w, h int, scale float64) (driven.Affine, image.Rectangle) {
	a, b, c, e := isoLinear(d)
	a, b, c, e = a*scale, b*scale, c*scale, e*scale

	fw, fh := float64(w), float64(h)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{0, 0}, {fw, 0}, {0, fh}, {fw, fh}} {
		x := a*p[0] + b*p[1]
		y := c*p[0] + e*p[1]
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	m := driven.Affine{a, b, -minX, c, e, -minY}
	bounds := image.Rect(0, 0, int(math.Ceil(maxX-minX)), int(math.Ceil(maxY-minY)))
	return m, bounds
}

// isoLinear returns the 2x2 linear part [a b; c e] for a direction.
func isoLinear(d domain.IsoDirection) (a, b, c, e float64) {
	switch d {
	case domain.IsoTop:
		return isoRotate, -isoRotate, isoFlatten * isoRotate, isoFlatten * isoRotate
	case domain.IsoTopFlip:
		return -isoRotate, -isoRotate, -isoFlatten * isoRotate, isoFlatten * isoRotate
	case domain.IsoLeft:
		return isoCos, 0, isoShear, 1
	case domain.IsoRight:
		return isoCos, 0, -isoShear, 1
	case domain.IsoLeftFlip:
		return -isoCos, 0, -isoShear, 1
	case domain.IsoRightFlip:
		return -isoCos, 0, isoShear, 1
	default:
		return 1, 0, 0, 1
	}
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w: %w", domain.ErrNotImage, err)
	}
	return img, nil
}
