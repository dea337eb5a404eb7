package pdf

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// pointsPerInch converts render scale to rasteriser DPI.
const pointsPerInch = 72.0

// Ensure Renderer implements the interface.
var _ driven.PDFRenderer = (*Renderer)(nil)

// Renderer opens PDFs held in memory.
type Renderer struct{}

// NewRenderer creates a renderer. pdfcpu's on-disk configuration is disabled.
func NewRenderer() *Renderer {
	api.DisableConfigDir()
	return &Renderer{}
}

// Open validates data and prepares it for rendering.
func (r *Renderer) Open(ctx context.Context, data []byte) (driven.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dims, err := pageDims(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDecodeFailed, err)
	}

	raster, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: rasteriser: %w", domain.ErrDecodeFailed, err)
	}

	doc := &document{dims: dims, raster: raster}
	doc.text, err = newTextLayer(data)
	if err != nil {
		logger.Warn("text layer unavailable: %v", err)
	}

	logger.Debug("opened PDF: %d pages", len(dims))
	return doc, nil
}

// pageDims validates the document and returns each page's size in points.
func pageDims(data []byte) ([]types.Dim, error) {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed

	pctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	if err := api.ValidateContext(pctx); err != nil {
		return nil, fmt.Errorf("validating PDF: %w", err)
	}
	dims, err := pctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("reading page sizes: %w", err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	return dims, nil
}

// document is an opened PDF. MuPDF contexts are not safe for concurrent
// use, so rasterisation is serialised.
type document struct {
	dims []types.Dim
	text *textLayer

	mu     sync.Mutex
	raster *fitz.Document
	closed bool
}

func (d *document) PageCount() int {
	return len(d.dims)
}

func (d *document) PageSize(n int) (domain.PageSize, error) {
	if n < 1 || n > len(d.dims) {
		return domain.PageSize{}, fmt.Errorf("page %d: %w", n, domain.ErrPageOutOfRange)
	}
	dim := d.dims[n-1]
	return domain.PageSize{Width: dim.Width, Height: dim.Height}, nil
}

func (d *document) RenderPage(ctx context.Context, n int, scale float64) (*domain.RenderedPage, error) {
	size, err := d.PageSize(n)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, fmt.Errorf("page %d: document closed", n)
	}
	img, err := d.raster.ImageDPI(n-1, pointsPerInch*scale)
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("rasterising page %d: %w", n, err)
	}

	page := &domain.RenderedPage{
		Number:  n,
		Width:   float64(img.Bounds().Dx()),
		Height:  float64(img.Bounds().Dy()),
		Scale:   scale,
		Surface: img,
	}
	if page.Width == 0 {
		page.Width, page.Height = size.Width*scale, size.Height*scale
	}

	if d.text != nil {
		spans, err := d.text.Spans(n, scale)
		if err != nil {
			logger.Warn("page %d text layer: %v", n, err)
		}
		page.TextLayer = spans
	}
	return page, nil
}

func (d *document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.raster.Close()
}
