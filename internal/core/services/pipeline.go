package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether a file is a PDF by its extension or its header.
func IsPDF(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return true
	}
	return bytes.HasPrefix(data, pdfMagic)
}

// RenderPipeline decodes a PDF and rasterises all of its pages into the
// page container. Pages render in parallel and are committed together in
// page order; a pass that is overtaken by a newer one is discarded.
type RenderPipeline struct {
	renderer    driven.PDFRenderer
	container   *PageContainer
	maxScale    float64
	concurrency int

	mu     sync.Mutex
	doc    driven.RenderedDocument
	gen    uint64
	passes atomic.Int64
}

// NewRenderPipeline creates a pipeline rendering into container.
func NewRenderPipeline(renderer driven.PDFRenderer, container *PageContainer, settings domain.RenderSettings) *RenderPipeline {
	concurrency := settings.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	maxScale := settings.MaxScale
	if maxScale <= 0 {
		maxScale = domain.DefaultAppSettings().Render.MaxScale
	}
	return &RenderPipeline{
		renderer:    renderer,
		container:   container,
		maxScale:    maxScale,
		concurrency: concurrency,
	}
}

// Open decodes data and makes it the current document, closing the
// previous one. A decode failure shows an inline error in the container.
func (p *RenderPipeline) Open(ctx context.Context, data []byte) (int, error) {
	p.container.SetLoading(true)

	doc, err := p.renderer.Open(ctx, data)
	if err != nil {
		p.container.ShowError(fmt.Sprintf("Failed to load PDF: %v", err))
		if errors.Is(err, domain.ErrDecodeFailed) {
			return 0, fmt.Errorf("opening document: %w", err)
		}
		return 0, fmt.Errorf("opening document: %w: %w", domain.ErrDecodeFailed, err)
	}

	p.mu.Lock()
	prev := p.doc
	p.doc = doc
	p.gen++
	p.mu.Unlock()

	if prev != nil {
		if err := prev.Close(); err != nil {
			logger.Warn("closing previous document: %v", err)
		}
	}
	return doc.PageCount(), nil
}

// Render runs one full render pass at the container's current width.
func (p *RenderPipeline) Render(ctx context.Context) error {
	p.mu.Lock()
	doc := p.doc
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	if doc == nil {
		return domain.ErrNoDocument
	}

	width, _ := p.container.ViewportSize()
	p.container.SetLoading(true)

	n := doc.PageCount()
	pages := make([]*domain.RenderedPage, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := 0; i < n; i++ {
		num := i + 1
		g.Go(func() error {
			size, err := doc.PageSize(num)
			if err != nil {
				return fmt.Errorf("page %d size: %w", num, err)
			}
			page, err := doc.RenderPage(gctx, num, p.ScaleFor(size, width))
			if err != nil {
				return fmt.Errorf("rendering page %d: %w", num, err)
			}
			pages[num-1] = page
			return nil
		})
	}
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		logger.Debug("render pass %d superseded", gen)
		return nil
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.container.SetLoading(false)
			return ctxErr
		}
		p.container.ShowError(fmt.Sprintf("Failed to render PDF: %v", err))
		if errors.Is(err, domain.ErrDecodeFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrDecodeFailed, err)
	}

	p.container.Replace(pages)
	p.passes.Add(1)
	logger.Debug("render pass %d committed %d pages", gen, n)
	return nil
}

// ScaleFor fits a page to width, capped at the maximum scale.
func (p *RenderPipeline) ScaleFor(size domain.PageSize, width float64) float64 {
	if width <= 0 || size.Width <= 0 {
		return p.maxScale
	}
	return math.Min(width/size.Width, p.maxScale)
}

// Passes returns how many render passes have been committed.
func (p *RenderPipeline) Passes() int64 {
	return p.passes.Load()
}

// Close releases the current document.
func (p *RenderPipeline) Close() error {
	p.mu.Lock()
	doc := p.doc
	p.doc = nil
	p.gen++
	p.mu.Unlock()

	if doc == nil {
		return nil
	}
	return doc.Close()
}
