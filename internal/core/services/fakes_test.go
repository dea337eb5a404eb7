package services

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

var testPDF = []byte("%PDF-1.7\n%fake\n")

// fakeRenderer opens every input as a document of fixed-size pages.
type fakeRenderer struct {
	pages   int
	size    domain.PageSize
	openErr error

	// failPage, when set, makes that page fail to render.
	failPage int

	// onRender runs before each page renders.
	onRender func(n int)

	opened  atomic.Int32
	renders atomic.Int32
}

func newFakeRenderer(pages int) *fakeRenderer {
	return &fakeRenderer{pages: pages, size: domain.PageSize{Width: 612, Height: 792}}
}

func (r *fakeRenderer) Open(_ context.Context, _ []byte) (driven.RenderedDocument, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	r.opened.Add(1)
	return &fakeDocument{r: r}, nil
}

type fakeDocument struct {
	r      *fakeRenderer
	closed atomic.Bool
}

func (d *fakeDocument) PageCount() int { return d.r.pages }

func (d *fakeDocument) PageSize(n int) (domain.PageSize, error) {
	if n < 1 || n > d.r.pages {
		return domain.PageSize{}, domain.ErrPageOutOfRange
	}
	return d.r.size, nil
}

func (d *fakeDocument) RenderPage(ctx context.Context, n int, scale float64) (*domain.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.r.onRender != nil {
		d.r.onRender(n)
	}
	if n == d.r.failPage {
		return nil, errors.New("broken content stream")
	}
	d.r.renders.Add(1)
	w, h := d.r.size.Width*scale, d.r.size.Height*scale
	return &domain.RenderedPage{
		Number:  n,
		Width:   w,
		Height:  h,
		Scale:   scale,
		Surface: image.NewRGBA(image.Rect(0, 0, int(w), int(h))),
		TextLayer: []domain.TextSpan{
			{Text: "Hello world", Rect: domain.Rect{X: 10 * scale, Y: 20 * scale, Width: 80 * scale, Height: 12 * scale}},
		},
	}, nil
}

func (d *fakeDocument) Close() error {
	d.closed.Store(true)
	return nil
}

// fakeClipboard records the last text written.
type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// fakeConfirmer answers every prompt with answer.
type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (c *fakeConfirmer) Confirm(prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	return c.answer, nil
}

// fakeTransformer returns a blank canvas of the requested bounds.
type fakeTransformer struct {
	mu    sync.Mutex
	calls []driven.Affine
	err   error
}

func (t *fakeTransformer) Transform(_ image.Image, m driven.Affine, bounds image.Rectangle) (image.Image, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	t.calls = append(t.calls, m)
	if bounds.Empty() {
		return nil, errors.New("empty bounds")
	}
	return image.NewNRGBA(bounds), nil
}

// staticLocator places pages at fixed viewport rects.
type staticLocator map[int]domain.Rect

func (l staticLocator) PageBounds(n int) (domain.Rect, bool) {
	r, ok := l[n]
	return r, ok
}
