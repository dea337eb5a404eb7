package services

import (
	"math"
	"sync"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// PageContainer holds rendered pages stacked vertically in a scrollable
// viewport, each with a highlight layer. Replacing pages is atomic.
type PageContainer struct {
	mu        sync.RWMutex
	pages     []*domain.PageView
	gap       float64
	width     float64
	height    float64
	scrollTop float64
	loading   bool
	errMsg    string
}

// NewPageContainer creates an empty container with gap pixels between pages.
func NewPageContainer(gap, width, height float64) *PageContainer {
	return &PageContainer{gap: gap, width: width, height: height}
}

// Replace swaps in a full set of rendered pages, clearing any error.
func (c *PageContainer) Replace(pages []*domain.RenderedPage) {
	views := make([]*domain.PageView, len(pages))
	for i, p := range pages {
		views[i] = &domain.PageView{Page: p}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = views
	c.errMsg = ""
	c.loading = false
	c.layout()
}

// Clear removes all pages.
func (c *PageContainer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = nil
	c.errMsg = ""
	c.scrollTop = 0
}

// ShowError replaces the pages with an inline error message.
func (c *PageContainer) ShowError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = nil
	c.errMsg = msg
	c.loading = false
	c.scrollTop = 0
}

// Error returns the inline error message, if any.
func (c *PageContainer) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// SetLoading toggles the loading indicator.
func (c *PageContainer) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

// Loading reports whether a render pass is in flight.
func (c *PageContainer) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// SetViewport updates the viewport size and re-centres pages.
func (c *PageContainer) SetViewport(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	c.layout()
}

// ViewportSize returns the viewport width and height.
func (c *PageContainer) ViewportSize() (float64, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// Pages returns copies of the page views in order.
func (c *PageContainer) Pages() []domain.PageView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.PageView, len(c.pages))
	for i, v := range c.pages {
		out[i] = *v
		out[i].Highlights = append([]domain.HighlightBox(nil), v.Highlights...)
	}
	return out
}

// Page returns a copy of page n.
func (c *PageContainer) Page(n int) (domain.PageView, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := c.find(n)
	if v == nil {
		return domain.PageView{}, false
	}
	out := *v
	out.Highlights = append([]domain.HighlightBox(nil), v.Highlights...)
	return out, true
}

// PageBounds returns page n's box in viewport coordinates.
func (c *PageContainer) PageBounds(n int) (domain.Rect, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := c.find(n)
	if v == nil {
		return domain.Rect{}, false
	}
	b := v.Bounds()
	b.Y -= c.scrollTop
	return b, true
}

// ClearHighlights empties every page's highlight layer.
func (c *PageContainer) ClearHighlights() {
	c.SetHighlights(nil)
}

// SetHighlights replaces every page's highlight layer in one step. Pages
// missing from layers get an empty layer; entries for pages that are not
// rendered are ignored.
func (c *PageContainer) SetHighlights(layers map[int][]domain.HighlightBox) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range c.pages {
		v.Highlights = append([]domain.HighlightBox(nil), layers[v.Page.Number]...)
	}
}

// AddHighlight appends a box to page n's highlight layer.
// Returns false when page n is not rendered.
func (c *PageContainer) AddHighlight(n int, box domain.HighlightBox) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.find(n)
	if v == nil {
		return false
	}
	v.Highlights = append(v.Highlights, box)
	return true
}

// ContentHeight is the total height of the stacked pages.
func (c *PageContainer) ContentHeight() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contentHeight()
}

// ScrollTop returns the current scroll offset.
func (c *PageContainer) ScrollTop() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scrollTop
}

// ScrollTo sets the scroll offset, clamped to [0, content - viewport].
func (c *PageContainer) ScrollTo(top float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scrollTop = c.clampScroll(top)
}

func (c *PageContainer) clampScroll(top float64) float64 {
	maxTop := math.Max(0, c.contentHeight()-c.height)
	return math.Min(math.Max(0, top), maxTop)
}

// layout stacks pages and centres them horizontally (caller must hold lock).
func (c *PageContainer) layout() {
	top := 0.0
	for i, v := range c.pages {
		if i > 0 {
			top += c.gap
		}
		v.Top = top
		v.Left = math.Max(0, (c.width-v.Page.Width)/2)
		top += v.Page.Height
	}
	c.scrollTop = c.clampScroll(c.scrollTop)
}

func (c *PageContainer) contentHeight() float64 {
	if len(c.pages) == 0 {
		return 0
	}
	last := c.pages[len(c.pages)-1]
	return last.Top + last.Page.Height
}

func (c *PageContainer) find(n int) *domain.PageView {
	for _, v := range c.pages {
		if v.Page.Number == n {
			return v
		}
	}
	return nil
}
