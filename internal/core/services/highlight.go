package services

import "github.com/custodia-labs/folio/internal/core/domain"

// HighlightRenderer projects stored annotations onto the page container's
// highlight layers.
type HighlightRenderer struct{}

// Render clears every highlight layer and draws one box per rect for each
// annotation whose page is rendered. Rects captured at a different scale
// are projected to the page's current scale. Calling Render repeatedly with
// the same input yields the same layers.
func (HighlightRenderer) Render(annotations []domain.Annotation, c *PageContainer) {
	layers := make(map[int][]domain.HighlightBox)
	for _, a := range annotations {
		page, ok := c.Page(a.PageNumber)
		if !ok {
			continue
		}
		f := projection(a.Scale, page.Page.Scale)
		for _, r := range a.Rects {
			layers[a.PageNumber] = append(layers[a.PageNumber], domain.HighlightBox{AnnotationID: a.ID, Rect: r.Scale(f)})
		}
	}
	c.SetHighlights(layers)
}

// projection returns the factor mapping rects captured at capture scale to current.
func projection(capture, current float64) float64 {
	if capture <= 0 || current <= 0 {
		return 1
	}
	return current / capture
}
