package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func renderedPages(n int, w, h, scale float64) []*domain.RenderedPage {
	pages := make([]*domain.RenderedPage, n)
	for i := range pages {
		pages[i] = &domain.RenderedPage{Number: i + 1, Width: w, Height: h, Scale: scale}
	}
	return pages
}

func TestPageContainer_Layout(t *testing.T) {
	c := NewPageContainer(16, 1000, 500)
	c.Replace(renderedPages(3, 900, 1200, 1.5))

	pages := c.Pages()
	require.Len(t, pages, 3)
	assert.InDelta(t, 0.0, pages[0].Top, 1e-9)
	assert.InDelta(t, 1216.0, pages[1].Top, 1e-9)
	assert.InDelta(t, 2432.0, pages[2].Top, 1e-9)
	assert.InDelta(t, 50.0, pages[0].Left, 1e-9)
	assert.InDelta(t, 3632.0, c.ContentHeight(), 1e-9)
}

func TestPageContainer_ScrollAndBounds(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(2, 900, 1000, 1))

	c.ScrollTo(-10)
	assert.InDelta(t, 0.0, c.ScrollTop(), 1e-9)
	c.ScrollTo(10_000)
	assert.InDelta(t, 1500.0, c.ScrollTop(), 1e-9)

	c.ScrollTo(1200)
	b, ok := c.PageBounds(2)
	require.True(t, ok)
	assert.InDelta(t, -200.0, b.Y, 1e-9)

	_, ok = c.PageBounds(3)
	assert.False(t, ok)
}

func TestPageContainer_ShowError(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(1, 900, 1000, 1))
	c.SetLoading(true)

	c.ShowError("Failed to load PDF")

	assert.Empty(t, c.Pages())
	assert.Equal(t, "Failed to load PDF", c.Error())
	assert.False(t, c.Loading())

	c.Replace(renderedPages(1, 900, 1000, 1))
	assert.Empty(t, c.Error())
}

func TestHighlightRenderer_BoxPerRect(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(2, 900, 1000, 1.5))

	annotations := []domain.Annotation{
		{ID: 1, Text: "a", PageNumber: 1, Rects: []domain.Rect{{X: 1, Y: 2, Width: 3, Height: 4}, {X: 5, Y: 6, Width: 7, Height: 8}}},
		{ID: 2, Text: "b", PageNumber: 2, Rects: []domain.Rect{{X: 10, Y: 10, Width: 10, Height: 10}}},
		{ID: 3, Text: "c", PageNumber: 9, Rects: []domain.Rect{{X: 10, Y: 10, Width: 10, Height: 10}}},
	}

	var r HighlightRenderer
	r.Render(annotations, c)
	r.Render(annotations, c)

	p1, _ := c.Page(1)
	p2, _ := c.Page(2)
	assert.Equal(t, []domain.HighlightBox{
		{AnnotationID: 1, Rect: domain.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		{AnnotationID: 1, Rect: domain.Rect{X: 5, Y: 6, Width: 7, Height: 8}},
	}, p1.Highlights)
	assert.Equal(t, []domain.HighlightBox{
		{AnnotationID: 2, Rect: domain.Rect{X: 10, Y: 10, Width: 10, Height: 10}},
	}, p2.Highlights)
}

func TestHighlightRenderer_ProjectsCaptureScale(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(1, 900, 1000, 2))

	HighlightRenderer{}.Render([]domain.Annotation{
		{ID: 1, Text: "a", PageNumber: 1, Scale: 1, Rects: []domain.Rect{{X: 1, Y: 2, Width: 3, Height: 4}}},
	}, c)

	p, _ := c.Page(1)
	require.Len(t, p.Highlights, 1)
	assert.Equal(t, domain.Rect{X: 2, Y: 4, Width: 6, Height: 8}, p.Highlights[0].Rect)
}
