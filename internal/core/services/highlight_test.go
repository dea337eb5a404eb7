package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func manyRects(n int) []domain.Rect {
	rects := make([]domain.Rect, n)
	for i := range rects {
		rects[i] = domain.Rect{X: float64(i), Y: 10, Width: 5, Height: 5}
	}
	return rects
}

func TestHighlightRenderer_BoxPerRectManyRects(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(2, 900, 1000, 1))
	annotations := []domain.Annotation{
		{ID: 1, PageNumber: 1, Rects: manyRects(3)},
		{ID: 2, PageNumber: 2, Rects: manyRects(1)},
		{ID: 3, PageNumber: 9, Rects: manyRects(1)},
	}

	HighlightRenderer{}.Render(annotations, c)
	HighlightRenderer{}.Render(annotations, c)

	p1, _ := c.Page(1)
	p2, _ := c.Page(2)
	assert.Len(t, p1.Highlights, 3)
	require.Len(t, p2.Highlights, 1)
	assert.Equal(t, int64(2), p2.Highlights[0].AnnotationID)
}

func TestHighlightRenderer_ProjectsFractionalCaptureScale(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(1, 900, 1000, 1.5))

	HighlightRenderer{}.Render([]domain.Annotation{
		{ID: 1, PageNumber: 1, Scale: 1, Rects: []domain.Rect{{X: 10, Y: 20, Width: 30, Height: 40}}},
	}, c)

	page, _ := c.Page(1)
	require.Len(t, page.Highlights, 1)
	assert.Equal(t, domain.Rect{X: 15, Y: 30, Width: 45, Height: 60}, page.Highlights[0].Rect)
}

func TestHighlightRenderer_ConcurrentRendersDoNotAccumulate(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(1, 900, 1000, 1))
	annotations := []domain.Annotation{{ID: 1, PageNumber: 1, Rects: manyRects(50)}}

	for i := 0; i < 500; i++ {
		var wg sync.WaitGroup
		for g := 0; g < 2; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				HighlightRenderer{}.Render(annotations, c)
			}()
		}
		wg.Wait()

		page, _ := c.Page(1)
		require.Len(t, page.Highlights, 50, "iteration %d", i)
	}
}

func TestPageContainer_SetHighlights(t *testing.T) {
	c := NewPageContainer(0, 900, 500)
	c.Replace(renderedPages(2, 900, 1000, 1))
	require.True(t, c.AddHighlight(2, domain.HighlightBox{AnnotationID: 7}))

	c.SetHighlights(map[int][]domain.HighlightBox{
		1: {{AnnotationID: 1}, {AnnotationID: 1}},
		5: {{AnnotationID: 5}},
	})

	p1, _ := c.Page(1)
	p2, _ := c.Page(2)
	assert.Len(t, p1.Highlights, 2)
	assert.Empty(t, p2.Highlights)

	c.ClearHighlights()
	p1, _ = c.Page(1)
	assert.Empty(t, p1.Highlights)
}
