package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func selectionOn(page int, rects ...domain.Rect) domain.Selection {
	return domain.Selection{
		Text: "Hello world",
		Ranges: []domain.Range{{
			Start:       domain.Node{PageNumber: page},
			End:         domain.Node{PageNumber: page},
			ClientRects: rects,
		}},
	}
}

func TestGeometryMapper_TranslatesToPageLocal(t *testing.T) {
	pages := staticLocator{
		1: {X: 50, Y: -100, Width: 918, Height: 1188},
		2: {X: 50, Y: 1104, Width: 918, Height: 1188},
	}
	sel := selectionOn(2,
		domain.Rect{X: 150, Y: 1204, Width: 200, Height: 18},
		domain.Rect{X: 60, Y: 1224, Width: 0, Height: 18},
		domain.Rect{X: 60, Y: 1224, Width: 120, Height: 18},
	)

	meta, ok := GeometryMapper{}.Map(sel, pages)
	require.True(t, ok)
	assert.Equal(t, 2, meta.PageNumber)
	assert.Equal(t, []domain.Rect{
		{X: 100, Y: 100, Width: 200, Height: 18},
		{X: 10, Y: 120, Width: 120, Height: 18},
	}, meta.Rects)
}

func TestGeometryMapper_Invalid(t *testing.T) {
	pages := staticLocator{1: {Width: 100, Height: 100}}
	r := domain.Rect{X: 1, Y: 1, Width: 5, Height: 5}

	tests := []struct {
		name string
		sel  domain.Selection
	}{
		{name: "no ranges", sel: domain.Selection{Text: "x"}},
		{name: "outside any page", sel: selectionOn(0, r)},
		{name: "page not rendered", sel: selectionOn(7, r)},
		{name: "only degenerate rects", sel: selectionOn(1, domain.Rect{X: 1, Y: 1, Width: 5})},
		{name: "no rects", sel: selectionOn(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, ok := GeometryMapper{}.Map(tt.sel, pages)
			assert.False(t, ok)
			assert.Nil(t, meta)
		})
	}
}

func TestGeometryMapper_MultiPageUsesStartPage(t *testing.T) {
	pages := staticLocator{
		1: {X: 0, Y: 0, Width: 100, Height: 100},
		2: {X: 0, Y: 110, Width: 100, Height: 100},
	}
	sel := domain.Selection{
		Text: "spans pages",
		Ranges: []domain.Range{{
			Start:       domain.Node{PageNumber: 1},
			End:         domain.Node{PageNumber: 2},
			ClientRects: []domain.Rect{{X: 10, Y: 90, Width: 50, Height: 8}, {X: 10, Y: 112, Width: 50, Height: 8}},
		}},
	}

	meta, ok := GeometryMapper{}.Map(sel, pages)
	require.True(t, ok)
	assert.Equal(t, 1, meta.PageNumber)
	assert.Len(t, meta.Rects, 2)
}
