package services

import (
	"github.com/golang/geo/r2"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// PageLocator reports where rendered pages sit in the viewport.
type PageLocator interface {
	// PageBounds returns page n's bounding box in viewport coordinates.
	PageBounds(n int) (domain.Rect, bool)
}

// GeometryMapper converts a selection into page-local rectangles.
type GeometryMapper struct{}

// Map attributes sel to the page containing the start of its first range
// and translates every client rect of that range into page-local
// coordinates. Degenerate rects are dropped. Selections that span pages
// are attributed to the start page. The second result is false when the
// selection cannot be attributed to a page or has no visible rects.
func (GeometryMapper) Map(sel domain.Selection, pages PageLocator) (*domain.SelectionMeta, bool) {
	if sel.IsEmpty() {
		return nil, false
	}
	rng := sel.Ranges[0]
	if !rng.Start.InPage() {
		return nil, false
	}
	bounds, ok := pages.PageBounds(rng.Start.PageNumber)
	if !ok {
		return nil, false
	}
	origin := r2.Point{X: bounds.X, Y: bounds.Y}

	rects := make([]domain.Rect, 0, len(rng.ClientRects))
	for _, cr := range rng.ClientRects {
		if cr.IsDegenerate() {
			continue
		}
		local := translate(toR2(cr), origin)
		rects = append(rects, fromR2(local))
	}

	if len(rects) == 0 {
		return nil, false
	}
	return &domain.SelectionMeta{PageNumber: rng.Start.PageNumber, Rects: rects}, true
}

func toR2(r domain.Rect) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: r.X, Y: r.Y}, r2.Point{X: r.Right(), Y: r.Bottom()})
}

func fromR2(r r2.Rect) domain.Rect {
	size := r.Size()
	return domain.Rect{X: r.X.Lo, Y: r.Y.Lo, Width: size.X, Height: size.Y}
}

func translate(r r2.Rect, origin r2.Point) r2.Rect {
	return r2.RectFromPoints(r.Lo().Sub(origin), r.Hi().Sub(origin))
}
