package domain

import (
	"image"
	"strings"
)

// TextSpan is a positioned run of text in a page's text layer.
// Rect is page-local at the render scale.
type TextSpan struct {
	Text string
	Rect Rect
}

// PageSize is a page's natural size in PDF points.
type PageSize struct {
	Width  float64
	Height float64
}

// RenderedPage is one page rasterised at a scale.
type RenderedPage struct {
	Number    int
	Width     float64
	Height    float64
	Scale     float64
	Surface   image.Image
	TextLayer []TextSpan
}

// HighlightBox is one overlay rectangle in a page's highlight layer.
type HighlightBox struct {
	AnnotationID int64
	Rect         Rect
}

// PageView is a rendered page placed in the page container.
type PageView struct {
	Page *RenderedPage

	// Top is the page's offset from the top of the container.
	Top float64

	// Left is the page's offset from the container's left edge.
	Left float64

	// Highlights is the page's highlight layer.
	Highlights []HighlightBox
}

// Bounds returns the page rect in container coordinates.
func (v *PageView) Bounds() Rect {
	return Rect{X: v.Left, Y: v.Top, Width: v.Page.Width, Height: v.Page.Height}
}

// FindText locates query in the page's text layer, ignoring case and
// whitespace differences. It returns the matched text and the inclusive
// range of spans that cover it.
func (v *PageView) FindText(query string) (text string, from, to int, ok bool) {
	q := strings.Join(strings.Fields(query), " ")
	if q == "" || v.Page == nil {
		return "", 0, 0, false
	}

	var b strings.Builder
	starts := make([]int, len(v.Page.TextLayer))
	ends := make([]int, len(v.Page.TextLayer))
	for i, span := range v.Page.TextLayer {
		if i > 0 && b.Len() > 0 {
			b.WriteByte(' ')
		}
		starts[i] = b.Len()
		b.WriteString(strings.Join(strings.Fields(span.Text), " "))
		ends[i] = b.Len()
	}
	joined := b.String()

	haystack, needle := strings.ToLower(joined), strings.ToLower(q)
	if len(haystack) != len(joined) || len(needle) != len(q) {
		haystack, needle = joined, q
	}
	idx := strings.Index(haystack, needle)
	if idx < 0 {
		return "", 0, 0, false
	}
	end := idx + len(needle)

	from, to = -1, -1
	for i := range v.Page.TextLayer {
		if ends[i] <= starts[i] || ends[i] <= idx || starts[i] >= end {
			continue
		}
		if from < 0 {
			from = i
		}
		to = i
	}
	if from < 0 {
		return "", 0, 0, false
	}
	return joined[idx:end], from, to, true
}

// SpanSelection builds a selection over spans [from, to] with client rects
// in viewport coordinates for the given scroll offset.
func (v *PageView) SpanSelection(scrollTop float64, from, to int) Selection {
	if v.Page == nil {
		return Selection{}
	}
	spans := v.Page.TextLayer
	if from < 0 {
		from = 0
	}
	if to >= len(spans) {
		to = len(spans) - 1
	}
	if from > to {
		return Selection{}
	}

	words := make([]string, 0, to-from+1)
	rects := make([]Rect, 0, to-from+1)
	for i := from; i <= to; i++ {
		words = append(words, spans[i].Text)
		r := spans[i].Rect
		r.X += v.Left
		r.Y += v.Top - scrollTop
		rects = append(rects, r)
	}

	n := v.Page.Number
	return Selection{
		Text: strings.Join(words, " "),
		Ranges: []Range{{
			Start:       Node{PageNumber: n, Span: from},
			End:         Node{PageNumber: n, Span: to, Offset: len([]rune(spans[to].Text))},
			ClientRects: rects,
		}},
	}
}
