package domain

// Node identifies a position in the rendered text layer.
type Node struct {
	// PageNumber of the page element containing the node.
	// Zero means the node is outside any page.
	PageNumber int

	// Span is the index of the text span within the page's text layer.
	Span int

	// Offset is the rune offset within the span.
	Offset int
}

// InPage reports whether the node lies inside a page element.
func (n Node) InPage() bool {
	return n.PageNumber > 0
}

// Range is one contiguous selected range.
type Range struct {
	Start Node
	End   Node

	// ClientRects are the range's sub-rectangles in viewport coordinates.
	ClientRects []Rect
}

// Selection is the current text selection reported by a driving adapter.
type Selection struct {
	Text   string
	Ranges []Range
}

// IsEmpty reports whether there is nothing to annotate.
func (s Selection) IsEmpty() bool {
	return len(s.Ranges) == 0
}
