package domain

// Rect is an axis-aligned rectangle in pixels with a top-left origin.
// Page-local rects are relative to the page element at its render scale.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsDegenerate reports whether the rect has no visible area.
func (r Rect) IsDegenerate() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bottom returns the y coordinate of the rect's lower edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Right returns the x coordinate of the rect's right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Scale returns the rect with every coordinate multiplied by f.
func (r Rect) Scale(f float64) Rect {
	return Rect{X: r.X * f, Y: r.Y * f, Width: r.Width * f, Height: r.Height * f}
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether r and o overlap with a non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}
