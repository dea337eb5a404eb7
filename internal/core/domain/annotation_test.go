package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_IsDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rect
		expected bool
	}{
		{name: "positive area", rect: Rect{X: 1, Y: 1, Width: 10, Height: 5}, expected: false},
		{name: "zero width", rect: Rect{Width: 0, Height: 5}, expected: true},
		{name: "zero height", rect: Rect{Width: 5, Height: 0}, expected: true},
		{name: "negative width", rect: Rect{Width: -1, Height: 5}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rect.IsDegenerate())
		})
	}
}

func TestRect_ScaleAndContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}

	assert.Equal(t, Rect{X: 20, Y: 40, Width: 60, Height: 80}, r.Scale(2))
	assert.True(t, r.Contains(10, 20))
	assert.False(t, r.Contains(40, 20))
	assert.InDelta(t, 60.0, r.Bottom(), 1e-9)
	assert.InDelta(t, 40.0, r.Right(), 1e-9)
}

func TestAnnotation_Clone(t *testing.T) {
	a := Annotation{
		ID:         1,
		Text:       "hello",
		PageNumber: 1,
		Rects:      []Rect{{X: 1, Y: 2, Width: 3, Height: 4}},
		Replies:    []string{"first"},
	}

	c := a.Clone()
	c.Rects[0].X = 99
	c.Replies[0] = "changed"

	assert.InDelta(t, 1.0, a.Rects[0].X, 1e-9)
	assert.Equal(t, "first", a.Replies[0])
}

func TestAnnotation_CloneNilReplies(t *testing.T) {
	c := Annotation{ID: 1}.Clone()
	assert.NotNil(t, c.Replies)
	assert.Empty(t, c.Replies)
}

func TestAnnotation_FirstRect(t *testing.T) {
	assert.Equal(t, Rect{}, Annotation{}.FirstRect())
	a := Annotation{Rects: []Rect{{X: 5, Y: 6, Width: 1, Height: 1}, {X: 7}}}
	assert.InDelta(t, 5.0, a.FirstRect().X, 1e-9)
}

func TestAnnotation_Valid(t *testing.T) {
	good := Annotation{ID: 1, Text: "t", PageNumber: 1, Rects: []Rect{{Width: 1, Height: 1}}}
	assert.True(t, good.Valid())

	tests := []struct {
		name   string
		mutate func(a *Annotation)
	}{
		{name: "zero id", mutate: func(a *Annotation) { a.ID = 0 }},
		{name: "empty text", mutate: func(a *Annotation) { a.Text = "" }},
		{name: "page zero", mutate: func(a *Annotation) { a.PageNumber = 0 }},
		{name: "no rects", mutate: func(a *Annotation) { a.Rects = nil }},
		{name: "degenerate rect", mutate: func(a *Annotation) { a.Rects = []Rect{{Width: 0, Height: 1}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := good.Clone()
			tt.mutate(&a)
			assert.False(t, a.Valid())
		})
	}
}

func TestDocument_HasPage(t *testing.T) {
	var nilDoc *Document
	assert.False(t, nilDoc.HasPage(1))

	doc := &Document{PageCount: 3}
	assert.True(t, doc.HasPage(1))
	assert.True(t, doc.HasPage(3))
	assert.False(t, doc.HasPage(0))
	assert.False(t, doc.HasPage(4))
}

func TestSelection_IsEmpty(t *testing.T) {
	assert.True(t, Selection{}.IsEmpty())
	assert.False(t, Selection{Ranges: []Range{{}}}.IsEmpty())
	assert.False(t, Node{}.InPage())
	assert.True(t, Node{PageNumber: 2}.InPage())
}
