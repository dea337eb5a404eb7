package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func testEntries() []domain.Annotation {
	return []domain.Annotation{
		{ID: 3, Text: "alpha", PageNumber: 1, Replies: []string{"one", "two"}},
		{ID: 5, Text: "beta", PageNumber: 2},
	}
}

func TestNewAnnotationList(t *testing.T) {
	l := NewAnnotationList(nil)

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedAnnotation())
	assert.Equal(t, -1, l.SelectedReply())
	assert.Nil(t, l.Init())
}

func TestAnnotationList_Placeholder(t *testing.T) {
	l := NewAnnotationList(nil)
	l.SetEntries(nil, "Nothing here")

	assert.Contains(t, l.View(), "Nothing here")
}

func TestAnnotationList_Rows(t *testing.T) {
	l := NewAnnotationList(nil)
	l.SetEntries(testEntries(), "")

	assert.Equal(t, 2, l.Count())
	assert.Len(t, l.rows, 4)

	out := l.View()
	assert.Contains(t, out, "[3] p.1 alpha")
	assert.Contains(t, out, "1. one")
	assert.Contains(t, out, "2. two")
	assert.Contains(t, out, "[5] p.2 beta")
}

func TestAnnotationList_Navigation(t *testing.T) {
	l := NewAnnotationList(nil)
	l.SetEntries(testEntries(), "")

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, int64(3), l.SelectedAnnotation().ID)
	assert.Equal(t, 0, l.SelectedReply())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l.MoveDown()
	assert.Equal(t, int64(5), l.SelectedAnnotation().ID)
	assert.Equal(t, -1, l.SelectedReply())

	l.MoveDown()
	assert.Equal(t, 3, l.Selected(), "stops at the last row")

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 2, l.Selected())
}

func TestAnnotationList_SetEntriesKeepsAnnotation(t *testing.T) {
	l := NewAnnotationList(nil)
	l.SetEntries(testEntries(), "")
	l.selected = 3

	entries := testEntries()
	entries[0].Replies = nil
	l.SetEntries(entries, "")

	assert.Equal(t, int64(5), l.SelectedAnnotation().ID)
	assert.Equal(t, 1, l.Selected())
}

func TestAnnotationList_SetEntriesResetsWhenGone(t *testing.T) {
	l := NewAnnotationList(nil)
	l.SetEntries(testEntries(), "")
	l.selected = 3

	l.SetEntries(testEntries()[:1], "")

	assert.Equal(t, 0, l.Selected())
}

func TestAnnotationList_ScrollsToCursor(t *testing.T) {
	l := NewAnnotationList(nil)
	l.SetDimensions(80, 4)
	l.SetEntries(testEntries(), "")
	l.selected = 3

	out := l.View()
	assert.Contains(t, out, "beta")
	assert.NotContains(t, out, "alpha")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 3), "minimum width")
}
