package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/mgmeyers/unipdf/v3/extractor"
	"github.com/mgmeyers/unipdf/v3/model"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// textLayer extracts positioned words from pages.
type textLayer struct {
	mu     sync.Mutex
	reader *model.PdfReader
}

func newTextLayer(data []byte) (*textLayer, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing for text: %w", err)
	}
	return &textLayer{reader: reader}, nil
}

// Spans returns the words on page n in page-local pixels at scale.
func (t *textLayer) Spans(n int, scale float64) ([]domain.TextSpan, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	page, err := t.reader.GetPage(n)
	if err != nil {
		return nil, err
	}
	ext, err := extractor.New(page)
	if err != nil {
		return nil, err
	}
	txt, _, _, err := ext.ExtractPageText()
	if err != nil {
		return nil, err
	}

	var origin pageOrigin
	if mb := page.MediaBox; mb != nil {
		origin = pageOrigin{left: mb.Llx, top: mb.Ury}
	}

	marks := txt.Marks().Elements()
	glyphs := make([]glyph, 0, len(marks))
	for _, m := range marks {
		glyphs = append(glyphs, glyph{
			text: m.Text,
			llx:  m.BBox.Llx,
			lly:  m.BBox.Lly,
			urx:  m.BBox.Urx,
			ury:  m.BBox.Ury,
		})
	}
	return groupSpans(glyphs, origin, scale), nil
}

// glyph is one text mark in PDF user space (origin bottom-left).
type glyph struct {
	text               string
	llx, lly, urx, ury float64
}

// pageOrigin is the top-left corner of the page box in PDF user space.
type pageOrigin struct {
	left, top float64
}

// groupSpans merges consecutive glyphs into words. Whitespace and line
// changes end a word. Boxes are made relative to the page box's top-left
// corner and scaled.
func groupSpans(glyphs []glyph, origin pageOrigin, scale float64) []domain.TextSpan {
	var spans []domain.TextSpan
	var word strings.Builder
	var box glyph
	open := false

	flush := func() {
		if !open {
			return
		}
		spans = append(spans, domain.TextSpan{
			Text: word.String(),
			Rect: domain.Rect{
				X:      (box.llx - origin.left) * scale,
				Y:      (origin.top - box.ury) * scale,
				Width:  (box.urx - box.llx) * scale,
				Height: (box.ury - box.lly) * scale,
			},
		})
		word.Reset()
		open = false
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.text, unicode.IsSpace) == "" {
			flush()
			continue
		}
		if open && !sameLine(box, g) {
			flush()
		}
		if !open {
			box = g
			open = true
		} else {
			box.llx = math.Min(box.llx, g.llx)
			box.lly = math.Min(box.lly, g.lly)
			box.urx = math.Max(box.urx, g.urx)
			box.ury = math.Max(box.ury, g.ury)
		}
		word.WriteString(g.text)
	}
	flush()
	return spans
}

// sameLine reports whether g continues the word in box: it overlaps
// vertically and starts no earlier than the word's left edge.
func sameLine(box, g glyph) bool {
	overlap := math.Min(box.ury, g.ury) - math.Max(box.lly, g.lly)
	return overlap > 0 && g.llx >= box.llx
}
