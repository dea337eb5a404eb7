package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// FallbackTemplate is used by non-interactive callers that do not choose.
const FallbackTemplate = domain.ExportPlain

const repliesBlock = `{{if .Replies}}Comments/Questions:
{{range .Replies}}- {{.}}
{{end}}{{end}}`

var exportTemplateText = map[domain.ExportTemplate]string{
	domain.ExportPlain:        "{{.Index}}) Annotated Text:\n{{.Text}}\n",
	domain.ExportPlainPage:    "{{.Index}}) Annotated Text (Page {{.Page}}):\n{{.Text}}\n",
	domain.ExportQuoted:       "{{.Index}}) \"{{.Text}}\"\n",
	domain.ExportQuotedPage:   "{{.Index}}) Page {{.Page}}: \"{{.Text}}\"\n",
	domain.ExportEllipsis:     "{{.Index}}) \"...{{.Text}}...\"\n",
	domain.ExportEllipsisPage: "{{.Index}}) Page {{.Page}}: \"...{{.Text}}...\"\n",
}

// exportEntry is the data each template renders.
type exportEntry struct {
	Index   int
	Page    int
	Text    string
	Replies []string
}

// ExportFormatter renders annotations as text under a named template.
type ExportFormatter struct {
	templates map[domain.ExportTemplate]*template.Template
}

// NewExportFormatter parses the built-in templates.
func NewExportFormatter() *ExportFormatter {
	f := &ExportFormatter{templates: make(map[domain.ExportTemplate]*template.Template)}
	for name, text := range exportTemplateText {
		f.templates[name] = template.Must(template.New(name.String()).Parse(text + repliesBlock))
	}
	return f
}

// Format renders annotations sorted by page then ID. Entries are separated
// by a blank line. An empty name returns domain.ErrTemplateRequired.
func (f *ExportFormatter) Format(name domain.ExportTemplate, annotations []domain.Annotation) (string, error) {
	if name == "" {
		return "", domain.ErrTemplateRequired
	}
	tmpl, ok := f.templates[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, domain.ErrUnknownTemplate)
	}

	entries := SortForExport(annotations)
	blocks := make([]string, 0, len(entries))
	for i, a := range entries {
		var buf bytes.Buffer
		err := tmpl.Execute(&buf, exportEntry{
			Index:   i + 1,
			Page:    a.PageNumber,
			Text:    strings.TrimSpace(a.Text),
			Replies: a.Replies,
		})
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", name, err)
		}
		blocks = append(blocks, buf.String())
	}
	return strings.Join(blocks, "\n"), nil
}

// SortForExport orders annotations by page then ID. The input is not modified.
func SortForExport(annotations []domain.Annotation) []domain.Annotation {
	out := make([]domain.Annotation, len(annotations))
	copy(out, annotations)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PageNumber != out[j].PageNumber {
			return out[i].PageNumber < out[j].PageNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}
