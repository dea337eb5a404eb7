package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService formats annotations and copies the result to the clipboard.
type ExportService struct {
	ws        *Workspace
	formatter *ExportFormatter
}

// NewExportService creates an export service over ws.
func NewExportService(ws *Workspace) *ExportService {
	return &ExportService{ws: ws, formatter: NewExportFormatter()}
}

// Export formats the selected annotations (all when ids is empty) and
// writes the text to the clipboard.
func (s *ExportService) Export(_ context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	text, err := s.Format(tmpl, ids...)
	if err != nil {
		return "", err
	}
	if err := s.ws.Copy(text); err != nil {
		return text, err
	}
	logger.Debug("exported %d bytes as %s", len(text), tmpl)
	return text, nil
}

// Format renders the selected annotations without touching the clipboard.
func (s *ExportService) Format(tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	annotations, err := s.selectAnnotations(ids)
	if err != nil {
		return "", err
	}
	return s.formatter.Format(tmpl, annotations)
}

// Templates returns the template names in chooser order.
func (s *ExportService) Templates() []domain.ExportTemplate {
	return domain.ExportTemplates()
}

// Fallback returns the template used when the caller cannot choose.
func (s *ExportService) Fallback() domain.ExportTemplate {
	if t := s.ws.Settings().Export.DefaultTemplate; t.IsValid() {
		return t
	}
	return FallbackTemplate
}

func (s *ExportService) selectAnnotations(ids []int64) ([]domain.Annotation, error) {
	store := s.ws.Store()
	if len(ids) == 0 {
		return store.List(), nil
	}
	out := make([]domain.Annotation, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		a, err := store.Get(id)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", id, err)
		}
		out = append(out, *a)
	}
	return out, nil
}
