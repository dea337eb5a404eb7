package tui

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mockDocumentService implements driving.DocumentService for testing.
type mockDocumentService struct {
	doc        *domain.Document
	pages      []domain.PageView
	restoreErr error
	resizes    [][2]float64
	relayouts  chan error
}

func (m *mockDocumentService) Open(ctx context.Context, name string, data []byte) (*domain.Document, error) {
	return m.doc, nil
}

func (m *mockDocumentService) OpenFile(ctx context.Context, path string) (*domain.Document, error) {
	return m.doc, nil
}

func (m *mockDocumentService) Restore(ctx context.Context) (*domain.Document, error) {
	if m.restoreErr != nil {
		return nil, m.restoreErr
	}
	return m.doc, nil
}

func (m *mockDocumentService) Current() *domain.Document { return nil }

func (m *mockDocumentService) Pages() []domain.PageView { return m.pages }

func (m *mockDocumentService) Resize(width, height float64) {
	m.resizes = append(m.resizes, [2]float64{width, height})
}

func (m *mockDocumentService) Relayouts() <-chan error { return m.relayouts }

func (m *mockDocumentService) ScrollTo(top float64) {}

func (m *mockDocumentService) Viewport() driving.Viewport { return driving.Viewport{} }

func (m *mockDocumentService) Close() error { return nil }

// mockAnnotationService implements driving.AnnotationService for testing.
type mockAnnotationService struct {
	entries []domain.Annotation
	jump    *driving.Jump
	jumpErr error
}

func (m *mockAnnotationService) Select(sel domain.Selection) (*driving.PendingSelection, error) {
	return &driving.PendingSelection{Text: sel.Text}, nil
}

func (m *mockAnnotationService) SelectText(page int, query string) (*driving.PendingSelection, error) {
	return nil, nil
}

func (m *mockAnnotationService) Pending() (*driving.PendingSelection, bool) { return nil, false }

func (m *mockAnnotationService) Dismiss() {}

func (m *mockAnnotationService) Annotate(ctx context.Context) (*domain.Annotation, error) {
	return nil, nil
}

func (m *mockAnnotationService) Create(ctx context.Context, text string, meta domain.SelectionMeta) (*domain.Annotation, error) {
	return nil, nil
}

func (m *mockAnnotationService) List() []domain.Annotation { return m.entries }

func (m *mockAnnotationService) Get(id int64) (*domain.Annotation, error) { return nil, domain.ErrNotFound }

func (m *mockAnnotationService) Panel() driving.PanelView {
	return driving.PanelView{Entries: m.entries, ExportEnabled: len(m.entries) > 0}
}

func (m *mockAnnotationService) Delete(ctx context.Context, id int64) (bool, error) { return true, nil }

func (m *mockAnnotationService) AddReply(ctx context.Context, id int64, text string) error { return nil }

func (m *mockAnnotationService) EditReply(ctx context.Context, id int64, index int, text string) error {
	return nil
}

func (m *mockAnnotationService) DeleteReply(ctx context.Context, id int64, index int) error { return nil }

func (m *mockAnnotationService) Clear(ctx context.Context) error { return nil }

func (m *mockAnnotationService) Jump(id int64) (*driving.Jump, error) { return m.jump, m.jumpErr }

func (m *mockAnnotationService) CopyText(id int64) error { return nil }

// mockExportService implements driving.ExportService for testing.
type mockExportService struct{}

func (m *mockExportService) Export(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	return "text", nil
}

func (m *mockExportService) Format(tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	return "text", nil
}

func (m *mockExportService) Templates() []domain.ExportTemplate { return domain.ExportTemplates() }

func (m *mockExportService) Fallback() domain.ExportTemplate { return domain.ExportPlain }

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) { return &m.settings, nil }

func (m *mockSettingsService) Save(settings *domain.AppSettings) error { return nil }

func (m *mockSettingsService) Set(key, value string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
