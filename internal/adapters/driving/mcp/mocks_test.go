package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mockAnnotationService is a mock implementation of driving.AnnotationService.
// It keeps annotations in memory and finds text by substring.
type mockAnnotationService struct {
	annotations []domain.Annotation
	pageText    map[int]string
	pending     *driving.PendingSelection
	nextID      int64
	err         error
}

func newMockAnnotationService() *mockAnnotationService {
	return &mockAnnotationService{pageText: map[int]string{}, nextID: 100}
}

func (m *mockAnnotationService) Select(_ domain.Selection) (*driving.PendingSelection, error) {
	return nil, m.err
}

func (m *mockAnnotationService) SelectText(page int, query string) (*driving.PendingSelection, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !strings.Contains(strings.ToLower(m.pageText[page]), strings.ToLower(query)) {
		return nil, fmt.Errorf("text %q: %w", query, domain.ErrNotFound)
	}
	m.pending = &driving.PendingSelection{
		Text: query,
		Meta: domain.SelectionMeta{PageNumber: page, Rects: []domain.Rect{{X: 1, Y: 1, Width: 10, Height: 10}}},
	}
	return m.pending, nil
}

func (m *mockAnnotationService) Pending() (*driving.PendingSelection, bool) {
	return m.pending, m.pending != nil
}

func (m *mockAnnotationService) Dismiss() { m.pending = nil }

func (m *mockAnnotationService) Annotate(ctx context.Context) (*domain.Annotation, error) {
	if m.pending == nil {
		return nil, domain.ErrInvalidInput
	}
	a, err := m.Create(ctx, m.pending.Text, m.pending.Meta)
	m.pending = nil
	return a, err
}

func (m *mockAnnotationService) Create(_ context.Context, text string, meta domain.SelectionMeta) (*domain.Annotation, error) {
	m.nextID++
	a := domain.Annotation{ID: m.nextID, Text: text, PageNumber: meta.PageNumber, Rects: meta.Rects, Replies: []string{}}
	m.annotations = append(m.annotations, a)
	return &a, nil
}

func (m *mockAnnotationService) List() []domain.Annotation {
	return m.annotations
}

func (m *mockAnnotationService) Get(id int64) (*domain.Annotation, error) {
	for i := range m.annotations {
		if m.annotations[i].ID == id {
			a := m.annotations[i].Clone()
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnnotationService) Panel() driving.PanelView {
	return driving.PanelView{Entries: m.annotations, ExportEnabled: len(m.annotations) > 0}
}

func (m *mockAnnotationService) Delete(_ context.Context, _ int64) (bool, error) {
	return false, m.err
}

func (m *mockAnnotationService) AddReply(_ context.Context, id int64, text string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.annotations {
		if m.annotations[i].ID == id {
			m.annotations[i].Replies = append(m.annotations[i].Replies, text)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockAnnotationService) EditReply(_ context.Context, _ int64, _ int, _ string) error {
	return m.err
}

func (m *mockAnnotationService) DeleteReply(_ context.Context, _ int64, _ int) error {
	return m.err
}

func (m *mockAnnotationService) Clear(_ context.Context) error {
	m.annotations = nil
	return m.err
}

func (m *mockAnnotationService) Jump(_ int64) (*driving.Jump, error) {
	return nil, m.err
}

func (m *mockAnnotationService) CopyText(_ int64) error {
	return m.err
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	fallback domain.ExportTemplate
	copied   string
	gotTmpl  domain.ExportTemplate
	gotIDs   []int64
	err      error
}

func (m *mockExportService) Export(_ context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	text, err := m.Format(tmpl, ids...)
	if err != nil {
		return "", err
	}
	m.copied = text
	return text, nil
}

func (m *mockExportService) Format(tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	m.gotTmpl, m.gotIDs = tmpl, ids
	if m.err != nil {
		return "", m.err
	}
	if !tmpl.IsValid() {
		return "", domain.ErrUnknownTemplate
	}
	return fmt.Sprintf("exported %d as %s", len(ids), tmpl), nil
}

func (m *mockExportService) Templates() []domain.ExportTemplate {
	return domain.ExportTemplates()
}

func (m *mockExportService) Fallback() domain.ExportTemplate {
	if m.fallback == "" {
		return domain.ExportPlain
	}
	return m.fallback
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document *domain.Document
}

func (m *mockDocumentService) Open(_ context.Context, _ string, _ []byte) (*domain.Document, error) {
	return m.document, nil
}

func (m *mockDocumentService) OpenFile(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, nil
}

func (m *mockDocumentService) Restore(_ context.Context) (*domain.Document, error) {
	return m.document, nil
}

func (m *mockDocumentService) Current() *domain.Document { return m.document }

func (m *mockDocumentService) Pages() []domain.PageView { return nil }

func (m *mockDocumentService) Resize(_, _ float64) {}

func (m *mockDocumentService) Relayouts() <-chan error { return nil }

func (m *mockDocumentService) ScrollTo(_ float64) {}

func (m *mockDocumentService) Viewport() driving.Viewport { return driving.Viewport{} }

func (m *mockDocumentService) Close() error { return nil }

func newTestServer(annotations *mockAnnotationService, export *mockExportService, doc *mockDocumentService) (*Server, error) {
	ports := &Ports{Annotation: annotations, Export: export}
	if doc != nil {
		ports.Document = doc
	}
	return NewServer(ports)
}
