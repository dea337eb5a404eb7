package cli

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// mockDocumentService implements driving.DocumentService for testing.
type mockDocumentService struct {
	OpenFileFunc func(ctx context.Context, path string) (*domain.Document, error)
	RestoreFunc  func(ctx context.Context) (*domain.Document, error)
	current      *domain.Document
}

func (m *mockDocumentService) Open(ctx context.Context, name string, data []byte) (*domain.Document, error) {
	return m.current, nil
}

func (m *mockDocumentService) OpenFile(ctx context.Context, path string) (*domain.Document, error) {
	if m.OpenFileFunc != nil {
		return m.OpenFileFunc(ctx, path)
	}
	return m.current, nil
}

func (m *mockDocumentService) Restore(ctx context.Context) (*domain.Document, error) {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocumentService) Current() *domain.Document { return m.current }

func (m *mockDocumentService) Pages() []domain.PageView { return nil }

func (m *mockDocumentService) Resize(width, height float64) {}

func (m *mockDocumentService) Relayouts() <-chan error { return nil }

func (m *mockDocumentService) ScrollTo(top float64) {}

func (m *mockDocumentService) Viewport() driving.Viewport { return driving.Viewport{} }

func (m *mockDocumentService) Close() error { return nil }

// mockAnnotationService implements driving.AnnotationService for testing.
type mockAnnotationService struct {
	SelectTextFunc  func(page int, query string) (*driving.PendingSelection, error)
	AnnotateFunc    func(ctx context.Context) (*domain.Annotation, error)
	DeleteFunc      func(ctx context.Context, id int64) (bool, error)
	AddReplyFunc    func(ctx context.Context, id int64, text string) error
	EditReplyFunc   func(ctx context.Context, id int64, index int, text string) error
	DeleteReplyFunc func(ctx context.Context, id int64, index int) error
	ClearFunc       func(ctx context.Context) error
	CopyTextFunc    func(id int64) error
	panel           driving.PanelView
}

func (m *mockAnnotationService) Select(sel domain.Selection) (*driving.PendingSelection, error) {
	return &driving.PendingSelection{Text: sel.Text}, nil
}

func (m *mockAnnotationService) SelectText(page int, query string) (*driving.PendingSelection, error) {
	if m.SelectTextFunc != nil {
		return m.SelectTextFunc(page, query)
	}
	return &driving.PendingSelection{Text: query, Meta: domain.SelectionMeta{PageNumber: page}}, nil
}

func (m *mockAnnotationService) Pending() (*driving.PendingSelection, bool) { return nil, false }

func (m *mockAnnotationService) Dismiss() {}

func (m *mockAnnotationService) Annotate(ctx context.Context) (*domain.Annotation, error) {
	if m.AnnotateFunc != nil {
		return m.AnnotateFunc(ctx)
	}
	return &domain.Annotation{ID: 1, Text: "text", PageNumber: 1}, nil
}

func (m *mockAnnotationService) Create(ctx context.Context, text string, meta domain.SelectionMeta) (*domain.Annotation, error) {
	return &domain.Annotation{ID: 1, Text: text, PageNumber: meta.PageNumber}, nil
}

func (m *mockAnnotationService) List() []domain.Annotation { return m.panel.Entries }

func (m *mockAnnotationService) Get(id int64) (*domain.Annotation, error) {
	for i := range m.panel.Entries {
		if m.panel.Entries[i].ID == id {
			a := m.panel.Entries[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnnotationService) Panel() driving.PanelView { return m.panel }

func (m *mockAnnotationService) Delete(ctx context.Context, id int64) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

func (m *mockAnnotationService) AddReply(ctx context.Context, id int64, text string) error {
	if m.AddReplyFunc != nil {
		return m.AddReplyFunc(ctx, id, text)
	}
	return nil
}

func (m *mockAnnotationService) EditReply(ctx context.Context, id int64, index int, text string) error {
	if m.EditReplyFunc != nil {
		return m.EditReplyFunc(ctx, id, index, text)
	}
	return nil
}

func (m *mockAnnotationService) DeleteReply(ctx context.Context, id int64, index int) error {
	if m.DeleteReplyFunc != nil {
		return m.DeleteReplyFunc(ctx, id, index)
	}
	return nil
}

func (m *mockAnnotationService) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

func (m *mockAnnotationService) Jump(id int64) (*driving.Jump, error) {
	return &driving.Jump{AnnotationID: id}, nil
}

func (m *mockAnnotationService) CopyText(id int64) error {
	if m.CopyTextFunc != nil {
		return m.CopyTextFunc(id)
	}
	return nil
}

// mockExportService implements driving.ExportService for testing.
type mockExportService struct {
	ExportFunc func(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error)
	FormatFunc func(tmpl domain.ExportTemplate, ids ...int64) (string, error)
	fallback   domain.ExportTemplate
}

func (m *mockExportService) Export(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, tmpl, ids...)
	}
	if tmpl == "" {
		return "", domain.ErrTemplateRequired
	}
	return "exported text\n", nil
}

func (m *mockExportService) Format(tmpl domain.ExportTemplate, ids ...int64) (string, error) {
	if m.FormatFunc != nil {
		return m.FormatFunc(tmpl, ids...)
	}
	return "formatted text\n", nil
}

func (m *mockExportService) Templates() []domain.ExportTemplate { return domain.ExportTemplates() }

func (m *mockExportService) Fallback() domain.ExportTemplate { return m.fallback }

// mockIsometricService implements driving.IsometricService for testing.
type mockIsometricService struct {
	GenerateFunc   func(ctx context.Context, data []byte, dir string) ([]domain.IsoVariant, error)
	SavePastedFunc func(ctx context.Context, data []byte, dir string) (string, error)
}

func (m *mockIsometricService) Generate(ctx context.Context, data []byte, dir string) ([]domain.IsoVariant, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, data, dir)
	}
	return nil, nil
}

func (m *mockIsometricService) SavePasted(ctx context.Context, data []byte, dir string) (string, error) {
	if m.SavePastedFunc != nil {
		return m.SavePastedFunc(ctx, data, dir)
	}
	return dir + "/pasted.png", nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	SetFunc  func(key, value string) error
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) { return &m.settings, nil }

func (m *mockSettingsService) Save(settings *domain.AppSettings) error { return nil }

func (m *mockSettingsService) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"export.default_template", "highlight.color"}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// mockDropFolderService implements driving.DropFolderService for testing.
type mockDropFolderService struct {
	WatchFunc func(ctx context.Context, dir string, onLoad func(doc *domain.Document, err error)) error
}

func (m *mockDropFolderService) Watch(ctx context.Context, dir string, onLoad func(doc *domain.Document, err error)) error {
	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, dir, onLoad)
	}
	return nil
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	document   *mockDocumentService
	annotation *mockAnnotationService
	export     *mockExportService
	isometric  *mockIsometricService
	settings   *mockSettingsService
	dropFolder *mockDropFolderService
	assumeYes  []bool
}

// setupTestServices installs mock services with a loaded document and
// returns a cleanup that removes them and resets every flag.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		document: &mockDocumentService{
			current: &domain.Document{ID: "doc-1", Name: "paper.pdf", Size: 2048, PageCount: 3},
		},
		annotation: &mockAnnotationService{},
		export:     &mockExportService{fallback: domain.ExportPlain},
		isometric:  &mockIsometricService{},
		settings:   &mockSettingsService{settings: domain.DefaultAppSettings()},
		dropFolder: &mockDropFolderService{},
	}
	SetServices(&Services{
		Document:   ts.document,
		Annotation: ts.annotation,
		Export:     ts.export,
		Isometric:  ts.isometric,
		Settings:   ts.settings,
		DropFolder: ts.dropFolder,
		AssumeYes:  func(v bool) { ts.assumeYes = append(ts.assumeYes, v) },
	})

	return ts, func() {
		SetServices(nil)
		resetFlags(rootCmd)
	}
}

// resetFlags restores every flag of cmd and its subcommands to its default
// so state does not leak between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns the combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
