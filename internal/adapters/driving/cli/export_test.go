package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// withInteractive overrides terminal detection for one test.
func withInteractive(t *testing.T, v bool) {
	t.Helper()
	orig := isInteractive
	isInteractive = func() bool { return v }
	t.Cleanup(func() { isInteractive = orig })
}

func TestExportCmd_Flags(t *testing.T) {
	tmpl := exportCmd.Flags().Lookup("template")
	require.NotNil(t, tmpl)
	assert.Equal(t, "t", tmpl.Shorthand)
	assert.NotNil(t, exportCmd.Flags().Lookup("fallback"))
	assert.NotNil(t, exportCmd.Flags().Lookup("print"))
}

func TestExportCmd_WithTemplate(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	withInteractive(t, false)

	var gotTmpl domain.ExportTemplate
	var gotIDs []int64
	ts.export.ExportFunc = func(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
		gotTmpl, gotIDs = tmpl, ids
		return "\"quoted\"\n", nil
	}

	out, err := execute("export", "--template", "quoted", "11", "12")

	require.NoError(t, err)
	assert.Equal(t, domain.ExportQuoted, gotTmpl)
	assert.Equal(t, []int64{11, 12}, gotIDs)
	assert.Contains(t, out, "\"quoted\"")
	assert.Contains(t, out, "Copied!")
}

func TestExportCmd_PrintDoesNotCopy(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	withInteractive(t, false)

	exported := false
	ts.export.ExportFunc = func(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
		exported = true
		return "", nil
	}

	out, err := execute("export", "-t", "plain", "--print")

	require.NoError(t, err)
	assert.False(t, exported)
	assert.Contains(t, out, "formatted text")
	assert.NotContains(t, out, "Copied!")
}

func TestExportCmd_Fallback(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	withInteractive(t, false)
	ts.export.fallback = domain.ExportEllipsisPage

	var gotTmpl domain.ExportTemplate
	ts.export.ExportFunc = func(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
		gotTmpl = tmpl
		return "", nil
	}

	_, err := execute("export", "--fallback")

	require.NoError(t, err)
	assert.Equal(t, domain.ExportEllipsisPage, gotTmpl)
}

func TestExportCmd_UnknownTemplate(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("export", "--template", "markdown")

	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
}

func TestExportCmd_NonInteractiveRequiresTemplate(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	withInteractive(t, false)

	_, err := execute("export")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplateRequired)
}

func TestExportCmd_InteractiveChooser(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	withInteractive(t, true)

	var gotTmpl domain.ExportTemplate
	ts.export.ExportFunc = func(ctx context.Context, tmpl domain.ExportTemplate, ids ...int64) (string, error) {
		gotTmpl = tmpl
		return "", nil
	}
	rootCmd.SetIn(strings.NewReader("3\n"))

	out, err := execute("export")

	require.NoError(t, err)
	assert.Contains(t, out, "Select Export Template")
	assert.Equal(t, domain.ExportTemplates()[2], gotTmpl)
}

func TestExportCmd_InteractiveCancelled(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	withInteractive(t, true)
	rootCmd.SetIn(strings.NewReader("\n"))

	_, err := execute("export")

	assert.ErrorIs(t, err, domain.ErrTemplateRequired)
}

func TestExportCmd_InvalidID(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("export", "-t", "plain", "nope")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	defer resetFlags(rootCmd)

	_, err := execute("export", "-t", "plain")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "export service not configured")
}

func TestTemplatesCmd_MarksFallback(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.export.fallback = domain.ExportQuotedPage

	out, err := execute("templates")

	require.NoError(t, err)
	for _, tmpl := range domain.ExportTemplates() {
		assert.Contains(t, out, tmpl.String())
	}
	assert.Contains(t, out, "* quoted-page")
	assert.Contains(t, out, "  plain ")
}
