package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestOpenCmd_Use(t *testing.T) {
	assert.Equal(t, "open [file]", openCmd.Use)
}

func TestOpenCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("open")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestOpenCmd_Loads(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	var gotPath string
	ts.document.OpenFileFunc = func(ctx context.Context, path string) (*domain.Document, error) {
		gotPath = path
		return &domain.Document{Name: "paper.pdf", PageCount: 3}, nil
	}

	out, err := execute("open", "/tmp/paper.pdf")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/paper.pdf", gotPath)
	assert.Contains(t, out, "Loaded paper.pdf (3 pages)")
}

func TestOpenCmd_Error(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	ts.document.OpenFileFunc = func(ctx context.Context, path string) (*domain.Document, error) {
		return nil, domain.ErrNotPDF
	}

	_, err := execute("open", "notes.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open document")
	assert.ErrorIs(t, err, domain.ErrNotPDF)
}

func TestOpenCmd_ServiceNotConfigured(t *testing.T) {
	SetServices(nil)
	defer resetFlags(rootCmd)

	_, err := execute("open", "paper.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document service not configured")
}

func TestStatusCmd_ShowsDocument(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.annotation.panel.Entries = []domain.Annotation{{ID: 1}, {ID: 2}}

	out, err := execute("status")

	require.NoError(t, err)
	assert.Contains(t, out, "Document: paper.pdf")
	assert.Contains(t, out, "Pages:    3")
	assert.Contains(t, out, "Size:     2048 bytes")
	assert.Contains(t, out, "Annotations: 2")
}

func TestStatusCmd_NoDocument(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.document.current = nil

	out, err := execute("status")

	require.NoError(t, err)
	assert.Contains(t, out, "No document loaded")
}
