package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func TestExtractAnnotationID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int64
		ok       bool
	}{
		{
			name:     "valid annotation URI",
			uri:      "folio://annotations/1700000000000",
			expected: 1700000000000,
			ok:       true,
		},
		{
			name: "invalid prefix",
			uri:  "file://annotations/17",
		},
		{
			name: "non-numeric id",
			uri:  "folio://annotations/abc",
		},
		{
			name: "negative id",
			uri:  "folio://annotations/-4",
		},
		{
			name: "empty URI",
			uri:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractAnnotationID(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns null", func(t *testing.T) {
		server, err := newTestServer(newMockAnnotationService(), &mockExportService{}, nil)
		require.NoError(t, err)

		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("folio://document"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "null", result.Contents[0].Text)
	})

	t.Run("returns loaded document", func(t *testing.T) {
		doc := &mockDocumentService{document: &domain.Document{ID: "doc-1", Name: "paper.pdf", PageCount: 12}}
		server, err := newTestServer(newMockAnnotationService(), &mockExportService{}, doc)
		require.NoError(t, err)

		result, err := server.handleDocumentResource(ctx, makeReadResourceRequest("folio://document"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"name": "paper.pdf"`)
		assert.Contains(t, result.Contents[0].Text, `"pages": 12`)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})
}

func TestServer_handleAnnotationResource(t *testing.T) {
	ctx := context.Background()
	annotations := newMockAnnotationService()
	annotations.pageText[3] = "important finding"
	server, err := newTestServer(annotations, &mockExportService{}, nil)
	require.NoError(t, err)

	_, created, err := server.handleCreateAnnotation(ctx, nil, CreateAnnotationInput{Page: 3, Text: "finding"})
	require.NoError(t, err)

	t.Run("returns annotation", func(t *testing.T) {
		uri := "folio://annotations/" + formatID(created.ID)
		result, err := server.handleAnnotationResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"text": "finding"`)
		assert.Contains(t, result.Contents[0].Text, `"page": 3`)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		_, err := server.handleAnnotationResource(ctx, makeReadResourceRequest("folio://annotations/1"))
		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		_, err := server.handleAnnotationResource(ctx, makeReadResourceRequest("folio://invalid/uri"))
		require.Error(t, err)
	})
}

func formatID(id int64) string {
	return fmt.Sprintf("%d", id)
}
