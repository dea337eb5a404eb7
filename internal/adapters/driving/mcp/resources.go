package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for Folio resources.
	uriScheme = "folio://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing the loaded PDF.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document",
		Name:        "document",
		Description: "The currently loaded PDF",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	// Template for a single annotation.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "annotations/{annotationId}",
		Name:        "annotation",
		Description: "One annotation with its replies",
		MIMEType:    "application/json",
	}, s.handleAnnotationResource)
}

// handleDocumentResource returns the loaded document, or null.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type docInfo struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Pages       int    `json:"pages"`
		Size        int    `json:"size"`
		Annotations int    `json:"annotations"`
	}

	var info *docInfo
	if s.ports.Document != nil {
		if doc := s.ports.Document.Current(); doc != nil {
			info = &docInfo{
				ID:          doc.ID,
				Name:        doc.Name,
				Pages:       doc.PageCount,
				Size:        doc.Size,
				Annotations: len(s.ports.Annotation.List()),
			}
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleAnnotationResource returns one annotation.
func (s *Server) handleAnnotationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract annotationId from URI: folio://annotations/{annotationId}
	id, ok := extractAnnotationID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	a, err := s.ports.Annotation.Get(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(toOutput(a), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling annotation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAnnotationID extracts the ID from a URI like folio://annotations/{annotationId}.
func extractAnnotationID(uri string) (int64, bool) {
	const prefix = uriScheme + "annotations/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
