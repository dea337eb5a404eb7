// Package mcp provides an MCP (Model Context Protocol) server adapter for Folio.
// It lets AI assistants list, create, reply to and export annotations on the
// currently loaded PDF.
package mcp

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("mcp: export service is required")
