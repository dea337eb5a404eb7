package mcp

import (
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Annotation manages annotations and replies.
	Annotation driving.AnnotationService

	// Export formats annotations as text.
	Export driving.ExportService

	// Document describes the loaded PDF.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	// Document is optional; the document resource is empty without it.
	return nil
}
