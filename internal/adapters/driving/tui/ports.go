// Package tui provides an interactive terminal user interface for folio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document loads PDFs and exposes the rendered pages.
	Document driving.DocumentService

	// Annotation manages the selection, annotations and replies.
	Annotation driving.AnnotationService

	// Export formats annotations and copies them.
	Export driving.ExportService

	// Settings provides the highlight colour. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	document driving.DocumentService,
	annotation driving.AnnotationService,
	export driving.ExportService,
) *Ports {
	return &Ports{
		Document:   document,
		Annotation: annotation,
		Export:     export,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
