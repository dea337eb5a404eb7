// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewPages is the page viewer with the text layer.
	ViewPages ViewType = iota
	// ViewPanel is the annotation panel.
	ViewPanel
	// ViewExport is the export template chooser.
	ViewExport
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewPages:
		return "pages"
	case ViewPanel:
		return "panel"
	case ViewExport:
		return "export"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// DocumentLoaded carries the result of restoring the last PDF.
type DocumentLoaded struct {
	Document *domain.Document
	Err      error
}

// SelectionChanged is sent when the text-layer selection changes.
// A nil Pending means nothing is selected.
type SelectionChanged struct {
	Pending *driving.PendingSelection
}

// AnnotationCreated carries a newly created annotation.
type AnnotationCreated struct {
	Annotation *domain.Annotation
	Err        error
}

// JumpRequested asks the app to scroll to an annotation.
type JumpRequested struct {
	AnnotationID int64
}

// Jumped carries the scroll target and pulse for an annotation.
type Jumped struct {
	Jump *driving.Jump
	Err  error
}

// PulseTick advances a highlight pulse by one frame.
type PulseTick struct {
	AnnotationID int64
	Frame        int
}

// AnnotationDeleted signals a delete attempt finished.
type AnnotationDeleted struct {
	AnnotationID int64
	Deleted      bool
	Err          error
}

// ReplySaved signals a reply was added, edited or deleted.
type ReplySaved struct {
	AnnotationID int64
	Err          error
}

// Exported carries the exported text.
type Exported struct {
	Template domain.ExportTemplate
	Text     string
	Err      error
}

// Copied signals a clipboard write finished.
type Copied struct {
	Err error
}

// Relayout signals a debounced page re-layout finished.
type Relayout struct {
	Err error
}

// StatusExpired clears a transient status message if it is still current.
type StatusExpired struct {
	Seq int
}
