package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Annotation Errors.

	// ErrEmptyText indicates an annotation was created without text.
	ErrEmptyText = errors.New("annotation text is empty")

	// ErrNoRects indicates an annotation has no usable rectangles.
	ErrNoRects = errors.New("annotation has no rectangles")

	// ErrPageOutOfRange indicates a page number outside the loaded document.
	ErrPageOutOfRange = errors.New("page out of range")

	// Document Errors.

	// ErrNotPDF indicates the supplied file is not a PDF.
	ErrNotPDF = errors.New("not a PDF file")

	// ErrDecodeFailed indicates the PDF could not be decoded or rendered.
	ErrDecodeFailed = errors.New("failed to decode PDF")

	// ErrNoDocument indicates an operation needs a loaded document.
	ErrNoDocument = errors.New("no document loaded")

	// Storage Errors.

	// ErrQuotaExceeded indicates local storage refused a write because it is full.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrCorruptData indicates persisted data failed validation.
	ErrCorruptData = errors.New("corrupt persisted data")

	// ErrPermissionDenied indicates the OS refused access to a file or directory.
	ErrPermissionDenied = errors.New("permission denied")

	// Export Errors.

	// ErrTemplateRequired indicates an export was requested without choosing a template.
	ErrTemplateRequired = errors.New("export template required")

	// ErrUnknownTemplate indicates an export template name is not registered.
	ErrUnknownTemplate = errors.New("unknown export template")

	// Image Errors.

	// ErrNotImage indicates the supplied data is not a decodable image.
	ErrNotImage = errors.New("not an image")
)
