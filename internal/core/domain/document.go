package domain

import "time"

// Document represents the currently loaded PDF.
type Document struct {
	// ID is the unique identifier for this load of the document.
	ID string

	// Name is the file name the PDF was loaded from.
	Name string

	// Size is the byte length of the PDF data.
	Size int

	// PageCount is the number of pages in the document.
	PageCount int

	// LoadedAt is when the document was loaded.
	LoadedAt time.Time
}

// HasPage reports whether n is a valid 1-based page number.
func (d *Document) HasPage(n int) bool {
	return d != nil && n >= 1 && n <= d.PageCount
}

// StoredDocument is a PDF restored from local storage.
type StoredDocument struct {
	Name    string
	Data    []byte
	SavedAt time.Time
}
