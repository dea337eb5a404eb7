// Package domain defines the core business entities for Folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: A highlighted text range with threaded replies
//   - Rect: A page-local rectangle at a given render scale
//   - Selection: A text-layer selection reported by a driving adapter
//   - Document: The currently loaded PDF and its page count
//   - RenderedPage: One rasterised page with its text layer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
