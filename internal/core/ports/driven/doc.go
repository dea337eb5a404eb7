// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PDFRenderer: Decodes a PDF and rasterises pages with a text layer
//   - KeyValueStore: Local keyed storage for annotations and the last PDF
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Clipboard: Without it, exports are returned but not copied.
//   - Confirmer: Without it, destructive actions are refused.
//   - ImageTransformer, FileSink: Only needed by the isometric utility.
//   - FileWatcher: Only needed by the drop-folder loader.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
