// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// A single Workspace owns the application state: the annotation store,
// the page container, the loaded document and the pending selection.
// The driving services are thin views over it.
package services
