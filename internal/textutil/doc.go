// Package textutil cleans text at the two boundaries where it enters or
// leaves the application: selections copied out of a PDF text layer, and
// user-supplied strings written to a terminal.
package textutil
