// Package memory provides in-memory implementations of driven ports.
// They back the test suites and the --ephemeral CLI mode, where nothing
// should touch the user's data directory.
package memory
