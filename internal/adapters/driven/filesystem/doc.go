// Package filesystem implements the file sink and directory watcher ports
// on the local filesystem.
package filesystem
