package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher reports files created or written in one directory.
type Watcher struct{}

// NewWatcher creates a directory watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch starts watching dir. Paths are sent once per create or write
// event; hidden files and directories are skipped.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	dir = ResolvePath(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("watching %s: not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	paths := make(chan string)
	errs := make(chan error)

	go func() {
		defer close(paths)
		defer close(errs)
		defer fw.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				p, keep := handleFsEvent(event)
				if !keep {
					continue
				}
				logger.Debug("watch: %s %s", event.Op, p)
				select {
				case paths <- p:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return paths, errs, nil
}

// handleFsEvent returns the path to report for event, if any.
func handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// isHidden reports whether the file name starts with a dot.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
