package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Sink implements the interface.
var _ driven.FileSink = (*Sink)(nil)

// Sink writes files under a directory, creating it on demand.
type Sink struct{}

// NewSink creates a filesystem sink.
func NewSink() *Sink {
	return &Sink{}
}

// WriteFile writes data to dir/name through a temporary file so readers
// never see a partial image.
func (s *Sink) WriteFile(ctx context.Context, dir, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir = ResolvePath(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", wrapPathErr("creating "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", wrapPathErr("writing "+name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", wrapPathErr("writing "+name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", wrapPathErr("writing "+name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		return "", wrapPathErr("writing "+name, err)
	}
	return path, nil
}

// Remove deletes path. A missing file is not an error.
func (s *Sink) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return wrapPathErr("removing "+path, err)
	}
	return nil
}

func wrapPathErr(action string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w", action, domain.ErrPermissionDenied)
	}
	return fmt.Errorf("%s: %w", action, err)
}
