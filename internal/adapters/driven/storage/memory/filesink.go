package memory

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure FileSink implements the interface.
var _ driven.FileSink = (*FileSink)(nil)

// FileSink records written files in memory.
type FileSink struct {
	mu    sync.Mutex
	files map[string][]byte

	// Err, when set, is returned by every write.
	Err error

	// FailName, when set, makes writes of that file name return Err.
	FailName string
}

// NewFileSink creates an empty sink.
func NewFileSink() *FileSink {
	return &FileSink{files: make(map[string][]byte)}
}

// WriteFile records data under dir/name.
func (s *FileSink) WriteFile(_ context.Context, dir, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil && (s.FailName == "" || s.FailName == name) {
		return "", s.Err
	}
	p := path.Join(dir, name)
	s.files[p] = append([]byte(nil), data...)
	return p, nil
}

// Remove forgets p.
func (s *FileSink) Remove(_ context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, p)
	return nil
}

// File returns the data written to p.
func (s *FileSink) File(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[p]
	return data, ok
}

// Paths lists written paths in sorted order.
func (s *FileSink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
