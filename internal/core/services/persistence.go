package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Storage keys.
const (
	KeyAnnotations = "folio.annotations"
	KeyPDFData     = "folio.pdf.data"
	KeyPDFName     = "folio.pdf.name"
	KeyPDFSavedAt  = "folio.pdf.savedAt"
)

const defaultChunkSize = 512 << 10

// Persister writes annotations and the last opened PDF through to local storage.
// Storage is best effort: a failed write purges the affected keys so a later
// load never sees a half-written state.
type Persister struct {
	kv        driven.KeyValueStore
	chunkSize int
	throttle  *logger.Throttle
}

// NewPersister creates a persister. chunkSize bounds each stored PDF chunk
// in encoded bytes; zero selects the default.
func NewPersister(kv driven.KeyValueStore, chunkSize int) *Persister {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Persister{
		kv:        kv,
		chunkSize: chunkSize,
		throttle:  logger.NewThrottle(10 * time.Second),
	}
}

// SaveAnnotations stores the serialized annotation array.
// On failure the key is removed and the error is logged and returned.
func (p *Persister) SaveAnnotations(ctx context.Context, data []byte) error {
	if err := p.kv.Set(ctx, KeyAnnotations, string(data)); err != nil {
		_ = p.kv.Delete(ctx, KeyAnnotations)
		p.throttle.Error("saving annotations: %v", err)
		return fmt.Errorf("saving annotations: %w", err)
	}
	return nil
}

// LoadAnnotations returns the stored annotation array, if any.
func (p *Persister) LoadAnnotations(ctx context.Context) ([]byte, bool, error) {
	v, ok, err := p.kv.Get(ctx, KeyAnnotations)
	if err != nil {
		return nil, false, fmt.Errorf("loading annotations: %w", err)
	}
	return []byte(v), ok, nil
}

// ClearAnnotations removes the stored annotation array.
func (p *Persister) ClearAnnotations(ctx context.Context) error {
	return p.kv.Delete(ctx, KeyAnnotations)
}

// SaveDocument stores a PDF as base64 chunks plus its name and save time.
// Any failed write clears every document key.
func (p *Persister) SaveDocument(ctx context.Context, name string, data []byte, savedAt time.Time) error {
	if err := p.ClearDocument(ctx); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	chunks := chunkString(encoded, p.chunkSize)

	writes := make([][2]string, 0, len(chunks)+3)
	for i, c := range chunks {
		writes = append(writes, [2]string{chunkKey(i), c})
	}
	writes = append(writes,
		[2]string{KeyPDFData, strconv.Itoa(len(chunks))},
		[2]string{KeyPDFName, name},
		[2]string{KeyPDFSavedAt, savedAt.UTC().Format(time.RFC3339)},
	)

	for _, w := range writes {
		if err := p.kv.Set(ctx, w[0], w[1]); err != nil {
			_ = p.ClearDocument(ctx)
			p.throttle.Error("saving document %s: %v", name, err)
			return fmt.Errorf("saving document: %w", err)
		}
	}

	logger.Debug("persisted %s in %d chunks", name, len(chunks))
	return nil
}

// LoadDocument restores the stored PDF. Returns domain.ErrNotFound when
// nothing is stored and domain.ErrCorruptData (after clearing the keys)
// when the stored chunks are incomplete or undecodable.
func (p *Persister) LoadDocument(ctx context.Context) (*domain.StoredDocument, error) {
	countStr, ok, err := p.kv.Get(ctx, KeyPDFData)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("loading document: %w", domain.ErrNotFound)
	}

	doc, err := p.readDocument(ctx, countStr)
	if errors.Is(err, domain.ErrCorruptData) {
		_ = p.ClearDocument(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

func (p *Persister) readDocument(ctx context.Context, countStr string) (*domain.StoredDocument, error) {
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 {
		return nil, domain.ErrCorruptData
	}

	var sb strings.Builder
	for i := 0; i < count; i++ {
		chunk, ok, err := p.kv.Get(ctx, chunkKey(i))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrCorruptData
		}
		sb.WriteString(chunk)
	}

	data, err := base64.StdEncoding.DecodeString(sb.String())
	if err != nil {
		return nil, domain.ErrCorruptData
	}

	name, _, err := p.kv.Get(ctx, KeyPDFName)
	if err != nil {
		return nil, err
	}
	savedAtStr, _, err := p.kv.Get(ctx, KeyPDFSavedAt)
	if err != nil {
		return nil, err
	}
	savedAt, _ := time.Parse(time.RFC3339, savedAtStr)

	return &domain.StoredDocument{Name: name, Data: data, SavedAt: savedAt}, nil
}

// ClearDocument removes every document key, including orphaned chunks.
func (p *Persister) ClearDocument(ctx context.Context) error {
	keys, err := p.kv.Keys(ctx, KeyPDFData+".")
	if err != nil {
		return fmt.Errorf("listing document chunks: %w", err)
	}
	keys = append(keys, KeyPDFData, KeyPDFName, KeyPDFSavedAt)
	for _, k := range keys {
		if err := p.kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("deleting %s: %w", k, err)
		}
	}
	return nil
}

func chunkKey(i int) string {
	return KeyPDFData + "." + strconv.Itoa(i)
}

func chunkString(s string, size int) []string {
	if s == "" {
		return nil
	}
	chunks := make([]string, 0, len(s)/size+1)
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}
