package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure DropFolderService implements the interface.
var _ driving.DropFolderService = (*DropFolderService)(nil)

// DropFolderService loads every PDF that appears in a watched directory.
type DropFolderService struct {
	watcher   driven.FileWatcher
	documents driving.DocumentService
}

// NewDropFolderService creates a drop-folder loader.
func NewDropFolderService(watcher driven.FileWatcher, documents driving.DocumentService) *DropFolderService {
	return &DropFolderService{watcher: watcher, documents: documents}
}

// Watch blocks until ctx is cancelled, loading each PDF written into dir.
// onLoad is called after every load attempt.
func (s *DropFolderService) Watch(ctx context.Context, dir string, onLoad func(doc *domain.Document, err error)) error {
	paths, errs, err := s.watcher.Watch(ctx, dir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching %s for PDFs", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-paths:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(p), ".pdf") {
				logger.Debug("ignoring %s", p)
				continue
			}
			doc, err := s.documents.OpenFile(ctx, p)
			if onLoad != nil {
				onLoad(doc, err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watcher: %v", err)
		}
	}
}
