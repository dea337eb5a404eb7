// Command folio annotates PDFs from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/custodia-labs/folio/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/folio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio/internal/adapters/driven/confirm"
	"github.com/custodia-labs/folio/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/folio/internal/adapters/driven/imaging"
	"github.com/custodia-labs/folio/internal/adapters/driven/pdf"
	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/folio/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio/internal/core/services"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap builds the services from the config and data directory.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	dir := opts.DataDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locating data directory: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"), settings.Storage.QuotaBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	logger.Debug("storage at %s", store.Path())

	sw := confirm.NewSwitch(confirm.NewPrompt())
	ws := services.NewWorkspace(services.WorkspaceConfig{
		Renderer:  pdf.NewRenderer(),
		KV:        store.KeyValueStore(),
		Clipboard: clipboard.NewSystem(),
		Confirmer: sw,
		Settings:  *settings,
	})

	docSvc := services.NewDocumentService(ws)
	s := &cli.Services{
		Document:   docSvc,
		Annotation: services.NewAnnotationService(ws),
		Export:     services.NewExportService(ws),
		Isometric:  services.NewIsometricService(imaging.NewTransformer(), filesystem.NewSink(), settings.Iso.Scales),
		Settings:   settingsSvc,
		DropFolder: services.NewDropFolderService(filesystem.NewWatcher(), docSvc),
		AssumeYes:  sw.AssumeYes,
	}

	closeFn := func() error {
		return errors.Join(ws.Close(), store.Close())
	}
	return s, closeFn, nil
}
