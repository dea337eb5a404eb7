// Package cli is the cobra command-line surface of folio.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time.
var version = "dev"

// Root flags.
var (
	verbose bool
	dataDir string
)

// Services used by the commands. Nil services make the commands fail with
// "... service not configured".
var (
	documentService   driving.DocumentService
	annotationService driving.AnnotationService
	exportService     driving.ExportService
	isometricService  driving.IsometricService
	settingsService   driving.SettingsService
	dropFolderService driving.DropFolderService
	assumeYes         func(bool)
)

// Services holds the driving ports the commands use.
type Services struct {
	Document   driving.DocumentService
	Annotation driving.AnnotationService
	Export     driving.ExportService
	Isometric  driving.IsometricService
	Settings   driving.SettingsService
	DropFolder driving.DropFolderService

	// AssumeYes turns delete confirmation prompts off.
	AssumeYes func(bool)
}

// Options are the parsed root flags handed to the bootstrap function.
type Options struct {
	DataDir string
	Verbose bool
}

// Bootstrap builds the services after flags are parsed. The returned
// function releases them when the command finishes.
type Bootstrap func(opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	teardown  func() error
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Annotate PDFs from the terminal",
	Long: `Folio loads a PDF, lets you highlight passages and attach replies, and
exports your annotations as text.

Annotations and the last opened PDF are kept in local storage, so every
command continues where the previous one left off.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.folio)")
}

// SetServices installs the services the commands use.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	documentService = s.Document
	annotationService = s.Annotation
	exportService = s.Export
	isometricService = s.Isometric
	settingsService = s.Settings
	dropFolderService = s.DropFolder
	assumeYes = s.AssumeYes
}

// SetBootstrap sets the function that builds services once flags are parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version printed by "folio version".
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases the services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if teardown != nil {
		if cerr := teardown(); cerr != nil && err == nil {
			err = cerr
		}
		teardown = nil
	}
	return err
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil {
		return nil
	}
	s, closeFn, err := bootstrap(Options{DataDir: dataDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("starting folio: %w", err)
	}
	SetServices(s)
	teardown = closeFn
	return nil
}

// commandContext returns the command's context, or Background when run
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ensureDocument restores the last session when nothing is loaded.
// A missing session is not an error: the result is nil.
func ensureDocument(ctx context.Context) (*domain.Document, error) {
	if documentService == nil {
		return nil, errors.New("document service not configured")
	}
	if doc := documentService.Current(); doc != nil {
		return doc, nil
	}
	doc, err := documentService.Restore(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("no stored document to restore")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restoring last document: %w", err)
	}
	return doc, nil
}

// parseID parses an annotation ID argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid annotation id %q: %w", s, domain.ErrInvalidInput)
	}
	return id, nil
}

// parseReplyNumber parses a 1-based reply number into a store index.
func parseReplyNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid reply number %q: %w", s, domain.ErrInvalidInput)
	}
	return n - 1, nil
}
