package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/textutil"
)

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Load a PDF",
	Long: `Load a PDF and make it the current document.

Opening a new PDF clears all existing annotations. The PDF is kept in local
storage so later commands and the TUI start from it.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current document",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(statusCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.OpenFile(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Loaded %s (%d pages)\n", textutil.TerminalSafe(doc.Name), doc.PageCount)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	doc, err := ensureDocument(commandContext(cmd))
	if err != nil {
		return err
	}
	if doc == nil {
		cmd.Println("No document loaded. Run 'folio open <file.pdf>' to load one.")
		return nil
	}

	cmd.Printf("Document: %s\n\n", textutil.TerminalSafe(doc.Name))
	cmd.Printf("  Pages:    %d\n", doc.PageCount)
	cmd.Printf("  Size:     %d bytes\n", doc.Size)
	cmd.Printf("  Loaded:   %s\n", doc.LoadedAt.Format("2006-01-02 15:04:05"))
	if annotationService != nil {
		cmd.Printf("  Annotations: %d\n", len(annotationService.List()))
	}
	return nil
}

// requireDocument is ensureDocument for commands that need a loaded PDF.
func requireDocument(cmd *cobra.Command) (*domain.Document, error) {
	doc, err := ensureDocument(commandContext(cmd))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("run 'folio open <file.pdf>' first: %w", domain.ErrNoDocument)
	}
	return doc, nil
}
