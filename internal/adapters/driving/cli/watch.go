package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/textutil"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Load PDFs dropped into a folder",
	Long: `Watch a folder and load every PDF that is created or written in it.

Each load replaces the current document and clears its annotations, the
same as 'folio open'. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if dropFolderService == nil {
		return errors.New("drop folder service not configured")
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := args[0]
	cmd.Printf("Watching %s for PDFs (Ctrl+C to stop)\n", dir)

	err := dropFolderService.Watch(ctx, dir, func(doc *domain.Document, err error) {
		if err != nil {
			cmd.PrintErrf("Failed to load: %v\n", err)
			return
		}
		cmd.Printf("Loaded %s (%d pages)\n", textutil.TerminalSafe(doc.Name), doc.PageCount)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}
