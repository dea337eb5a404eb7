package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Folio.

The TUI shows the text of the current PDF page by page. Select words to
annotate them, browse and reply to annotations in the panel, and export
them to the clipboard.

Controls:
  ←/h, →/l   - Move between words
  ↑/k, ↓/j   - Move between lines
  n, p       - Next / previous page
  v          - Start or cancel a selection
  a          - Annotate the selection
  Tab        - Switch between pages and the annotation panel
  Enter      - Jump to the selected annotation
  r, e, d    - Reply, edit reply, delete
  c, x       - Copy, export
  ?          - Toggle help
  q          - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// runProgram runs the bubbletea program. Tests replace it.
var runProgram = func(app *tui.App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if documentService == nil {
		return errors.New("document service not configured")
	}

	ports := tui.NewPorts(documentService, annotationService, exportService)
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))

	// The panel asks before deleting, so the service must not prompt on stdin.
	if assumeYes != nil {
		assumeYes(true)
		defer assumeYes(false)
	}

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
