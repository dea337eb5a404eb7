package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export [annotation-id...]",
	Short: "Export annotations as text",
	Long: `Format annotations with a template and copy the result to the clipboard.

With no IDs every annotation is exported, ordered by page and position.
Without --template you are asked to choose one; when there is no terminal
to ask on, use --template or --fallback.

Examples:
  folio export --template quoted-page
  folio export 1700000000000 1700000000001 -t plain
  folio export --fallback --print`,
	RunE: runExport,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List export templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

var (
	exportTemplate string
	exportFallback bool
	exportPrint    bool
)

// isInteractive reports whether the template chooser can prompt.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Export template (see 'folio templates')")
	exportCmd.Flags().BoolVar(&exportFallback, "fallback", false, "Use the default template without asking")
	exportCmd.Flags().BoolVar(&exportPrint, "print", false, "Print only; do not copy to the clipboard")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if _, err := ensureDocument(commandContext(cmd)); err != nil {
		return err
	}

	tmpl, err := chooseTemplate(cmd)
	if err != nil {
		return err
	}

	var text string
	if exportPrint {
		text, err = exportService.Format(tmpl, ids...)
	} else {
		text, err = exportService.Export(commandContext(cmd), tmpl, ids...)
	}
	if err != nil {
		return fmt.Errorf("failed to export annotations: %w", err)
	}

	cmd.Print(text)
	if !exportPrint {
		cmd.PrintErrln("Copied!")
	}
	return nil
}

// chooseTemplate resolves the template from flags or asks for one.
// An empty result makes the service return domain.ErrTemplateRequired.
func chooseTemplate(cmd *cobra.Command) (domain.ExportTemplate, error) {
	switch {
	case exportTemplate != "":
		tmpl := domain.ExportTemplate(exportTemplate)
		if !tmpl.IsValid() {
			return "", fmt.Errorf("%q: %w", exportTemplate, domain.ErrUnknownTemplate)
		}
		return tmpl, nil
	case exportFallback:
		return exportService.Fallback(), nil
	case !isInteractive():
		return "", nil
	}

	templates := exportService.Templates()
	cmd.PrintErrln("Select Export Template")
	cmd.PrintErrln("----------------------")
	for i, t := range templates {
		cmd.PrintErrf("  %d. %s (%s)\n", i+1, t.Description(), t)
	}
	cmd.PrintErr("\nEnter choice: ")

	input := readLine(bufio.NewReader(cmd.InOrStdin()))
	idx := parseChoice(input, len(templates), 0)
	if idx == 0 {
		return "", nil
	}
	return templates[idx-1], nil
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	fallback := exportService.Fallback()
	cmd.Println("Export Templates")
	cmd.Println("================")
	for _, t := range exportService.Templates() {
		marker := " "
		if t == fallback {
			marker = "*"
		}
		cmd.Printf("%s %-14s %s\n", marker, t, t.Description())
	}
	cmd.Println()
	cmd.Println("* default for --fallback")
	return nil
}
