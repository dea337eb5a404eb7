package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/textutil"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List annotations",
	Long:  `List annotations in reading order: by page, then by position on the page.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print annotations as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if _, err := ensureDocument(commandContext(cmd)); err != nil {
		return err
	}

	panel := annotationService.Panel()

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(panel.Entries); err != nil {
			return fmt.Errorf("failed to encode annotations: %w", err)
		}
		return nil
	}

	if len(panel.Entries) == 0 {
		cmd.Println(panel.Placeholder)
		return nil
	}

	for i := range panel.Entries {
		a := &panel.Entries[i]
		cmd.Printf("[%d] Page %d\n", a.ID, a.PageNumber)
		cmd.Printf("    %s\n", textutil.SingleLine(textutil.TerminalSafe(a.Text)))
		for j, reply := range a.Replies {
			cmd.Printf("      %d. %s\n", j+1, textutil.SingleLine(textutil.TerminalSafe(reply)))
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d annotations\n", len(panel.Entries))
	return nil
}
