package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/textutil"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [text]",
	Short: "Highlight text on a page",
	Long: `Find text on a page of the current document and highlight it.

The match ignores case and whitespace differences. The first match on the
page becomes the annotation.

Examples:
  folio annotate --page 3 "the quick brown fox"
  folio annotate -p 1 "abstract" --reply "check the citation"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnnotate,
}

var (
	annotatePage  int
	annotateReply string
)

func init() {
	annotateCmd.Flags().IntVarP(&annotatePage, "page", "p", 1, "Page number (1-based)")
	annotateCmd.Flags().StringVarP(&annotateReply, "reply", "r", "", "Attach a first reply")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if _, err := requireDocument(cmd); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	query := strings.Join(args, " ")

	if _, err := annotationService.SelectText(annotatePage, query); err != nil {
		return fmt.Errorf("failed to select text: %w", err)
	}
	a, err := annotationService.Annotate(ctx)
	if err != nil {
		return fmt.Errorf("failed to create annotation: %w", err)
	}

	if annotateReply != "" {
		if err := annotationService.AddReply(ctx, a.ID, annotateReply); err != nil {
			return fmt.Errorf("failed to add reply: %w", err)
		}
	}

	cmd.Printf("Annotation %d created on page %d: %s\n",
		a.ID, a.PageNumber, textutil.SingleLine(textutil.TerminalSafe(a.Text)))
	return nil
}
