package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var replyCmd = &cobra.Command{
	Use:   "reply [annotation-id] [text]",
	Short: "Add, edit or delete a reply",
	Long: `Add a reply to an annotation, or change an existing one.

Replies are numbered from 1 as shown by 'folio list'. Editing a reply to
empty text deletes it.

Examples:
  folio reply 1700000000000 "needs a source"
  folio reply 1700000000000 --edit 2 "needs a better source"
  folio reply 1700000000000 --delete 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReply,
}

var (
	replyEdit   string
	replyDelete string
)

func init() {
	replyCmd.Flags().StringVarP(&replyEdit, "edit", "e", "", "Replace reply number N")
	replyCmd.Flags().StringVarP(&replyDelete, "delete", "d", "", "Delete reply number N")
	replyCmd.MarkFlagsMutuallyExclusive("edit", "delete")
	rootCmd.AddCommand(replyCmd)
}

func runReply(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := ensureDocument(commandContext(cmd)); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	text := strings.Join(args[1:], " ")

	switch {
	case replyDelete != "":
		idx, err := parseReplyNumber(replyDelete)
		if err != nil {
			return err
		}
		if err := annotationService.DeleteReply(ctx, id, idx); err != nil {
			return fmt.Errorf("failed to delete reply: %w", err)
		}
		cmd.Printf("Reply %d deleted.\n", idx+1)

	case replyEdit != "":
		idx, err := parseReplyNumber(replyEdit)
		if err != nil {
			return err
		}
		if err := annotationService.EditReply(ctx, id, idx, text); err != nil {
			return fmt.Errorf("failed to edit reply: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			cmd.Printf("Reply %d deleted.\n", idx+1)
		} else {
			cmd.Printf("Reply %d updated.\n", idx+1)
		}

	default:
		if err := annotationService.AddReply(ctx, id, text); err != nil {
			return fmt.Errorf("failed to add reply: %w", err)
		}
		cmd.Printf("Reply added to annotation %d.\n", id)
	}

	return nil
}
