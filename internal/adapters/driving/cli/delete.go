package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [annotation-id]",
	Short: "Delete an annotation and its replies",
	Long: `Delete an annotation and all of its replies.

You are asked to confirm first. Without a terminal the answer is no, so
scripts must pass --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if deleteYes && assumeYes != nil {
		assumeYes(true)
		defer assumeYes(false)
	}

	deleted, err := annotationService.Delete(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}
	if !deleted {
		cmd.Println("Cancelled.")
		return nil
	}

	cmd.Printf("Annotation %d deleted.\n", id)
	return nil
}
