package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every annotation",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var copyCmd = &cobra.Command{
	Use:   "copy [annotation-id]",
	Short: "Copy an annotation's text to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

func init() {
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(copyCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if _, err := ensureDocument(commandContext(cmd)); err != nil {
		return err
	}

	if err := annotationService.Clear(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to clear annotations: %w", err)
	}

	cmd.Println("All annotations removed.")
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
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

	if err := annotationService.CopyText(id); err != nil {
		return fmt.Errorf("failed to copy annotation: %w", err)
	}

	cmd.Println("Copied!")
	return nil
}
