package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var isoCmd = &cobra.Command{
	Use:   "iso [image]",
	Short: "Generate isometric projections of an image",
	Long: `Generate top, left and right isometric projections of an image, plus their
mirrored versions, at every configured scale (see 'folio config show').

Use "-" to read the image from stdin. With --paste the input is also saved
as a timestamped PNG next to the projections.

Examples:
  folio iso diagram.png --out ./iso
  pbpaste | folio iso - --paste`,
	Args: cobra.ExactArgs(1),
	RunE: runIso,
}

var (
	isoOutDir string
	isoPaste  bool
)

func init() {
	isoCmd.Flags().StringVarP(&isoOutDir, "out", "o", ".", "Output directory")
	isoCmd.Flags().BoolVar(&isoPaste, "paste", false, "Save the input as a pasted image first")
	rootCmd.AddCommand(isoCmd)
}

func runIso(cmd *cobra.Command, args []string) error {
	if isometricService == nil {
		return errors.New("isometric service not configured")
	}

	data, err := readImageArg(cmd, args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	if isoPaste {
		path, err := isometricService.SavePasted(ctx, data, isoOutDir)
		if err != nil {
			return fmt.Errorf("failed to save pasted image: %w", err)
		}
		cmd.Printf("Saved %s\n", path)
	}

	variants, err := isometricService.Generate(ctx, data, isoOutDir)
	if err != nil {
		return fmt.Errorf("failed to generate projections: %w", err)
	}

	for _, v := range variants {
		cmd.Printf("  %-10s %5gx  %s\n", v.Direction, v.Scale, v.Path)
	}
	cmd.Printf("Total: %d images\n", len(variants))
	return nil
}

func readImageArg(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	return data, nil
}
