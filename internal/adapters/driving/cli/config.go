package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change folio settings.

Settings live in ~/.folio/config.toml. Changes apply to the next command.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting by its key.

Run 'folio config keys' for the list of keys. Lists are comma separated.

Examples:
  folio config set export.default_template quoted-page
  folio config set highlight.color "#A7F3D0"
  folio config set iso.scales 0.5,1`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Render]")
	cmd.Printf("  Max scale:       %g\n", settings.Render.MaxScale)
	cmd.Printf("  Container width: %g\n", settings.Render.ContainerWidth)
	cmd.Printf("  Concurrency:     %d\n", settings.Render.Concurrency)
	cmd.Println()

	cmd.Println("[Layout]")
	cmd.Printf("  Resize debounce: %dms\n", settings.Layout.DebounceMillis)
	cmd.Printf("  Page gap:        %g\n", settings.Layout.PageGap)
	cmd.Println()

	cmd.Println("[Storage]")
	if settings.Storage.QuotaBytes > 0 {
		cmd.Printf("  Quota:      %d bytes\n", settings.Storage.QuotaBytes)
	} else {
		cmd.Printf("  Quota:      unlimited\n")
	}
	cmd.Printf("  Chunk size: %d bytes\n", settings.Storage.ChunkSize)
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Default template: %s (%s)\n",
		settings.Export.DefaultTemplate, settings.Export.DefaultTemplate.Description())
	cmd.Println()

	cmd.Println("[Highlight]")
	cmd.Printf("  Color:       %s\n", settings.Highlight.Color)
	cmd.Printf("  Pulse color: %s\n", settings.Highlight.PulseColor)
	cmd.Printf("  Pulse:       %dms\n", settings.Highlight.PulseMillis)
	cmd.Println()

	cmd.Println("[Isometric]")
	scales := make([]string, len(settings.Iso.Scales))
	for i, s := range settings.Iso.Scales {
		scales[i] = strconv.FormatFloat(s, 'f', -1, 64)
	}
	cmd.Printf("  Scales: %s\n", strings.Join(scales, ", "))

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
