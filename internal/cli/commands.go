package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-bot/internal/config"
	"github.com/smokyabdulrahman/prayer-bot/internal/display"
	"github.com/smokyabdulrahman/prayer-bot/internal/prayer"
)

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the cities offered in the bot keyboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %-12s %9s %9s\n", "City", "Latitude", "Longitude")
			fmt.Fprintf(out, "  %-12s %9s %9s\n", "────", "────────", "─────────")
			for _, name := range prayer.CityNames() {
				c, _ := prayer.LookupCity(name)
				fmt.Fprintf(out, "  %s %9.4f %9.4f\n", padRight(name, 12), c.Latitude, c.Longitude)
			}
			return nil
		},
	}
}

// padRight pads s with spaces to width runes. Polish city names are not
// ASCII, so %-12s would misalign them.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of all supported Al Adhan API calculation methods.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := effectiveConfig(cmd).AlAdhan.Method

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported calculation methods:")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  %-4s %s\n", "ID", "Name")
			fmt.Fprintf(out, "  %-4s %s\n", "──", "────")
			for _, m := range prayer.CalculationMethods {
				line := fmt.Sprintf("  %-4d %s", m.ID, m.Name)
				if m.ID == current {
					line = display.Accent(line + "  <- in use")
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use --method <ID> or aladhan.method to select a calculation method.")
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Display the merged configuration.\nThe bot token is redacted.",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	out := cmd.OutOrStdout()

	source := FlagConfig
	if source == "" {
		path, err := config.Path()
		if err != nil {
			return err
		}
		source = path
	}
	fmt.Fprintf(out, "  Configuration (%s)\n\n", source)

	for _, key := range config.Keys {
		val, err := cfg.Get(key)
		if err != nil {
			return err
		}
		shown := val
		if shown == "" {
			shown = display.Gray("(not set)")
		}
		if key == "aladhan.method" {
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(out, "  %-24s %s\n", key, shown)
	}
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method name to the numeric value.
func formatMethodValue(val string) string {
	id, err := strconv.Atoi(val)
	if err != nil {
		return val
	}
	if m, ok := prayer.LookupMethod(id); ok {
		return fmt.Sprintf("%s (%s)", val, m.Name)
	}
	return val
}
