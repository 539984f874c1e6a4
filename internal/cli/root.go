package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-bot/internal/api"
	"github.com/smokyabdulrahman/prayer-bot/internal/config"
	"github.com/smokyabdulrahman/prayer-bot/internal/format"
	"github.com/smokyabdulrahman/prayer-bot/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagConfig    string
	FlagAPIURL    string
	FlagMethod    int
	FlagTimezone  string
	FlagLogLevel  string
	FlagLogFormat string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// buildVersion is the version passed to NewRootCmd.
var buildVersion = "dev"

// NewRootCmd creates the root command for the prayer-bot binary.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	buildVersion = version

	rootCmd := &cobra.Command{
		Use:     "prayer-bot",
		Short:   "Telegram bot for Islamic prayer times",
		Long:    "A Telegram bot that shows Islamic prayer times in Russian, powered by the Al Adhan API.\nWithout a subcommand it runs the bot.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(FlagConfig)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: run the bot.
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagConfig, "config", "", "Config file (default: ./config.yaml or ~/.config/prayer-bot/config.yaml)")
	pf.StringVar(&FlagAPIURL, "aladhan-url", "", "Override the Al Adhan API base URL")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (0-23)")
	pf.StringVar(&FlagTimezone, "timezone", "", "Override the display timezone")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&FlagLogFormat, "log-format", "", "Log format: json or console")

	// Register subcommands.
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newCitiesCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "aladhan-url") {
		cfg.AlAdhan.URL = FlagAPIURL
	}
	if flagWasSet(flags, root, "method") {
		cfg.AlAdhan.Method = FlagMethod
	}
	if flagWasSet(flags, root, "timezone") {
		cfg.Display.Timezone = FlagTimezone
	}
	if flagWasSet(flags, root, "log-level") {
		cfg.Log.Level = FlagLogLevel
	}
	if flagWasSet(flags, root, "log-format") {
		cfg.Log.Format = FlagLogFormat
	}

	return cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// newClient builds the Al Adhan client from the merged config.
func newClient(cfg *config.Config, logger zerolog.Logger) *api.Client {
	return api.NewClient(
		api.WithBaseURL(cfg.AlAdhan.URL),
		api.WithMethod(cfg.AlAdhan.Method),
		api.WithTimeout(cfg.AlAdhan.Timeout),
		api.WithDefaultCountry(cfg.AlAdhan.Country),
		api.WithLogger(logger),
	)
}

// previewSetup validates cfg and returns what the preview commands need.
// Logs go to stderr so they never mix with the rendered output.
func previewSetup(cmd *cobra.Command) (*api.Client, *format.Formatter, error) {
	cfg := effectiveConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	return newClient(cfg, logger), format.New(format.WithLocation(loc)), nil
}
