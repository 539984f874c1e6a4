// Package config loads the bot configuration.
//
// Sources, lowest priority first: defaults, a YAML config file, a .env file,
// environment variables, the Docker secret holding the bot token. CLI flags
// are merged on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configDirName  = "prayer-bot"
	configFileName = "config"
	envPrefix      = "PRAYER_BOT"
)

// secretPath is where Docker mounts the bot token secret.
var secretPath = "/run/secrets/telegram_bot_token"

// Keys lists every configuration key, in display order.
var Keys = []string{
	"bot.token", "bot.workers", "bot.poll_timeout", "bot.debug",
	"aladhan.url", "aladhan.method", "aladhan.timeout", "aladhan.country",
	"display.timezone", "display.locate_timezone",
	"log.level", "log.format",
	"ops.addr",
}

// Config holds all settings of the bot.
type Config struct {
	Bot     BotConfig     `mapstructure:"bot"`
	AlAdhan AlAdhanConfig `mapstructure:"aladhan"`
	Display DisplayConfig `mapstructure:"display"`
	Log     LogConfig     `mapstructure:"log"`
	Ops     OpsConfig     `mapstructure:"ops"`
}

// BotConfig holds Telegram settings.
type BotConfig struct {
	Token       string `mapstructure:"token"`
	Workers     int    `mapstructure:"workers"`
	PollTimeout int    `mapstructure:"poll_timeout"` // seconds
	Debug       bool   `mapstructure:"debug"`
}

// AlAdhanConfig holds provider settings.
type AlAdhanConfig struct {
	URL     string        `mapstructure:"url"`
	Method  int           `mapstructure:"method"`
	Timeout time.Duration `mapstructure:"timeout"`
	Country string        `mapstructure:"country"`
}

// DisplayConfig controls how dates are shown.
type DisplayConfig struct {
	Timezone       string `mapstructure:"timezone"`
	LocateTimezone bool   `mapstructure:"locate_timezone"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// OpsConfig holds the health and metrics server settings.
type OpsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the server
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.workers", 4)
	v.SetDefault("bot.poll_timeout", 60)
	v.SetDefault("bot.debug", false)
	v.SetDefault("aladhan.url", "https://api.aladhan.com/v1")
	v.SetDefault("aladhan.method", 3)
	v.SetDefault("aladhan.timeout", 10*time.Second)
	v.SetDefault("aladhan.country", "Poland")
	v.SetDefault("display.timezone", "Europe/Warsaw")
	v.SetDefault("display.locate_timezone", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ops.addr", ":9090")
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName+".yaml"), nil
}

// Load reads the configuration. An explicit path must exist; without one,
// config.yaml is searched in the working directory and in Dir(), and a
// missing file is not an error.
func Load(path string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("bot.token", envPrefix+"_BOT_TOKEN", "BOT_TOKEN", "TELEGRAM_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token env: %w", err)
	}
	if err := v.BindEnv("aladhan.url", envPrefix+"_ALADHAN_URL", "ALADHAN_API_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind provider url env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if token := secretToken(); token != "" {
		cfg.Bot.Token = token
	}
	cfg.Bot.Token = strings.TrimSpace(cfg.Bot.Token)

	return &cfg, nil
}

func secretToken() string {
	data, err := os.ReadFile(secretPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Validate checks values that would make the bot misbehave.
func (c *Config) Validate() error {
	if c.AlAdhan.Method < 0 || c.AlAdhan.Method > 23 {
		return fmt.Errorf("invalid aladhan.method %d: must be 0-23", c.AlAdhan.Method)
	}
	if c.AlAdhan.Timeout <= 0 {
		return fmt.Errorf("invalid aladhan.timeout %s: must be positive", c.AlAdhan.Timeout)
	}
	if c.Bot.Workers <= 0 {
		return fmt.Errorf("invalid bot.workers %d: must be positive", c.Bot.Workers)
	}
	if c.Bot.PollTimeout < 0 {
		return fmt.Errorf("invalid bot.poll_timeout %d: must not be negative", c.Bot.PollTimeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// RequireToken fails when no bot token was found.
func (c *Config) RequireToken() error {
	if c.Bot.Token == "" {
		return errors.New("bot token not found: set BOT_TOKEN, TELEGRAM_BOT_TOKEN or mount " + secretPath)
	}
	return nil
}

// Location loads the display timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid display.timezone %q: %w", c.Display.Timezone, err)
	}
	return loc, nil
}

// Get returns the string value of a config key. The token is redacted.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "bot.token":
		return redact(c.Bot.Token), nil
	case "bot.workers":
		return strconv.Itoa(c.Bot.Workers), nil
	case "bot.poll_timeout":
		return strconv.Itoa(c.Bot.PollTimeout), nil
	case "bot.debug":
		return strconv.FormatBool(c.Bot.Debug), nil
	case "aladhan.url":
		return c.AlAdhan.URL, nil
	case "aladhan.method":
		return strconv.Itoa(c.AlAdhan.Method), nil
	case "aladhan.timeout":
		return c.AlAdhan.Timeout.String(), nil
	case "aladhan.country":
		return c.AlAdhan.Country, nil
	case "display.timezone":
		return c.Display.Timezone, nil
	case "display.locate_timezone":
		return strconv.FormatBool(c.Display.LocateTimezone), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.format":
		return c.Log.Format, nil
	case "ops.addr":
		return c.Ops.Addr, nil
	default:
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-2:]
}
