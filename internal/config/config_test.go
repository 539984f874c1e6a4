package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points every config source at empty temp locations.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("PRAYER_BOT_BOT_TOKEN", "")
	t.Setenv("ALADHAN_API_URL", "")

	old := secretPath
	secretPath = filepath.Join(dir, "no-such-secret")
	t.Cleanup(func() { secretPath = old })

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", "prayer-bot"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", "prayer-bot"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	path, err := Path()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", "prayer-bot", "config.yaml"); path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Bot.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.Bot.Token)
	}
	if cfg.Bot.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Bot.Workers)
	}
	if cfg.Bot.PollTimeout != 60 {
		t.Errorf("PollTimeout = %d, want 60", cfg.Bot.PollTimeout)
	}
	if cfg.AlAdhan.URL != "https://api.aladhan.com/v1" {
		t.Errorf("URL = %q", cfg.AlAdhan.URL)
	}
	if cfg.AlAdhan.Method != 3 {
		t.Errorf("Method = %d, want 3", cfg.AlAdhan.Method)
	}
	if cfg.AlAdhan.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.AlAdhan.Timeout)
	}
	if cfg.AlAdhan.Country != "Poland" {
		t.Errorf("Country = %q, want Poland", cfg.AlAdhan.Country)
	}
	if cfg.Display.Timezone != "Europe/Warsaw" {
		t.Errorf("Timezone = %q", cfg.Display.Timezone)
	}
	if cfg.Ops.Addr != ":9090" {
		t.Errorf("Ops.Addr = %q, want :9090", cfg.Ops.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bot.yaml")
	writeFile(t, path, `
bot:
  token: file-token
  workers: 8
aladhan:
  url: http://localhost:8080/v1
  method: 2
  timeout: 3s
display:
  timezone: Europe/Berlin
log:
  level: debug
  format: console
ops:
  addr: ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Token != "file-token" {
		t.Errorf("Token = %q", cfg.Bot.Token)
	}
	if cfg.Bot.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Bot.Workers)
	}
	if cfg.AlAdhan.URL != "http://localhost:8080/v1" {
		t.Errorf("URL = %q", cfg.AlAdhan.URL)
	}
	if cfg.AlAdhan.Method != 2 {
		t.Errorf("Method = %d, want 2", cfg.AlAdhan.Method)
	}
	if cfg.AlAdhan.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.AlAdhan.Timeout)
	}
	if cfg.Display.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", cfg.Display.Timezone)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Ops.Addr != "" {
		t.Errorf("Ops.Addr = %q, want empty", cfg.Ops.Addr)
	}
	if cfg.AlAdhan.Country != "Poland" {
		t.Errorf("unset keys should keep defaults, Country = %q", cfg.AlAdhan.Country)
	}
}

func TestLoad_SearchesConfigDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "prayer-bot", "config.yaml"), "bot:\n  workers: 2\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Workers != 2 {
		t.Errorf("Workers = %d, want 2 from config dir", cfg.Bot.Workers)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "bot: [unclosed\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PRAYER_BOT_BOT_WORKERS", "16")
	t.Setenv("PRAYER_BOT_LOG_LEVEL", "warn")
	t.Setenv("ALADHAN_API_URL", "http://mirror.test/v1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Workers != 16 {
		t.Errorf("Workers = %d, want 16", cfg.Bot.Workers)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.AlAdhan.URL != "http://mirror.test/v1" {
		t.Errorf("URL = %q, want ALADHAN_API_URL value", cfg.AlAdhan.URL)
	}
}

func TestLoad_TokenSources(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		secret string
		want   string
	}{
		{"none", nil, "", ""},
		{"telegram env", map[string]string{"TELEGRAM_BOT_TOKEN": "tg"}, "", "tg"},
		{"bot env wins over telegram env", map[string]string{"BOT_TOKEN": "bot", "TELEGRAM_BOT_TOKEN": "tg"}, "", "bot"},
		{"secret wins over env", map[string]string{"BOT_TOKEN": "bot"}, "  secret\n", "secret"},
		{"blank secret ignored", map[string]string{"BOT_TOKEN": " bot "}, "   ", "bot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.secret != "" {
				secretPath = filepath.Join(dir, "telegram_bot_token")
				writeFile(t, secretPath, tt.secret)
			}

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Bot.Token != tt.want {
				t.Errorf("Token = %q, want %q", cfg.Bot.Token, tt.want)
			}
		})
	}
}

// --- Validate / RequireToken ---

func validConfig() Config {
	return Config{
		Bot:     BotConfig{Workers: 4, PollTimeout: 60},
		AlAdhan: AlAdhanConfig{Method: 3, Timeout: 10 * time.Second},
		Display: DisplayConfig{Timezone: "Europe/Warsaw"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"method zero is valid", func(c *Config) { c.AlAdhan.Method = 0 }, ""},
		{"method too high", func(c *Config) { c.AlAdhan.Method = 24 }, "aladhan.method"},
		{"method negative", func(c *Config) { c.AlAdhan.Method = -1 }, "aladhan.method"},
		{"zero timeout", func(c *Config) { c.AlAdhan.Timeout = 0 }, "aladhan.timeout"},
		{"no workers", func(c *Config) { c.Bot.Workers = 0 }, "bot.workers"},
		{"negative poll timeout", func(c *Config) { c.Bot.PollTimeout = -1 }, "bot.poll_timeout"},
		{"bad timezone", func(c *Config) { c.Display.Timezone = "Mars/Olympus" }, "display.timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequireToken(t *testing.T) {
	c := validConfig()
	if err := c.RequireToken(); err == nil {
		t.Error("expected error for empty token")
	}
	c.Bot.Token = "123:abc"
	if err := c.RequireToken(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// --- Get ---

func TestGet_AllKeys(t *testing.T) {
	c := validConfig()
	for _, key := range Keys {
		if _, err := c.Get(key); err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
	}
}

func TestGet_Values(t *testing.T) {
	c := validConfig()
	c.Bot.Token = "1234567890:secret"

	tests := map[string]string{
		"bot.token":        "1234...et",
		"bot.workers":      "4",
		"aladhan.method":   "3",
		"aladhan.timeout":  "10s",
		"display.timezone": "Europe/Warsaw",
	}
	for key, want := range tests {
		got, err := c.Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	c := validConfig()
	if _, err := c.Get("nope"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestRedact(t *testing.T) {
	tests := map[string]string{
		"":           "",
		"short":      "***",
		"12345678":   "***",
		"1234567890": "1234...90",
	}
	for in, want := range tests {
		if got := redact(in); got != want {
			t.Errorf("redact(%q) = %q, want %q", in, got, want)
		}
	}
}
