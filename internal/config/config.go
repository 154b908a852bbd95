package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AppName is used for the configuration directory and the log prefix
const AppName = "mm3commander"

// Config holds the commander preferences. The Mailman connection itself is
// read from mailman.cfg, see LoadMailmanConfig.
type Config struct {
	// Keyboard shortcuts
	Keys KeyBindings `json:"keys"`

	// Timeout bounds every REST call, e.g. "30s"
	Timeout string `json:"timeout"`

	// UnknownKeyPauseMs is how long the "Unknown option" notice stays up
	UnknownKeyPauseMs int `json:"unknown_key_pause_ms"`

	// Logging
	LogFile string `json:"log_file"`

	// Theme is a YAML color file (relative to the config dir or absolute)
	Theme string `json:"theme"`
}

// KeyBindings defines the single-key shortcuts of the main screen
type KeyBindings struct {
	GlobalConfig string `json:"global_config"`
	Quit         string `json:"quit"`
	Members      string `json:"members"`
	Moderation   string `json:"moderation"`
	Settings     string `json:"settings"`
	Delete       string `json:"delete"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Keys:              DefaultKeyBindings(),
		Timeout:           "30s",
		UnknownKeyPauseMs: 1500,
		LogFile:           "",
		Theme:             "",
	}
}

// DefaultKeyBindings returns default keyboard shortcuts
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		GlobalConfig: "g",
		Quit:         "q",
		Members:      "m",
		Moderation:   "o",
		Settings:     "s",
		Delete:       "d",
	}
}

// LoadConfig loads the preferences file. A missing file yields the defaults;
// a file that exists but does not parse is an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(ExpandPath(configPath))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills values a partial file left empty
func (c *Config) applyDefaults() {
	def := DefaultKeyBindings()
	keys := []struct {
		cur *string
		def string
	}{
		{&c.Keys.GlobalConfig, def.GlobalConfig},
		{&c.Keys.Quit, def.Quit},
		{&c.Keys.Members, def.Members},
		{&c.Keys.Moderation, def.Moderation},
		{&c.Keys.Settings, def.Settings},
		{&c.Keys.Delete, def.Delete},
	}
	for _, k := range keys {
		if strings.TrimSpace(*k.cur) == "" {
			*k.cur = k.def
		}
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.UnknownKeyPauseMs < 0 {
		c.UnknownKeyPauseMs = 0
	}
}

// DefaultConfigDir returns ~/.config/mm3commander
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultConfigPath returns the default preferences file path
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.json")
}

// DefaultLogDir returns the default log directory path
func DefaultLogDir() string {
	return DefaultConfigDir()
}

// GetTimeout returns the parsed REST call timeout
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil && d >= 0 {
			return d
		}
	}
	return 30 * time.Second
}

// UnknownKeyPause returns the pause after reporting an unrecognized key
func (c *Config) UnknownKeyPause() time.Duration {
	return time.Duration(c.UnknownKeyPauseMs) * time.Millisecond
}

// ThemePath resolves the theme file against the config directory
func (c *Config) ThemePath() string {
	if strings.TrimSpace(c.Theme) == "" {
		return ""
	}
	p := ExpandPath(c.Theme)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(DefaultConfigDir(), p)
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
