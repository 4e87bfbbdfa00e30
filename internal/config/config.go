// Package config provides configuration management for Countdown.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/viper"
)

// ErrUnknownKey is returned by Set for keys that are not part of Config.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds all configuration for the Countdown application.
type Config struct {
	Display  DisplayConfig  `mapstructure:"display"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Log      LogConfig      `mapstructure:"log"`
	Theme    ThemeConfig    `mapstructure:"theme"`
}

// DisplayConfig holds display settings.
type DisplayConfig struct {
	StartFullscreen bool `mapstructure:"start_fullscreen"`
	BigDigits       bool `mapstructure:"big_digits"`
}

// DefaultsConfig holds the text prefilled into the duration input.
type DefaultsConfig struct {
	Minutes string `mapstructure:"minutes"`
	Seconds string `mapstructure:"seconds"`
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorRunning   string `mapstructure:"color_running"`
	ColorPaused    string `mapstructure:"color_paused"`
	ColorExpired   string `mapstructure:"color_expired"`
	ColorTitle     string `mapstructure:"color_title"`
	ColorHelp      string `mapstructure:"color_help"`
	ColorDisabled  string `mapstructure:"color_disabled"`
	GradientStart  string `mapstructure:"gradient_start"`
	GradientEnd    string `mapstructure:"gradient_end"`
	IconApp        string `mapstructure:"icon_app"`
	IconPaused     string `mapstructure:"icon_paused"`
	IconFullscreen string `mapstructure:"icon_fullscreen"`
	IconWindowed   string `mapstructure:"icon_windowed"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorRunning:   "#7C6FE0",
		ColorPaused:    "#6B7280",
		ColorExpired:   "#E06C75",
		ColorTitle:     "#A0AEC0",
		ColorHelp:      "#95A5A6",
		ColorDisabled:  "#4B5563",
		GradientStart:  "#7C6FE0",
		GradientEnd:    "#A78BFA",
		IconApp:        "⏱",
		IconPaused:     "⏸",
		IconFullscreen: "⤢",
		IconWindowed:   "⤡",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			StartFullscreen: false,
			BigDigits:       true,
		},
		Theme: DefaultThemeConfig(),
	}
}

// LoadFrom loads the configuration from configPath, creating the file
// with defaults if it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SaveTo writes cfg to configPath.
func SaveTo(configPath string, cfg *Config) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	for key, value := range flatten(cfg) {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Set parses value for key, stores it in cfg and writes cfg to configPath.
func Set(configPath string, cfg *Config, key, value string) error {
	current, ok := flatten(cfg)[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	var parsed any = value
	if _, isBool := current.(bool); isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
		parsed = b
	}

	v := newViper(configPath)
	for k, val := range flatten(cfg) {
		v.Set(k, val)
	}
	v.Set(key, parsed)

	var updated Config
	if err := v.Unmarshal(&updated); err != nil {
		return fmt.Errorf("failed to apply %s: %w", key, err)
	}
	*cfg = updated
	return SaveTo(configPath, cfg)
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	flat := flatten(DefaultConfig())
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the flattened key/value view of cfg.
func Values(cfg *Config) map[string]any {
	return flatten(cfg)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".countdown", "config.toml"), nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	for key, value := range flatten(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}

func flatten(cfg *Config) map[string]any {
	return map[string]any{
		"display.start_fullscreen": cfg.Display.StartFullscreen,
		"display.big_digits":       cfg.Display.BigDigits,
		"defaults.minutes":         cfg.Defaults.Minutes,
		"defaults.seconds":         cfg.Defaults.Seconds,
		"log.file":                 cfg.Log.File,
		"theme.color_running":      cfg.Theme.ColorRunning,
		"theme.color_paused":       cfg.Theme.ColorPaused,
		"theme.color_expired":      cfg.Theme.ColorExpired,
		"theme.color_title":        cfg.Theme.ColorTitle,
		"theme.color_help":         cfg.Theme.ColorHelp,
		"theme.color_disabled":     cfg.Theme.ColorDisabled,
		"theme.gradient_start":     cfg.Theme.GradientStart,
		"theme.gradient_end":       cfg.Theme.GradientEnd,
		"theme.icon_app":           cfg.Theme.IconApp,
		"theme.icon_paused":        cfg.Theme.IconPaused,
		"theme.icon_fullscreen":    cfg.Theme.IconFullscreen,
		"theme.icon_windowed":      cfg.Theme.IconWindowed,
	}
}
