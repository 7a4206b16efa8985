// Package config handles configuration loading and validation for toasty.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/toasty/internal/core/toast"
)

// Config holds the application configuration.
type Config struct {
	Toasts ToastsConfig `yaml:"toasts"`
	TUI    TUIConfig    `yaml:"tui"`
}

// ToastsConfig holds notification store settings.
type ToastsConfig struct {
	DefaultPosition  string        `yaml:"default_position"`
	MaxNotifications int           `yaml:"max_notifications"`
	DefaultDuration  time.Duration `yaml:"default_duration"`
	TickInterval     time.Duration `yaml:"tick_interval"`
}

// TUIConfig holds renderer settings.
type TUIConfig struct {
	Theme   string `yaml:"theme"`   // palette name, see styles.Themes
	Anchors string `yaml:"anchors"` // glob over anchor names; "*" draws all six
	Width   int    `yaml:"width"`   // toast width in cells
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Toasts: ToastsConfig{
			DefaultPosition:  string(toast.DefaultPosition),
			MaxNotifications: toast.DefaultMaxNotifications,
			DefaultDuration:  toast.DefaultDuration,
			TickInterval:     toast.DefaultTickInterval,
		},
		TUI: TUIConfig{
			Theme:   "tokyo-night",
			Anchors: "*",
			Width:   44,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Toasts.DefaultPosition == "" {
		c.Toasts.DefaultPosition = defaults.Toasts.DefaultPosition
	}
	if c.Toasts.MaxNotifications == 0 {
		c.Toasts.MaxNotifications = defaults.Toasts.MaxNotifications
	}
	if c.Toasts.DefaultDuration == 0 {
		c.Toasts.DefaultDuration = defaults.Toasts.DefaultDuration
	}
	if c.Toasts.TickInterval == 0 {
		c.Toasts.TickInterval = defaults.Toasts.TickInterval
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.Anchors == "" {
		c.TUI.Anchors = defaults.TUI.Anchors
	}
	if c.TUI.Width == 0 {
		c.TUI.Width = defaults.TUI.Width
	}
}

// StoreConfig converts the toast settings into a store configuration.
func (c *Config) StoreConfig() toast.Config {
	pos, _ := toast.ParsePosition(c.Toasts.DefaultPosition)
	return toast.Config{
		DefaultPosition:  pos,
		MaxNotifications: c.Toasts.MaxNotifications,
		DefaultDuration:  c.Toasts.DefaultDuration,
		TickInterval:     c.Toasts.TickInterval,
	}
}
