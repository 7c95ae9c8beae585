// Package config loads cardreel's YAML configuration: the width tier table,
// auto-play and debounce timings, and theme colors.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kraitsura/cardreel/pkg/carousel"
)

// TierConfig is one viewport bucket in the config file. MaxWidth 0 (or
// omitted) marks the default tier used when the terminal is wider than every
// bounded tier.
type TierConfig struct {
	Name     string `yaml:"name,omitempty"`
	MaxWidth int    `yaml:"max_width,omitempty"`
	PerView  int    `yaml:"per_view"`
}

// ThemeConfig holds the accent colors used by the TUI and the SVG export.
type ThemeConfig struct {
	Accent string `yaml:"accent,omitempty"`
	Border string `yaml:"border,omitempty"`
	Subtle string `yaml:"subtle,omitempty"`
	CardBg string `yaml:"card_bg,omitempty"`
	TextFg string `yaml:"text_fg,omitempty"`
}

// Config is the full cardreel configuration.
type Config struct {
	Tiers              []TierConfig `yaml:"tiers,omitempty"`
	AutoPlayIntervalMs int          `yaml:"auto_play_interval_ms"`
	ResizeDebounceMs   int          `yaml:"resize_debounce_ms"`
	// TransitionMs is cosmetic: it only feeds the CSS transition emitted
	// by the SVG export, never the slide math.
	TransitionMs int         `yaml:"transition_ms"`
	Theme        ThemeConfig `yaml:"theme,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Tiers: []TierConfig{
			{Name: "narrow", MaxWidth: 80, PerView: 1},
			{Name: "medium", MaxWidth: 120, PerView: 2},
			{Name: "wide", PerView: 3},
		},
		AutoPlayIntervalMs: 6000,
		ResizeDebounceMs:   150,
		TransitionMs:       400,
		Theme: ThemeConfig{
			Accent: "#BD93F9",
			Border: "#6272A4",
			Subtle: "#44475A",
			CardBg: "#282A36",
			TextFg: "#F8F8F2",
		},
	}
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reel", "config.yaml")
}

// Load reads the config at path, falling back to Default when path is empty
// or the file does not exist. A present-but-broken file is an error; silent
// fallback there would hide typos.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize coerces out-of-range values back into usable ones rather than
// failing: a broken tier degrades to a single-card view.
func (c *Config) normalize() {
	if len(c.Tiers) == 0 {
		c.Tiers = Default().Tiers
	}
	for i := range c.Tiers {
		if c.Tiers[i].PerView < 1 {
			c.Tiers[i].PerView = 1
		}
	}
	if c.AutoPlayIntervalMs < 0 {
		c.AutoPlayIntervalMs = 0
	}
	if c.ResizeDebounceMs <= 0 {
		c.ResizeDebounceMs = 150
	}
	if c.TransitionMs < 0 {
		c.TransitionMs = 0
	}
}

// TierTable converts the configured tiers for the slide planner.
func (c Config) TierTable() carousel.TierTable {
	table := make(carousel.TierTable, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		table = append(table, carousel.Tier{
			Name:     t.Name,
			MaxWidth: t.MaxWidth,
			PerView:  t.PerView,
		})
	}
	return table
}

// AutoPlayInterval returns the auto-play period, zero meaning disabled.
func (c Config) AutoPlayInterval() time.Duration {
	return time.Duration(c.AutoPlayIntervalMs) * time.Millisecond
}

// ResizeDebounce returns the resize quiet period.
func (c Config) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// Transition returns the cosmetic transition duration for exports.
func (c Config) Transition() time.Duration {
	return time.Duration(c.TransitionMs) * time.Millisecond
}
