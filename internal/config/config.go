// Package config loads chartdeck configuration from YAML with environment
// overrides. A missing config file is not an error when no path was given;
// defaults describe a working local dashboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/avelin/chartdeck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidPort    = errors.New("invalid port")
	ErrInvalidRender  = errors.New("invalid render defaults")
	ErrNoSearchDirs   = errors.New("at least one search directory is required")
)

// Default values.
const (
	DefaultPort          = 8780
	DefaultHeight        = 600
	DefaultFrameDuration = 50
)

// Config holds all configuration for the dashboard process.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Assets AssetsConfig `yaml:"assets"`
	Render RenderConfig `yaml:"render"`
	Deck   DeckConfig   `yaml:"deck"`
}

// ServerConfig defines the HTTP listen address.
type ServerConfig struct {
	Host string `yaml:"host"` // empty = all interfaces
	Port int    `yaml:"port"`
}

// AssetsConfig defines where chart exports are looked up.
type AssetsConfig struct {
	// SearchDirs is the ordered fallback list probed for a chart filename.
	// Order is priority: primary location first, generic locations after.
	SearchDirs []string `yaml:"searchDirs"`
}

// RenderConfig defines display defaults applied when a deck entry is silent.
type RenderConfig struct {
	DefaultHeight int `yaml:"defaultHeight"` // pixels
	DefaultWidth  int `yaml:"defaultWidth"`  // pixels, 0 = no fixed width
	FrameDuration int `yaml:"frameDuration"` // ms, animation frame-advance
}

// DeckConfig points at the dashboard definition.
type DeckConfig struct {
	File string `yaml:"file"` // empty = built-in default deck
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Assets: AssetsConfig{SearchDirs: []string{".", "Figs", "Time Series", "Maps"}},
		Render: RenderConfig{
			DefaultHeight: DefaultHeight,
			FrameDuration: DefaultFrameDuration,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (if given), then environment overrides. A .env file in the working
// directory is honored if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays CHARTDECK_* environment variables onto the config.
func applyEnv(cfg *Config) {
	if host := os.Getenv("CHARTDECK_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("CHARTDECK_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if deck := os.Getenv("CHARTDECK_DECK"); deck != "" {
		cfg.Deck.File = deck
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if len(c.Assets.SearchDirs) == 0 {
		return ErrNoSearchDirs
	}
	if c.Render.DefaultHeight <= 0 {
		return fmt.Errorf("%w: defaultHeight %d", ErrInvalidRender, c.Render.DefaultHeight)
	}
	if c.Render.DefaultWidth < 0 {
		return fmt.Errorf("%w: defaultWidth %d", ErrInvalidRender, c.Render.DefaultWidth)
	}
	if c.Render.FrameDuration < 0 {
		return fmt.Errorf("%w: frameDuration %d", ErrInvalidRender, c.Render.FrameDuration)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
