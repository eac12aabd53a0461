package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lixenwraith/cellpaint/terminal"
)

const appName = "cellpaint"

// ErrInvalid marks a config value that failed validation
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Color  string `koanf:"color"`  // "auto", "truecolor" or "256"
	Frames int    `koanf:"frames"` // frames to render; 0 runs until interrupted
	FPS    int    `koanf:"fps"`
	Debug  bool   `koanf:"debug"` // log to logs/cellpaint.log

	Image   ImageConfig   `koanf:"image"`
	Caption CaptionConfig `koanf:"caption"`

	ink terminal.RGB
}

// ImageConfig selects the picture source
type ImageConfig struct {
	Path  string `koanf:"path"`  // empty renders the gradient test pattern
	Width int    `koanf:"width"` // columns; 0 fits the terminal
}

// CaptionConfig is text overlaid on the picture
type CaptionConfig struct {
	Text string `koanf:"text"`
	Ink  string `koanf:"ink"` // "#rrggbb" or a color name
	X    int    `koanf:"x"`
	Y    int    `koanf:"y"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Color:  "auto",
		Frames: 1,
		FPS:    10,
		Caption: CaptionConfig{
			Ink: "#ffffff",
			X:   1,
			Y:   1,
		},
		ink: terminal.RGB{R: 255, G: 255, B: 255},
	}
}

// Load reads TOML config files over the defaults, later files winning.
// Without paths the user config dir and ./cellpaint.toml are searched.
// Missing files are skipped.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	if len(paths) == 0 {
		paths = getConfigPaths()
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Image.Path = expandPath(cfg.Image.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/cellpaint/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./cellpaint.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Validate checks ranges and resolves the caption ink
func (c *Config) Validate() error {
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "", "auto", "truecolor", "24bit", "256":
	default:
		return fmt.Errorf("%w: color %q (want auto, truecolor or 256)", ErrInvalid, c.Color)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	}
	if c.Image.Width < 0 {
		return fmt.Errorf("%w: image.width %d", ErrInvalid, c.Image.Width)
	}

	ink, err := terminal.ParseColor(c.Caption.Ink)
	if err != nil {
		return fmt.Errorf("%w: caption.ink: %w", ErrInvalid, err)
	}
	c.ink = ink
	return nil
}

// ColorMode returns the configured mode; ok is false when detection should decide
func (c *Config) ColorMode() (mode terminal.ColorMode, ok bool) {
	switch c.Color {
	case "truecolor", "24bit":
		return terminal.ColorModeTrueColor, true
	case "256":
		return terminal.ColorMode256, true
	default:
		return terminal.ColorMode256, false
	}
}

// Ink returns the caption color resolved by Validate
func (c *Config) Ink() terminal.RGB {
	return c.ink
}
