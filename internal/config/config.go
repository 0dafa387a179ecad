package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment-variable overrides.
const EnvPrefix = "QUILL_"

// Config is the full editor configuration.
type Config struct {
	Editor Editor `toml:"editor"`
}

// Editor holds the options the editing session consumes.
type Editor struct {
	// TabWidth is the display width of a tab stop.
	TabWidth int `toml:"tab_width"`

	// LineEnding selects the terminator written on save: "lf", "crlf",
	// "cr", or "auto" to keep whatever the file came in with.
	LineEnding string `toml:"line_ending"`

	// ScrollMargin is the number of rows kept visible between the cursor
	// and the viewport edge while scrolling.
	ScrollMargin int `toml:"scroll_margin"`

	// PageOverlap is the number of rows a page movement keeps in common
	// with the previous page.
	PageOverlap int `toml:"page_overlap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: Editor{
			TabWidth:     4,
			LineEnding:   "auto",
			ScrollMargin: 2,
			PageOverlap:  2,
		},
	}
}

// Load reads the TOML file at path, layered over the defaults and under any
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Defaults stand.
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays QUILL_-prefixed environment variables. Unparseable
// values are ignored rather than failing the whole load.
func applyEnv(cfg *Config) {
	if v, ok := envInt("TAB_WIDTH"); ok {
		cfg.Editor.TabWidth = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LINE_ENDING"); ok {
		cfg.Editor.LineEnding = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := envInt("SCROLL_MARGIN"); ok {
		cfg.Editor.ScrollMargin = v
	}
	if v, ok := envInt("PAGE_OVERLAP"); ok {
		cfg.Editor.PageOverlap = v
	}
}

func envInt(key string) (int, bool) {
	raw, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate rejects values the editor cannot operate with.
func (c Config) Validate() error {
	if c.Editor.TabWidth < 1 {
		return fmt.Errorf("editor.tab_width must be at least 1, got %d", c.Editor.TabWidth)
	}
	if c.Editor.ScrollMargin < 0 {
		return fmt.Errorf("editor.scroll_margin must not be negative, got %d", c.Editor.ScrollMargin)
	}
	if c.Editor.PageOverlap < 0 {
		return fmt.Errorf("editor.page_overlap must not be negative, got %d", c.Editor.PageOverlap)
	}
	switch c.Editor.LineEnding {
	case "auto", "lf", "crlf", "cr":
	default:
		return fmt.Errorf("editor.line_ending must be auto, lf, crlf, or cr, got %q", c.Editor.LineEnding)
	}
	return nil
}
