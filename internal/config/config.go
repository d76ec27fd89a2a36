// Package config loads editor settings from TOML, applies defaults and
// range clamping, and hot-reloads the file when it changes on disk.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Bounds for validation. Out-of-range values clamp instead of failing,
// so a hand-edited config never prevents startup.
const (
	minMergeWindowMS = 100
	maxMergeWindowMS = 10000
	minUndoEntries   = 10
	maxUndoEntries   = 100000
	minCacheEntries  = 16
	maxCacheEntries  = 10000
)

// Config is the full editor configuration.
type Config struct {
	Appearance Appearance `toml:"appearance"`
	Layout     Layout     `toml:"layout"`
	Scroll     Scroll     `toml:"scroll"`
	Undo       Undo       `toml:"undo"`
}

// Appearance controls chrome and cursor behavior.
type Appearance struct {
	// CursorBlinkMS is the blink half-period; zero disables blinking.
	CursorBlinkMS int `toml:"cursor_blink_ms"`

	// ShowScrollbar toggles the right-edge scrollbar.
	ShowScrollbar bool `toml:"show_scrollbar"`
}

// Layout controls wrapping and the layout cache.
type Layout struct {
	// WrapWidth is the wrap width in cells; zero follows the viewport.
	WrapWidth int `toml:"wrap_width"`

	// ParagraphSpacing is the blank rows between paragraphs.
	ParagraphSpacing int `toml:"paragraph_spacing"`

	// MaxCachedParagraphs caps the layout cache.
	MaxCachedParagraphs int `toml:"max_cached_paragraphs"`

	// PageHeight is the rows per page in page mode.
	PageHeight int `toml:"page_height"`
}

// Scroll controls scrolling feel.
type Scroll struct {
	// Smooth animates scrolling instead of jumping.
	Smooth bool `toml:"smooth"`

	// WheelLines is the rows per wheel tick.
	WheelLines int `toml:"wheel_lines"`
}

// Undo controls the history stack.
type Undo struct {
	// MaxEntries caps the undo stack.
	MaxEntries int `toml:"max_entries"`

	// MergeWindowMS is the typing-coalescing window.
	MergeWindowMS int `toml:"merge_window_ms"`

	// MaxMergeLength caps a coalesced insertion's length.
	MaxMergeLength int `toml:"max_merge_length"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Appearance: Appearance{
			CursorBlinkMS: 500,
			ShowScrollbar: true,
		},
		Layout: Layout{
			WrapWidth:           0,
			ParagraphSpacing:    1,
			MaxCachedParagraphs: 150,
			PageHeight:          50,
		},
		Scroll: Scroll{
			Smooth:     true,
			WheelLines: 3,
		},
		Undo: Undo{
			MaxEntries:     1000,
			MergeWindowMS:  1000,
			MaxMergeLength: 100,
		},
	}
}

// Load reads path over the defaults. A missing file returns the
// defaults; malformed TOML returns an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps every setting into its legal range.
func (c *Config) Validate() {
	c.Appearance.CursorBlinkMS = clamp(c.Appearance.CursorBlinkMS, 0, 5000)
	c.Layout.WrapWidth = clamp(c.Layout.WrapWidth, 0, 1000)
	c.Layout.ParagraphSpacing = clamp(c.Layout.ParagraphSpacing, 0, 10)
	c.Layout.MaxCachedParagraphs = clamp(c.Layout.MaxCachedParagraphs, minCacheEntries, maxCacheEntries)
	c.Layout.PageHeight = clamp(c.Layout.PageHeight, 10, 1000)
	c.Scroll.WheelLines = clamp(c.Scroll.WheelLines, 1, 20)
	c.Undo.MaxEntries = clamp(c.Undo.MaxEntries, minUndoEntries, maxUndoEntries)
	c.Undo.MergeWindowMS = clamp(c.Undo.MergeWindowMS, minMergeWindowMS, maxMergeWindowMS)
	c.Undo.MaxMergeLength = clamp(c.Undo.MaxMergeLength, 1, 10000)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
