// Package config loads the editor's TOML settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-edit/terminal"
)

// ErrInvalid marks a config that parsed but cannot be applied
var ErrInvalid = errors.New("invalid config")

// Actions are the names a [keys] table may bind
var Actions = []string{
	"open", "save", "quit", "copy", "paste", "mute",
	"up", "down", "left", "right",
	"page_up", "page_down", "home", "end",
	"backspace", "delete", "enter", "tab",
}

// Colors holds tcell color names, empty keeps the built-in color
type Colors struct {
	Text       string `toml:"text"`
	Background string `toml:"background"`
	Gutter     string `toml:"gutter"`
	Status     string `toml:"status"`
	Dialog     string `toml:"dialog"`
	Highlight  string `toml:"highlight"`
}

// Config is the decoded settings file
type Config struct {
	LogFile     string              `toml:"log_file"`
	Bell        bool                `toml:"bell"`
	Volume      float64             `toml:"volume"`
	LineNumbers bool                `toml:"line_numbers"`
	Mouse       bool                `toml:"mouse"`
	Colors      Colors              `toml:"colors"`
	Keys        map[string][]string `toml:"keys"`
}

// Default returns the settings used when no file exists
func Default() *Config {
	return &Config{
		Bell:        true,
		Volume:      0.5,
		LineNumbers: true,
		Mouse:       true,
		Keys:        make(map[string][]string),
	}
}

// Load reads path over the defaults
// A missing file is not an error; unknown keys, colors, actions or key names are
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks everything Decode cannot
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f outside [0, 1]", ErrInvalid, c.Volume)
	}
	for slot, name := range c.Colors.named() {
		if name != "" && tcell.GetColor(name) == tcell.ColorDefault && name != "default" {
			return fmt.Errorf("%w: color %s = %q", ErrInvalid, slot, name)
		}
	}
	_, err := c.Bindings()
	return err
}

// Bindings resolves the [keys] table into keys per action
func (c *Config) Bindings() (map[string][]terminal.Key, error) {
	out := make(map[string][]terminal.Key, len(c.Keys))
	for action, names := range c.Keys {
		if !slices.Contains(Actions, action) {
			return nil, fmt.Errorf("%w: unknown action %q", ErrInvalid, action)
		}
		keys := make([]terminal.Key, 0, len(names))
		for _, name := range names {
			k, ok := terminal.KeyByName(name)
			if !ok {
				return nil, fmt.Errorf("%w: action %s: unknown key %q", ErrInvalid, action, name)
			}
			keys = append(keys, k)
		}
		out[action] = keys
	}
	return out, nil
}

// Apply redefines palette slots for every configured color
func (c *Config) Apply(pal *terminal.Palette) {
	set := func(id terminal.ColorID, name string) {
		if name != "" {
			pal.Define(id, tcell.GetColor(name))
		}
	}
	set(terminal.ColorText, c.Colors.Text)
	set(terminal.ColorPaper, c.Colors.Background)
	set(terminal.ColorGutterPaper, c.Colors.Background)
	set(terminal.ColorGutter, c.Colors.Gutter)
	set(terminal.ColorStatusPaper, c.Colors.Status)
	set(terminal.ColorDialogPaper, c.Colors.Dialog)
	set(terminal.ColorHighlightPaper, c.Colors.Highlight)
}

func (c Colors) named() map[string]string {
	return map[string]string{
		"text":       c.Text,
		"background": c.Background,
		"gutter":     c.Gutter,
		"status":     c.Status,
		"dialog":     c.Dialog,
		"highlight":  c.Highlight,
	}
}
