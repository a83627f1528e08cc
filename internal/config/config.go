// Package config handles editor preferences loaded from TOML with environment
// variable overrides, and the data directory the editor writes to.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/amble/internal/highlight"
)

const (
	defaultTheme           = highlight.DefaultTheme
	defaultTabWidth        = 2
	defaultLineLengthGuide = 80
	defaultMaxResults      = 5
)

// Preferences is the root configuration structure.
type Preferences struct {
	Theme           string             `toml:"theme"`
	TabWidth        int                `toml:"tab_width"`
	SoftTabs        bool               `toml:"soft_tabs"`
	LineLengthGuide int                `toml:"line_length_guide"`
	LineWrapping    bool               `toml:"line_wrapping"`
	LogLevel        string             `toml:"log_level"`
	OpenMode        OpenModeConfig     `toml:"open_mode"`
	SearchSelect    SearchSelectConfig `toml:"search_select"`
	// LineCommentPrefix maps a file extension (without dot) to its comment
	// prefix, e.g. go = "//".
	LineCommentPrefix map[string]string `toml:"line_comment_prefix"`
	// Syntax maps a file extension to a chroma lexer name.
	Syntax map[string]string `toml:"syntax"`
}

// OpenModeConfig holds file index settings.
type OpenModeConfig struct {
	Exclusions []string `toml:"exclusions"`
}

// SearchSelectConfig holds result list settings shared by the search-select
// modes.
type SearchSelectConfig struct {
	MaxResults int `toml:"max_results"`
}

// Default returns the built-in preferences.
func Default() *Preferences {
	return &Preferences{
		Theme:           defaultTheme,
		TabWidth:        defaultTabWidth,
		SoftTabs:        true,
		LineLengthGuide: defaultLineLengthGuide,
		LineWrapping:    true,
		LogLevel:        "info",
		SearchSelect:    SearchSelectConfig{MaxResults: defaultMaxResults},
		LineCommentPrefix: map[string]string{
			"go": "//", "rs": "//", "js": "//", "ts": "//", "c": "//", "h": "//",
			"cpp": "//", "java": "//", "py": "#", "rb": "#", "sh": "#",
			"yml": "#", "yaml": "#", "toml": "#", "lua": "--", "sql": "--",
		},
		Syntax: map[string]string{},
	}
}

// Load reads preferences from path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Preferences, error) {
	prefs := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, prefs); err != nil {
				return nil, fmt.Errorf("failed to parse preferences: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat preferences: %w", err)
		}
	}

	applyEnvOverrides(prefs)

	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Validate returns an error if the preferences are invalid.
func (p *Preferences) Validate() error {
	var errs []error

	if !highlight.Exists(p.Theme) {
		errs = append(errs, fmt.Errorf("theme=%q is not a known theme", p.Theme))
	}
	if p.TabWidth < 1 || p.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("tab_width=%d must be between 1 and 16", p.TabWidth))
	}
	if p.LineLengthGuide < 0 {
		errs = append(errs, fmt.Errorf("line_length_guide=%d must not be negative", p.LineLengthGuide))
	}
	if p.SearchSelect.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("search_select.max_results=%d must be positive", p.SearchSelect.MaxResults))
	}
	if _, err := zerolog.ParseLevel(p.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", p.LogLevel, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the preferences.
func applyEnvOverrides(p *Preferences) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"AMBLE_THEME", func(v string) {
			if v != "" {
				p.Theme = v
			}
		}},
		{"AMBLE_LOG_LEVEL", func(v string) {
			if v != "" {
				p.LogLevel = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// LineCommentPrefixFor returns the comment prefix for path's extension.
func (p *Preferences) LineCommentPrefixFor(path string) (string, bool) {
	prefix, ok := p.LineCommentPrefix[extension(path)]
	return prefix, ok
}

// SyntaxFor returns the configured lexer name for path's extension.
func (p *Preferences) SyntaxFor(path string) (string, bool) {
	name, ok := p.Syntax[extension(path)]
	return name, ok
}

func extension(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// DataDir returns the path to the amble data directory (~/.config/amble).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "amble"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// PreferencesPath returns the location of config.toml in dir.
func PreferencesPath(dir string) string { return filepath.Join(dir, "config.toml") }

// KeymapPath returns the location of the user keymap in dir.
func KeymapPath(dir string) string { return filepath.Join(dir, "keymap.yml") }
