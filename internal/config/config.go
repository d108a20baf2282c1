package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvConfig = "PBXEDIT_CONFIG"
	EnvStrict = "PBXEDIT_STRICT"
	EnvFormat = "PBXEDIT_FORMAT"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	validFormats = []string{FormatText, FormatJSON, FormatYAML}
	validColors  = []string{ColorAuto, ColorAlways, ColorNever}
)

// Config holds the pbxedit configuration
type Config struct {
	SourceExtensions []string `toml:"source_extensions"`
	BackupSuffix     string   `toml:"backup_suffix"`
	SourceTree       string   `toml:"source_tree"`
	BuildPhase       string   `toml:"build_phase"`
	Strict           bool     `toml:"strict"`
	Color            string   `toml:"color"`
	Format           string   `toml:"format"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		SourceExtensions: []string{".swift"},
		BackupSuffix:     ".bak",
		SourceTree:       "<group>",
		BuildPhase:       "Sources",
		Color:            ColorAuto,
		Format:           FormatText,
	}
}

// Path resolves which config file to read. flagPath wins over the
// environment, which wins over the per-user default.
func Path(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pbxedit", "config.toml"), nil
}

// Load reads the config file at path on top of Default() and applies the
// environment overrides.
// Returns Default() (plus overrides) if the file doesn't exist.
// Returns error if the file exists but is invalid.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Default(), fmt.Errorf("failed to read config file: %w", err)
		default:
			if _, err := toml.Decode(string(data), &cfg); err != nil {
				return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvStrict, v, err)
		}
		c.Strict = strict
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	return nil
}

// Validate checks enumerated values and the extension list.
func (c Config) Validate() error {
	if !slices.Contains(validFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %s", c.Format, strings.Join(validFormats, ", "))
	}
	if !slices.Contains(validColors, c.Color) {
		return fmt.Errorf("invalid color %q: must be one of %s", c.Color, strings.Join(validColors, ", "))
	}
	if len(c.SourceExtensions) == 0 {
		return errors.New("source_extensions must not be empty")
	}
	for _, ext := range c.SourceExtensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("invalid source extension %q: must start with a dot", ext)
		}
	}
	if c.BackupSuffix == "" {
		return errors.New("backup_suffix must not be empty")
	}
	if c.BuildPhase == "" {
		return errors.New("build_phase must not be empty")
	}
	return nil
}
