// Package config loads hookman's own settings file. This is the tool's
// configuration, not the pre-commit manifests hookman operates on; those
// live in the manifest package.
//
// Settings are read from the XDG config directory
// (~/.config/hookman/hookman.toml or hookman.yml). A missing settings file
// is not an error: hookman runs with defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/pkg/paths"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Settings holds hookman's tool-level configuration.
type Settings struct {
	// ManifestNames overrides the file names hookman searches for when no
	// manifest path is given. Defaults to the standard pre-commit names.
	ManifestNames []string `yaml:"manifest_names" toml:"manifest_names"`

	// Check configures the check command.
	Check CheckSettings `yaml:"check" toml:"check"`

	// Extensions holds sections hookman itself does not model directly
	// (logging, tui). Decoded on demand via UnmarshalExtension.
	Extensions map[string]interface{} `yaml:"-" toml:"-"`
}

// CheckSettings configures tree-wide manifest checking.
type CheckSettings struct {
	// Ignore lists dockerignore-style patterns for directories and files
	// that check should skip.
	Ignore []string `yaml:"ignore" toml:"ignore"`
}

// knownKeys are the top-level settings keys decoded into Settings proper.
// Everything else lands in Extensions.
var knownKeys = map[string]bool{
	"manifest_names": true,
	"check":          true,
}

// DefaultManifestNames are the file names the external framework recognizes.
var DefaultManifestNames = []string{
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
}

// SetDefaults fills unset fields with their default values.
func (s *Settings) SetDefaults() {
	if len(s.ManifestNames) == 0 {
		s.ManifestNames = append([]string(nil), DefaultManifestNames...)
	}
	if s.Extensions == nil {
		s.Extensions = make(map[string]interface{})
	}
}

// DefaultPath returns the settings file hookman would load: the first
// existing candidate in the config directory, or the preferred TOML path
// when none exists yet.
func DefaultPath() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	candidates := []string{
		filepath.Join(dir, "hookman.toml"),
		filepath.Join(dir, "hookman.yml"),
		filepath.Join(dir, "hookman.yaml"),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return candidates[0]
}

// Load reads the settings from the default location. A missing file yields
// default settings.
func Load() (*Settings, error) {
	path := DefaultPath()
	if path == "" {
		s := &Settings{}
		s.SetDefaults()
		return s, nil
	}
	if _, err := os.Stat(path); err != nil {
		s := &Settings{}
		s.SetDefaults()
		return s, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses the settings file at path. The format is chosen
// by extension: .toml is TOML, everything else is YAML.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeSettingsNotFound,
				fmt.Sprintf("settings file not found: %s", path)).
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to read settings file").
			WithDetail("path", path)
	}

	expanded := expandEnvVars(string(data))

	raw := make(map[string]interface{})
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse TOML settings").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to parse YAML settings").
				WithDetail("path", path)
		}
	}

	settings, err := fromRaw(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSettingsInvalid, "failed to decode settings").
			WithDetail("path", path)
	}

	settings.SetDefaults()
	return settings, nil
}

// fromRaw decodes known keys into the Settings struct and stashes unknown
// top-level sections in Extensions.
func fromRaw(raw map[string]interface{}) (*Settings, error) {
	settings := &Settings{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  settings,
		TagName: "yaml",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	settings.Extensions = make(map[string]interface{})
	for key, value := range raw {
		if !knownKeys[key] {
			settings.Extensions[key] = value
		}
	}

	return settings, nil
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded settings into the provided target struct. The target must be a
// pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := settings.UnmarshalExtension("logging", &logCfg)
func (s *Settings) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := s.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
