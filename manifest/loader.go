package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/errors"
)

// DefaultFileNames are the manifest file names searched by Find, in
// precedence order.
var DefaultFileNames = []string{
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
}

// DefaultHooksFileName is the manifest a hook source repository publishes.
const DefaultHooksFileName = ".pre-commit-hooks.yaml"

// Load reads, parses, resolves and validates a manifest file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ManifestNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeManifestInvalid,
			fmt.Sprintf("failed to read manifest: %s", path))
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromBytes parses a manifest from a byte slice, fills defaults and runs
// semantic validation.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes a manifest without resolving defaults or validating. Used by
// operations that must preserve the file as authored, like formatting.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeManifestInvalid, "failed to parse YAML manifest")
	}
	return &cfg, nil
}

// Find searches for a manifest file from startDir up to the filesystem root.
func Find(startDir string) (string, error) {
	return FindNamed(startDir, DefaultFileNames)
}

// FindNamed searches for any of the given manifest file names from startDir
// up to the filesystem root.
func FindNamed(startDir string, names []string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid start directory: %s", startDir))
	}

	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.New(errors.ErrCodeManifestNotFound,
		fmt.Sprintf("no manifest found from %s upward", startDir)).
		WithDetail("startDir", startDir).
		WithDetail("names", names)
}
