package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromTOML(t *testing.T) {
	path := writeSettings(t, "hookman.toml", `
manifest_names = [".pre-commit-config.yaml"]

[check]
ignore = ["vendor/", "node_modules/"]

[logging]
level = "debug"

[tui]
theme = "gruvbox"
`)

	settings, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".pre-commit-config.yaml"}, settings.ManifestNames)
	assert.Equal(t, []string{"vendor/", "node_modules/"}, settings.Check.Ignore)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, settings.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)

	var tuiCfg struct {
		Theme string `yaml:"theme"`
	}
	require.NoError(t, settings.UnmarshalExtension("tui", &tuiCfg))
	assert.Equal(t, "gruvbox", tuiCfg.Theme)
}

func TestLoadFromYAML(t *testing.T) {
	path := writeSettings(t, "hookman.yml", `
check:
  ignore:
    - "testdata/"
logging:
  level: warn
  report_caller: true
`)

	settings, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"testdata/"}, settings.Check.Ignore)

	// Defaults fill in unset fields
	assert.Equal(t, DefaultManifestNames, settings.ManifestNames)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, settings.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultManifestNames, settings.ManifestNames)
	assert.Empty(t, settings.Check.Ignore)
}

func TestLoadFromExplicitMissingPathFails(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("HOOKMAN_TEST_IGNORE", "build/")
	path := writeSettings(t, "hookman.yml", `
check:
  ignore:
    - "${HOOKMAN_TEST_IGNORE}"
    - "${HOOKMAN_TEST_UNSET:-dist/}"
`)

	settings, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"build/", "dist/"}, settings.Check.Ignore)
}

func TestUnmarshalExtensionUnknownKey(t *testing.T) {
	path := writeSettings(t, "hookman.toml", `manifest_names = [".pre-commit-config.yaml"]`)

	settings, err := LoadFrom(path)
	require.NoError(t, err)

	var target struct {
		Anything string `yaml:"anything"`
	}
	require.NoError(t, settings.UnmarshalExtension("absent", &target))
	assert.Empty(t, target.Anything)
}
