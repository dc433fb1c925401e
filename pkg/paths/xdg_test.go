package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookmanHomeOverride(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", "/custom/hookman")
	t.Setenv("XDG_CONFIG_HOME", "/ignored")
	t.Setenv("XDG_STATE_HOME", "/ignored")

	assert.Equal(t, filepath.Join("/custom/hookman", "config", "hookman"), ConfigDir())
	assert.Equal(t, filepath.Join("/custom/hookman", "data", "hookman"), DataDir())
	assert.Equal(t, filepath.Join("/custom/hookman", "state", "hookman"), StateDir())
	assert.Equal(t, filepath.Join("/custom/hookman", "cache", "hookman"), CacheDir())
}

func TestXDGEnvVars(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	assert.Equal(t, filepath.Join("/xdg/config", "hookman"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/data", "hookman"), DataDir())
	assert.Equal(t, filepath.Join("/xdg/state", "hookman"), StateDir())
	assert.Equal(t, filepath.Join("/xdg/cache", "hookman"), CacheDir())
}

func TestPlatformDefaults(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/testuser")

	assert.Equal(t, filepath.Join("/home/testuser", ".config", "hookman"), ConfigDir())
	assert.Equal(t, filepath.Join("/home/testuser", ".local", "state", "hookman"), StateDir())
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", "/hm")

	assert.Equal(t, filepath.Join("/hm", "state", "hookman", "logs"), LogDir())
	assert.Equal(t, filepath.Join("/hm", "state", "hookman", "state.yml"), StateFilePath())
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOOKMAN_HOME", tmpDir)

	require.NoError(t, EnsureDirs())

	for _, dir := range []string{ConfigDir(), DataDir(), StateDir(), CacheDir(), LogDir()} {
		assert.DirExists(t, dir)
	}
}
