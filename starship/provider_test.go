package starship

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooktools/hookman/state"
	"github.com/hooktools/hookman/testutil"
	"github.com/hooktools/hookman/tui/theme"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

func TestManifestStatusNoManifest(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())
	chdir(t, t.TempDir())

	st, err := state.Load()
	require.NoError(t, err)

	out, err := ManifestStatus(st)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestManifestStatusUnvalidated(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())

	repoDir := t.TempDir()
	testutil.WriteManifest(t, repoDir, testutil.MinimalManifest())
	chdir(t, repoDir)

	st, err := state.Load()
	require.NoError(t, err)

	out, err := ManifestStatus(st)
	require.NoError(t, err)
	assert.Equal(t, theme.IconHook, out)
}

func TestManifestStatusValid(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())

	repoDir := t.TempDir()
	content := testutil.MinimalManifest()
	manifestPath := testutil.WriteManifest(t, repoDir, content)
	chdir(t, repoDir)

	require.NoError(t, state.Set(manifestPath, state.Result{
		Digest:    state.Digest([]byte(content)),
		Valid:     true,
		CheckedAt: time.Now().UTC(),
	}))

	st, err := state.Load()
	require.NoError(t, err)

	out, err := ManifestStatus(st)
	require.NoError(t, err)
	assert.Equal(t, theme.IconSuccess, out)
}

func TestManifestStatusInvalidShowsProblemCount(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())

	repoDir := t.TempDir()
	content := "repos:\n  - repo: https://github.com/psf/black\n    hooks:\n      - id: black\n"
	manifestPath := testutil.WriteManifest(t, repoDir, content)
	chdir(t, repoDir)

	require.NoError(t, state.Set(manifestPath, state.Result{
		Digest:    state.Digest([]byte(content)),
		Valid:     false,
		Problems:  []string{"repos[0]: missing rev", "repos[0]: rev must be pinned"},
		CheckedAt: time.Now().UTC(),
	}))

	st, err := state.Load()
	require.NoError(t, err)

	out, err := ManifestStatus(st)
	require.NoError(t, err)
	assert.Contains(t, out, theme.IconError)
	assert.Contains(t, out, "2")
}

func TestManifestStatusStaleDigest(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())

	repoDir := t.TempDir()
	manifestPath := testutil.WriteManifest(t, repoDir, testutil.MinimalManifest())
	chdir(t, repoDir)

	require.NoError(t, state.Set(manifestPath, state.Result{
		Digest:    state.Digest([]byte("different content")),
		Valid:     true,
		CheckedAt: time.Now().UTC(),
	}))

	st, err := state.Load()
	require.NoError(t, err)

	out, err := ManifestStatus(st)
	require.NoError(t, err)
	assert.Equal(t, theme.IconHook, out)
}

func TestRegisterProvider(t *testing.T) {
	ClearProviders()
	t.Cleanup(ClearProviders)

	RegisterProvider(func(st *state.State) (string, error) {
		return "one", nil
	})
	RegisterProvider(ManifestStatus)

	assert.Len(t, GetProviders(), 2)
}
