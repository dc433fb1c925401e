package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moby/patternmatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooktools/hookman/config"
	"github.com/hooktools/hookman/testutil"
)

func TestFindManifests(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteManifest(t, dir, testutil.MinimalManifest())
	for _, sub := range []string{"services/api", "vendor/lib", ".git"} {
		subdir := filepath.Join(dir, sub)
		require.NoError(t, os.MkdirAll(subdir, 0755))
		testutil.WriteManifest(t, subdir, testutil.MinimalManifest())
	}

	matcher, err := patternmatcher.New([]string{"vendor"})
	require.NoError(t, err)

	found, err := findManifests(dir, config.DefaultManifestNames, matcher)
	require.NoError(t, err)

	rel := make([]string, 0, len(found))
	for _, path := range found {
		r, err := filepath.Rel(dir, path)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.ElementsMatch(t, []string{
		".pre-commit-config.yaml",
		"services/api/.pre-commit-config.yaml",
	}, rel, ".git and ignored directories are pruned")
}

func TestFindManifestsNoMatcher(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteManifest(t, dir, testutil.MinimalManifest())
	testutil.WriteManifestNamed(t, dir, ".pre-commit-config.yml", testutil.MinimalManifest())

	found, err := findManifests(dir, config.DefaultManifestNames, nil)
	require.NoError(t, err)
	assert.Len(t, found, 2, "both default manifest names are picked up")
}

func TestCheckManifestUsesCache(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())
	dir := t.TempDir()
	path := testutil.WriteManifest(t, dir, testutil.MinimalManifest())

	first := checkManifest(path, false, true)
	assert.True(t, first.Valid)
	assert.False(t, first.Cached, "nothing cached on the first run")

	second := checkManifest(path, false, true)
	assert.True(t, second.Valid)
	assert.True(t, second.Cached)

	testutil.WriteManifest(t, dir, testutil.MinimalManifest()+"# touched\n")
	third := checkManifest(path, false, true)
	assert.False(t, third.Cached, "a content change invalidates the digest")
}

func TestCheckManifestWithoutChangedOnly(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())
	dir := t.TempDir()
	path := testutil.WriteManifest(t, dir, testutil.MinimalManifest())

	checkManifest(path, false, false)
	report := checkManifest(path, false, false)
	assert.False(t, report.Cached, "cache is only consulted with --changed-only")
}
