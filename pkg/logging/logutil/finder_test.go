package logutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogFile(t *testing.T, dir, name, content string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestFindLatestLogFilePrefersNonEmpty(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	older := writeLogFile(t, dir, "cli-2026-08-24.log", "older entry\n", now.Add(-time.Hour))
	writeLogFile(t, dir, "cli-2026-08-25.log", "", now)

	found, err := FindLatestLogFile(dir, "")
	require.NoError(t, err)
	assert.Equal(t, older, found, "empty files should lose to older non-empty ones")
}

func TestFindLatestLogFileByComponent(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeLogFile(t, dir, "cli-2026-08-25.log", "cli entry\n", now)
	watchFile := writeLogFile(t, dir, "watch-2026-08-25.log", "watch entry\n", now.Add(-time.Minute))

	found, err := FindLatestLogFile(dir, "watch")
	require.NoError(t, err)
	assert.Equal(t, watchFile, found)
}

func TestFindLatestLogFileMissingComponent(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "cli-2026-08-25.log", "entry\n", time.Now())

	_, err := FindLatestLogFile(dir, "browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browse")
}

func TestComponents(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeLogFile(t, dir, "watch-2026-08-24.log", "a\n", now)
	writeLogFile(t, dir, "watch-2026-08-25.log", "b\n", now)
	writeLogFile(t, dir, "cli-2026-08-25.log", "c\n", now)
	writeLogFile(t, dir, "notes.txt", "not a log\n", now)

	components, err := Components(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "watch"}, components)
}

func TestFindComponentLogFileUsesLogDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOOKMAN_HOME", home)

	logsDir := filepath.Join(home, "state", "hookman", "logs")
	require.NoError(t, os.MkdirAll(logsDir, 0755))
	expected := writeLogFile(t, logsDir, "check-2026-08-25.log", "entry\n", time.Now())

	found, dir, err := FindComponentLogFile("check")
	require.NoError(t, err)
	assert.Equal(t, expected, found)
	assert.Equal(t, logsDir, dir)
}
