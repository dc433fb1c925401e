package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTailLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli-2026-08-25.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	lines, err := readTailLines(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	lines, err = readTailLines(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, lines)

	lines, err = readTailLines(path, 10)
	require.NoError(t, err)
	assert.Len(t, lines, 3, "a tail larger than the file returns everything")
}

func TestReadTailLinesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch-2026-08-25.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	lines, err := readTailLines(path, 5)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadTailLinesMissingFile(t *testing.T) {
	_, err := readTailLines(filepath.Join(t.TempDir(), "absent.log"), 0)
	assert.Error(t, err)
}
