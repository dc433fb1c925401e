package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooktools/hookman/manifest"
)

func TestReadPaths(t *testing.T) {
	input := "src/app.py\n\n  docs/readme.md  \n"

	paths, err := readPaths(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.py", "docs/readme.md"}, paths)
}

func TestReadPathsEmpty(t *testing.T) {
	paths, err := readPaths(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSelectHook(t *testing.T) {
	cfg, err := manifest.LoadFromBytes([]byte(`repos:
  - repo: https://github.com/psf/black
    rev: 24.4.2
    hooks:
      - id: black
  - repo: https://github.com/PyCQA/flake8
    rev: 7.0.0
    hooks:
      - id: flake8
        alias: flake8-strict
`))
	require.NoError(t, err)

	filters, err := cfg.CompileFilters()
	require.NoError(t, err)
	require.Len(t, filters, 2)

	byID := selectHook(filters, "black")
	require.Len(t, byID, 1)
	assert.Equal(t, "black", byID[0].Hook.ID)

	byAlias := selectHook(filters, "flake8-strict")
	require.Len(t, byAlias, 1)
	assert.Equal(t, "flake8", byAlias[0].Hook.ID)

	assert.Empty(t, selectHook(filters, "missing"))
}
