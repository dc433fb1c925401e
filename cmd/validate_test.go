package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooktools/hookman/state"
	"github.com/hooktools/hookman/testutil"
)

func TestValidateManifestBytesValid(t *testing.T) {
	report := validateManifestBytes("x.yaml", []byte(testutil.MinimalManifest()), false)

	assert.True(t, report.Valid)
	assert.Empty(t, report.Problems)
	assert.Empty(t, report.Findings)
	assert.False(t, report.Legacy)
}

func TestValidateManifestBytesMissingRev(t *testing.T) {
	manifest := `repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
`
	report := validateManifestBytes("x.yaml", []byte(manifest), false)

	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Problems)
	assert.Contains(t, strings.Join(report.Problems, "\n"), "rev")
}

func TestValidateManifestBytesLegacy(t *testing.T) {
	legacy := `- repo: https://github.com/psf/black
  sha: 21.12b0
  hooks:
    - id: black
`
	report := validateManifestBytes("x.yaml", []byte(legacy), false)

	assert.True(t, report.Valid, "a legacy file with sound entries is valid, just old")
	assert.True(t, report.Legacy)
	require.NotEmpty(t, report.Findings)
	assert.Contains(t, report.Findings[0], "[legacy-layout]")
}

func TestValidateManifestBytesStrict(t *testing.T) {
	manifest := `repos:
  - repo: https://github.com/psf/black
    rev: main
    hooks:
      - id: black
`
	report := validateManifestBytes("x.yaml", []byte(manifest), false)
	assert.True(t, report.Valid)
	require.NotEmpty(t, report.Findings)

	report = validateManifestBytes("x.yaml", []byte(manifest), true)
	assert.False(t, report.Valid)
	assert.Empty(t, report.Findings, "strict folds findings into problems")
	assert.Contains(t, strings.Join(report.Problems, "\n"), "[mutable-rev]")
}

func TestValidateManifestBytesUnparseable(t *testing.T) {
	report := validateManifestBytes("x.yaml", []byte("repos: ["), false)

	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Problems)
}

func TestValidateManifestFileRecordsState(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())
	path := testutil.WriteManifest(t, t.TempDir(), testutil.MinimalManifest())

	report := validateManifestFile(path, false)
	assert.True(t, report.Valid)

	result, ok, err := state.Get(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Digest)
	assert.False(t, result.CheckedAt.IsZero())
}

func TestValidateManifestFileUnreadable(t *testing.T) {
	t.Setenv("HOOKMAN_HOME", t.TempDir())

	report := validateManifestFile("does/not/exist.yaml", false)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Problems)
	assert.Contains(t, report.Problems[0], "cannot read file")
}

func TestSchemaProblems(t *testing.T) {
	err := fmt.Errorf("schema validation failed:\n- /repos/0: missing property 'repo'\n- /repos/1: wrong type")

	problems := schemaProblems(err)
	require.Len(t, problems, 2)
	assert.Equal(t, "/repos/0: missing property 'repo'", problems[0])
	assert.Equal(t, "/repos/1: wrong type", problems[1])
}
