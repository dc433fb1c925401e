package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMutableRev(t *testing.T) {
	testCases := []struct {
		rev     string
		mutable bool
	}{
		{"master", true},
		{"main", true},
		{"HEAD", true},
		{"develop", true},
		{"latest", true},
		{"feature-branch", true},
		{"21.12b0", false},
		{"v2.1.0", false},
		{"4.0.1", false},
		{"a1b2c3d", false},
		{"deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", false},
	}

	for _, tc := range testCases {
		t.Run(tc.rev, func(t *testing.T) {
			assert.Equal(t, tc.mutable, isMutableRev(tc.rev))
		})
	}
}

func TestLintMutableRev(t *testing.T) {
	cfg := &Config{Repos: []Repo{{
		Repo:  "https://github.com/psf/black",
		Rev:   "master",
		Hooks: []Hook{{ID: "black"}},
	}}}

	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, "mutable-rev", findings[0].Code)
	assert.Equal(t, "https://github.com/psf/black", findings[0].Repo)
}

func TestLintLocalRepoRevNotFlagged(t *testing.T) {
	cfg := &Config{Repos: []Repo{{
		Repo:  "local",
		Hooks: []Hook{{ID: "fmt", Name: "Format", Entry: "make fmt", Language: "system"}},
	}}}

	assert.Empty(t, cfg.Lint())
}

func TestLintDuplicateHooks(t *testing.T) {
	// Same id, nothing to tell the instances apart
	cfg := &Config{Repos: []Repo{{
		Repo: "https://github.com/PyCQA/flake8",
		Rev:  "4.0.1",
		Hooks: []Hook{
			{ID: "flake8"},
			{ID: "flake8"},
		},
	}}}

	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, "duplicate-hook", findings[0].Code)

	// Distinguished by files
	cfg.Repos[0].Hooks[1].Files = "^src/"
	assert.Empty(t, cfg.Lint())

	// Distinguished by alias
	cfg.Repos[0].Hooks[1].Files = ""
	cfg.Repos[0].Hooks[1].Alias = "flake8-strict"
	assert.Empty(t, cfg.Lint())
}

func TestLintEmptyArgs(t *testing.T) {
	cfg := &Config{Repos: []Repo{{
		Repo:  "https://github.com/psf/black",
		Rev:   "21.12b0",
		Hooks: []Hook{{ID: "black", Args: []string{}}},
	}}}

	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, "empty-args", findings[0].Code)

	// Absent args are fine
	cfg.Repos[0].Hooks[0].Args = nil
	assert.Empty(t, cfg.Lint())
}

func TestLintUnknownTypeLabel(t *testing.T) {
	cfg := &Config{Repos: []Repo{{
		Repo:  "https://github.com/psf/black",
		Rev:   "21.12b0",
		Hooks: []Hook{{ID: "black", Types: []string{"python", "pthon"}}},
	}}}

	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, "unknown-type", findings[0].Code)
	assert.Contains(t, findings[0].Message, "pthon")
}

func TestLintLegacyLayout(t *testing.T) {
	cfg, err := Parse([]byte(`- repo: https://github.com/psf/black
  rev: 21.12b0
  hooks:
    - id: black
`))
	require.NoError(t, err)

	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, "legacy-layout", findings[0].Code)
}

func TestLintCISchedule(t *testing.T) {
	cfg, err := Parse([]byte(`repos: []
ci:
  autoupdate_schedule: daily
`))
	require.NoError(t, err)

	findings := cfg.Lint()
	require.Len(t, findings, 1)
	assert.Equal(t, "ci-schedule", findings[0].Code)

	cfg, err = Parse([]byte(`repos: []
ci:
  autoupdate_schedule: quarterly
`))
	require.NoError(t, err)
	assert.Empty(t, cfg.Lint())
}

func TestFindingString(t *testing.T) {
	f := Finding{Code: "mutable-rev", Message: "rev 'main' is not an immutable pin", Repo: "https://github.com/psf/black"}
	s := f.String()
	assert.Contains(t, s, "https://github.com/psf/black")
	assert.Contains(t, s, "[mutable-rev]")

	f = Finding{Code: "legacy-layout", Message: "legacy manifest layout"}
	assert.Equal(t, "legacy manifest layout [legacy-layout]", f.String())
}
