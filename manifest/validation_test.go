package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooktools/hookman/errors"
)

func TestValidateRequiresRepos(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeManifestValidation))

	// An empty list is legal, only the missing key is not
	cfg = &Config{Repos: []Repo{}}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRevInvariant(t *testing.T) {
	testCases := []struct {
		name  string
		repo  Repo
		valid bool
	}{
		{
			name: "remote with rev",
			repo: Repo{
				Repo:  "https://github.com/psf/black",
				Rev:   "21.12b0",
				Hooks: []Hook{{ID: "black"}},
			},
			valid: true,
		},
		{
			name: "remote without rev",
			repo: Repo{
				Repo:  "https://github.com/psf/black",
				Hooks: []Hook{{ID: "black"}},
			},
			valid: false,
		},
		{
			name: "local without rev",
			repo: Repo{
				Repo:  "local",
				Hooks: []Hook{{ID: "fmt", Name: "Format", Entry: "make fmt", Language: "system"}},
			},
			valid: true,
		},
		{
			name: "local with rev",
			repo: Repo{
				Repo:  "local",
				Rev:   "v1.0.0",
				Hooks: []Hook{{ID: "fmt", Name: "Format", Entry: "make fmt", Language: "system"}},
			},
			valid: false,
		},
		{
			name: "meta with rev",
			repo: Repo{
				Repo:  "meta",
				Rev:   "v1.0.0",
				Hooks: []Hook{{ID: "identity"}},
			},
			valid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Repos: []Repo{tc.repo}}
			err := cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRepoShape(t *testing.T) {
	// Empty repo source
	cfg := &Config{Repos: []Repo{{Hooks: []Hook{{ID: "x"}}}}}
	assert.Error(t, cfg.Validate())

	// No hooks
	cfg = &Config{Repos: []Repo{{Repo: "https://github.com/psf/black", Rev: "21.12b0"}}}
	assert.Error(t, cfg.Validate())

	// Hook without id
	cfg = &Config{Repos: []Repo{{
		Repo:  "https://github.com/psf/black",
		Rev:   "21.12b0",
		Hooks: []Hook{{}},
	}}}
	assert.Error(t, cfg.Validate())
}

func TestValidateLocalHooks(t *testing.T) {
	base := func(mutate func(*Hook)) *Config {
		hook := Hook{ID: "fmt", Name: "Format", Entry: "make fmt", Language: "system"}
		mutate(&hook)
		return &Config{Repos: []Repo{{Repo: "local", Hooks: []Hook{hook}}}}
	}

	assert.NoError(t, base(func(h *Hook) {}).Validate())
	assert.Error(t, base(func(h *Hook) { h.Name = "" }).Validate())
	assert.Error(t, base(func(h *Hook) { h.Entry = "" }).Validate())
	assert.Error(t, base(func(h *Hook) { h.Language = "" }).Validate())
	assert.Error(t, base(func(h *Hook) { h.Language = "cobol" }).Validate())
}

func TestValidateRemoteHooks(t *testing.T) {
	base := func(mutate func(*Hook)) *Config {
		hook := Hook{ID: "black"}
		mutate(&hook)
		return &Config{Repos: []Repo{{
			Repo:  "https://github.com/psf/black",
			Rev:   "21.12b0",
			Hooks: []Hook{hook},
		}}}
	}

	assert.NoError(t, base(func(h *Hook) {}).Validate())
	assert.Error(t, base(func(h *Hook) { h.Entry = "black" }).Validate())
	assert.Error(t, base(func(h *Hook) { h.Language = "python" }).Validate())
}

func TestValidateMetaHooks(t *testing.T) {
	valid := &Config{Repos: []Repo{{
		Repo: "meta",
		Hooks: []Hook{
			{ID: "check-hooks-apply"},
			{ID: "check-useless-excludes"},
			{ID: "identity"},
		},
	}}}
	assert.NoError(t, valid.Validate())

	invalid := &Config{Repos: []Repo{{
		Repo:  "meta",
		Hooks: []Hook{{ID: "not-a-meta-hook"}},
	}}}
	assert.Error(t, invalid.Validate())
}

func TestValidatePatterns(t *testing.T) {
	// Config-level broken pattern
	cfg := &Config{Repos: []Repo{}, Files: "([unclosed"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePatternInvalid))

	// Hook-level broken pattern
	cfg = &Config{Repos: []Repo{{
		Repo:  "https://github.com/psf/black",
		Rev:   "21.12b0",
		Hooks: []Hook{{ID: "black", Exclude: "([unclosed"}},
	}}}
	assert.Error(t, cfg.Validate())

	// Valid patterns pass
	cfg = &Config{
		Repos: []Repo{{
			Repo:  "https://github.com/psf/black",
			Rev:   "21.12b0",
			Hooks: []Hook{{ID: "black", Files: `\.py$`}},
		}},
		Exclude: "^vendor/",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateStages(t *testing.T) {
	testCases := []struct {
		name   string
		stages []string
		valid  bool
	}{
		{"modern stages", []string{"pre-commit", "pre-push"}, true},
		{"manual", []string{"manual"}, true},
		{"legacy aliases", []string{"commit", "push", "merge-commit"}, true},
		{"unknown stage", []string{"deploy"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Repos: []Repo{{
				Repo:  "https://github.com/psf/black",
				Rev:   "21.12b0",
				Hooks: []Hook{{ID: "black", Stages: tc.stages}},
			}}}
			err := cfg.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateMinimumVersion(t *testing.T) {
	cfg := &Config{Repos: []Repo{}, MinimumPreCommitVersion: "2.9.2"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Repos: []Repo{}, MinimumPreCommitVersion: "latest"}
	assert.Error(t, cfg.Validate())
}

func TestValidateDefaultInstallHookTypes(t *testing.T) {
	cfg := &Config{Repos: []Repo{}, DefaultInstallHookTypes: []string{"pre-commit", "commit-msg"}}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Repos: []Repo{}, DefaultInstallHookTypes: []string{"on-deploy"}}
	assert.Error(t, cfg.Validate())
}

func TestValidateSample(t *testing.T) {
	sample := Sample()
	sample.SetDefaults()
	assert.NoError(t, sample.Validate())
	assert.Empty(t, sample.Lint())
}
