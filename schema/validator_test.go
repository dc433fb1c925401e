package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestNewValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestValidateValidManifest(t *testing.T) {
	v := newTestValidator(t)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "21.12b0",
				"hooks": []interface{}{
					map[string]interface{}{"id": "black"},
				},
			},
			map[string]interface{}{
				"repo": "local",
				"hooks": []interface{}{
					map[string]interface{}{
						"id":       "lint",
						"name":     "Lint",
						"entry":    "make lint",
						"language": "system",
						"args":     []interface{}{"--fast"},
					},
				},
			},
		},
	}

	assert.NoError(t, v.Validate(doc))
}

func TestValidateAllowsExtensionKeys(t *testing.T) {
	v := newTestValidator(t)

	doc := map[string]interface{}{
		"repos": []interface{}{},
		"ci": map[string]interface{}{
			"autoupdate_schedule": "weekly",
		},
	}

	assert.NoError(t, v.Validate(doc))
}

func TestValidateMissingRepos(t *testing.T) {
	v := newTestValidator(t)

	err := v.Validate(map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing properties")
	assert.Contains(t, err.Error(), "repos")
}

func TestValidateUnknownHookKey(t *testing.T) {
	v := newTestValidator(t)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  "21.12b0",
				"hooks": []interface{}{
					map[string]interface{}{
						"id":    "black",
						"filse": "^src/",
					},
				},
			},
		},
	}

	err := v.Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/repos/0/hooks/0")
	assert.Contains(t, err.Error(), "not allowed")
}

func TestValidateWrongRevType(t *testing.T) {
	v := newTestValidator(t)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://github.com/psf/black",
				"rev":  5,
				"hooks": []interface{}{
					map[string]interface{}{"id": "black"},
				},
			},
		},
	}

	err := v.Validate(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string")
}

func TestValidateFromYAMLDecode(t *testing.T) {
	v := newTestValidator(t)

	// The validate command decodes the file generically before schema
	// validation; mirror that path here.
	raw := []byte(`repos:
  - repo: https://github.com/codespell-project/codespell
    rev: v2.1.0
    hooks:
      - id: codespell
        args: ["--ignore-words-list=hist,nd"]
`)
	var doc interface{}
	require.NoError(t, yaml.Unmarshal(raw, &doc))

	assert.NoError(t, v.Validate(doc))
}
