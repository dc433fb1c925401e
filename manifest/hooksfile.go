package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/errors"
)

// HookDef is one entry in a source repository's .pre-commit-hooks.yaml: the
// definition a config hook's id refers to.
type HookDef struct {
	ID                      string   `yaml:"id" toml:"id" jsonschema:"description=Identifier configs use to select this hook"`
	Name                    string   `yaml:"name" toml:"name" jsonschema:"description=Display name shown during execution"`
	Entry                   string   `yaml:"entry" toml:"entry" jsonschema:"description=Executable to run"`
	Language                string   `yaml:"language" toml:"language" jsonschema:"description=Language the hook is written in"`
	Files                   string   `yaml:"files,omitempty" toml:"files,omitempty" jsonschema:"description=Regular expression selecting files to pass to the hook"`
	Exclude                 string   `yaml:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Regular expression excluding files from the hook"`
	Types                   []string `yaml:"types,omitempty" toml:"types,omitempty" jsonschema:"description=File type labels that must all be present"`
	TypesOr                 []string `yaml:"types_or,omitempty" toml:"types_or,omitempty" jsonschema:"description=File type labels of which at least one must be present"`
	ExcludeTypes            []string `yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" jsonschema:"description=File type labels that must not be present"`
	Stages                  []string `yaml:"stages,omitempty" toml:"stages,omitempty" jsonschema:"description=Stages this hook runs in"`
	Args                    []string `yaml:"args,omitempty" toml:"args,omitempty" jsonschema:"description=Default arguments passed to the hook entry"`
	AlwaysRun               bool     `yaml:"always_run,omitempty" toml:"always_run,omitempty" jsonschema:"description=Run even when no files match"`
	PassFilenames           *bool    `yaml:"pass_filenames,omitempty" toml:"pass_filenames,omitempty" jsonschema:"description=Pass matched filenames to the hook entry (default: true)"`
	Description             string   `yaml:"description,omitempty" toml:"description,omitempty" jsonschema:"description=Short description of what the hook does"`
	MinimumPreCommitVersion string   `yaml:"minimum_pre_commit_version,omitempty" toml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this hook"`
}

// HooksFile models a .pre-commit-hooks.yaml source manifest: a bare list of
// hook definitions.
type HooksFile []HookDef

// LoadHooksFile reads and parses a source-side hooks manifest.
func LoadHooksFile(path string) (HooksFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.HooksFileNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeHooksFileInvalid,
			fmt.Sprintf("failed to read hooks file: %s", path))
	}
	return ParseHooksFile(data)
}

// ParseHooksFile parses a source-side hooks manifest from a byte slice.
func ParseHooksFile(data []byte) (HooksFile, error) {
	var hooks HooksFile
	if err := yaml.Unmarshal(data, &hooks); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHooksFileInvalid, "failed to parse YAML hooks file")
	}
	return hooks, nil
}

// Validate checks every hook definition: required fields, known language,
// pattern syntax and stage names.
func (h HooksFile) Validate() error {
	if len(h) == 0 {
		return errors.New(errors.ErrCodeHooksFileInvalid, "hooks file must declare at least one hook")
	}

	for i := range h {
		def := &h[i]
		if err := def.validate(); err != nil {
			return errors.Wrap(err, errors.ErrCodeHooksFileInvalid,
				fmt.Sprintf("invalid hook definition '%s'", hookDefLabel(def, i))).
				WithDetail("hook", def.ID).
				WithDetail("index", i)
		}
	}

	return nil
}

func hookDefLabel(def *HookDef, index int) string {
	if def.ID != "" {
		return def.ID
	}
	return fmt.Sprintf("#%d", index)
}

func (d *HookDef) validate() error {
	if d.ID == "" {
		return errors.New(errors.ErrCodeHooksFileInvalid, "hook id is required")
	}
	if d.Name == "" {
		return errors.New(errors.ErrCodeHooksFileInvalid, "hook name is required")
	}
	if d.Entry == "" {
		return errors.New(errors.ErrCodeHooksFileInvalid, "hook entry is required")
	}
	if d.Language == "" {
		return errors.New(errors.ErrCodeHooksFileInvalid, "hook language is required")
	}
	if !languageSet[d.Language] {
		return errors.New(errors.ErrCodeHooksFileInvalid,
			fmt.Sprintf("unknown language '%s'", d.Language)).
			WithDetail("language", d.Language)
	}

	if err := validatePattern("files", d.Files); err != nil {
		return err
	}
	if err := validatePattern("exclude", d.Exclude); err != nil {
		return err
	}

	for _, stage := range d.Stages {
		if err := validateStage(stage); err != nil {
			return err
		}
	}

	if err := validateVersion(d.MinimumPreCommitVersion); err != nil {
		return err
	}

	return nil
}
