package manifest

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../tools/schema-generator/

// Repository source sentinels. Anything else in a repo field is treated as a
// remote URL.
const (
	LocalRepo = "local"
	MetaRepo  = "meta"
)

// HookTypes lists the git hook types the external runner can install for.
var HookTypes = []string{
	"commit-msg",
	"post-checkout",
	"post-commit",
	"post-merge",
	"post-rewrite",
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"pre-rebase",
	"prepare-commit-msg",
}

// Stages lists every valid stage name: the hook types plus the manual stage.
var Stages = append(append([]string(nil), HookTypes...), "manual")

// legacyStageAliases maps pre-3.0 stage names to their modern equivalents.
var legacyStageAliases = map[string]string{
	"commit":       "pre-commit",
	"merge-commit": "pre-merge-commit",
	"push":         "pre-push",
}

// Languages lists the tool languages the external runner knows how to set up.
var Languages = []string{
	"conda",
	"coursier",
	"dart",
	"docker",
	"docker_image",
	"dotnet",
	"fail",
	"golang",
	"haskell",
	"lua",
	"node",
	"perl",
	"pygrep",
	"python",
	"r",
	"ruby",
	"rust",
	"script",
	"swift",
	"system",
}

// MetaHooks lists the hook ids available under the meta repo.
var MetaHooks = []string{
	"check-hooks-apply",
	"check-useless-excludes",
	"identity",
}

var (
	stageSet    = makeSet(Stages)
	languageSet = makeSet(Languages)
	metaHookSet = makeSet(MetaHooks)
)

func makeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// NormalizeStage maps a legacy stage name to its modern equivalent. Unknown
// names are returned unchanged.
func NormalizeStage(stage string) string {
	if modern, ok := legacyStageAliases[stage]; ok {
		return modern
	}
	return stage
}

func normalizeStages(stages []string) []string {
	normalized := make([]string, len(stages))
	for i, stage := range stages {
		normalized[i] = NormalizeStage(stage)
	}
	return normalized
}

// Hook is a single tool invocation declared by identifier, as it appears in a
// config repo entry.
type Hook struct {
	ID                      string   `yaml:"id" toml:"id" jsonschema:"description=Identifier of the hook in the source repository's hooks file"`
	Alias                   string   `yaml:"alias,omitempty" toml:"alias,omitempty" jsonschema:"description=Alternate id for selecting this hook instance"`
	Name                    string   `yaml:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Display name shown during execution (default: the id)"`
	Entry                   string   `yaml:"entry,omitempty" toml:"entry,omitempty" jsonschema:"description=Executable to run (local hooks only)"`
	Language                string   `yaml:"language,omitempty" toml:"language,omitempty" jsonschema:"description=Language the hook is written in (local hooks only)"`
	LanguageVersion         string   `yaml:"language_version,omitempty" toml:"language_version,omitempty" jsonschema:"description=Language version override for this hook"`
	Files                   string   `yaml:"files,omitempty" toml:"files,omitempty" jsonschema:"description=Regular expression selecting files to pass to the hook"`
	Exclude                 string   `yaml:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Regular expression excluding files from the hook"`
	Types                   []string `yaml:"types,omitempty" toml:"types,omitempty" jsonschema:"description=File type labels that must all be present"`
	TypesOr                 []string `yaml:"types_or,omitempty" toml:"types_or,omitempty" jsonschema:"description=File type labels of which at least one must be present"`
	ExcludeTypes            []string `yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" jsonschema:"description=File type labels that must not be present"`
	Args                    []string `yaml:"args,omitempty" toml:"args,omitempty" jsonschema:"description=Additional arguments passed to the hook entry"`
	Stages                  []string `yaml:"stages,omitempty" toml:"stages,omitempty" jsonschema:"description=Stages this hook runs in (default: the config default_stages)"`
	AdditionalDependencies  []string `yaml:"additional_dependencies,omitempty" toml:"additional_dependencies,omitempty" jsonschema:"description=Extra dependencies installed into the hook environment"`
	AlwaysRun               bool     `yaml:"always_run,omitempty" toml:"always_run,omitempty" jsonschema:"description=Run even when no files match"`
	Verbose                 bool     `yaml:"verbose,omitempty" toml:"verbose,omitempty" jsonschema:"description=Always print hook output"`
	PassFilenames           *bool    `yaml:"pass_filenames,omitempty" toml:"pass_filenames,omitempty" jsonschema:"description=Pass matched filenames to the hook entry (default: true)"`
	FailFast                bool     `yaml:"fail_fast,omitempty" toml:"fail_fast,omitempty" jsonschema:"description=Stop running hooks when this hook fails"`
	LogFile                 string   `yaml:"log_file,omitempty" toml:"log_file,omitempty" jsonschema:"description=File to append hook output to"`
	MinimumPreCommitVersion string   `yaml:"minimum_pre_commit_version,omitempty" toml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this hook"`
}

// PassesFilenames reports whether matched filenames are passed to the hook
// entry. The field defaults to true when unset.
func (h *Hook) PassesFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// Repo is one repository entry in the manifest: a source location, a revision
// pin, and the hooks taken from it.
type Repo struct {
	Repo  string `yaml:"repo" toml:"repo" jsonschema:"description=Repository URL, or the sentinels local / meta"`
	Rev   string `yaml:"rev,omitempty" toml:"rev,omitempty" jsonschema:"description=Revision pin: a fixed tag or commit of the hook source (required for remote repos)"`
	Hooks []Hook `yaml:"hooks" toml:"hooks" jsonschema:"description=Hooks to take from this repository"`

	// Legacy reports the entry used the pre-1.0 sha key for its revision pin.
	Legacy bool `yaml:"-" toml:"-" jsonschema:"-"`
}

// IsLocal reports whether the entry declares hooks defined in the consuming
// repository itself.
func (r *Repo) IsLocal() bool { return r.Repo == LocalRepo }

// IsMeta reports whether the entry declares the runner's built-in meta hooks.
func (r *Repo) IsMeta() bool { return r.Repo == MetaRepo }

// IsRemote reports whether the entry points at a remote hook source.
func (r *Repo) IsRemote() bool { return !r.IsLocal() && !r.IsMeta() }

// UnmarshalYAML implements custom YAML unmarshaling to accept the legacy sha
// key as an alias for rev.
func (r *Repo) UnmarshalYAML(node *yaml.Node) error {
	type rawRepo struct {
		Repo  string `yaml:"repo"`
		Rev   string `yaml:"rev,omitempty"`
		Sha   string `yaml:"sha,omitempty"`
		Hooks []Hook `yaml:"hooks"`
	}

	var raw rawRepo
	if err := node.Decode(&raw); err != nil {
		return err
	}

	r.Repo = raw.Repo
	r.Rev = raw.Rev
	r.Hooks = raw.Hooks

	if r.Rev == "" && raw.Sha != "" {
		r.Rev = raw.Sha
		r.Legacy = true
	}

	return nil
}

// Config represents a .pre-commit-config.yaml manifest
type Config struct {
	Repos                   []Repo            `yaml:"repos" toml:"repos" jsonschema:"description=Repository entries providing hooks"`
	DefaultInstallHookTypes []string          `yaml:"default_install_hook_types,omitempty" toml:"default_install_hook_types,omitempty" jsonschema:"description=Hook types installed by default (default: pre-commit)"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty" toml:"default_language_version,omitempty" jsonschema:"description=Default language version per language"`
	DefaultStages           []string          `yaml:"default_stages,omitempty" toml:"default_stages,omitempty" jsonschema:"description=Default stages for hooks that do not set their own (default: all stages)"`
	Files                   string            `yaml:"files,omitempty" toml:"files,omitempty" jsonschema:"description=Regular expression selecting files for all hooks"`
	Exclude                 string            `yaml:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Regular expression excluding files from all hooks (default: ^$)"`
	FailFast                bool              `yaml:"fail_fast,omitempty" toml:"fail_fast,omitempty" jsonschema:"description=Stop running hooks after the first failure"`
	MinimumPreCommitVersion string            `yaml:"minimum_pre_commit_version,omitempty" toml:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this config"`

	// Extensions captures all other top-level keys, such as the ci block.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`

	// Legacy reports the file used a pre-1.0 layout (bare top-level repo list
	// or sha revision keys) and would benefit from migration.
	Legacy bool `yaml:"-" toml:"-" jsonschema:"-"`
}

// UnmarshalYAML implements custom YAML unmarshaling to handle backward
// compatibility for the old configuration layouts.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	// Pre-1.0 configs were a bare top-level list of repository entries.
	if node.Kind == yaml.SequenceNode {
		var repos []Repo
		if err := node.Decode(&repos); err != nil {
			return err
		}
		c.Repos = repos
		c.Legacy = true
		return nil
	}

	// Temporary struct without the custom unmarshaler to capture the data.
	type rawConfig struct {
		Repos                   []Repo                 `yaml:"repos"`
		DefaultInstallHookTypes []string               `yaml:"default_install_hook_types,omitempty"`
		DefaultLanguageVersion  map[string]string      `yaml:"default_language_version,omitempty"`
		DefaultStages           []string               `yaml:"default_stages,omitempty"`
		Files                   string                 `yaml:"files,omitempty"`
		Exclude                 string                 `yaml:"exclude,omitempty"`
		FailFast                bool                   `yaml:"fail_fast,omitempty"`
		MinimumPreCommitVersion string                 `yaml:"minimum_pre_commit_version,omitempty"`
		Extensions              map[string]interface{} `yaml:",inline"`
	}

	var raw rawConfig
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Repos = raw.Repos
	c.DefaultInstallHookTypes = raw.DefaultInstallHookTypes
	c.DefaultLanguageVersion = raw.DefaultLanguageVersion
	c.DefaultStages = raw.DefaultStages
	c.Files = raw.Files
	c.Exclude = raw.Exclude
	c.FailFast = raw.FailFast
	c.MinimumPreCommitVersion = raw.MinimumPreCommitVersion
	c.Extensions = raw.Extensions

	// A sha key anywhere marks the whole file as a migration candidate.
	for i := range c.Repos {
		if c.Repos[i].Legacy {
			c.Legacy = true
			break
		}
	}

	return nil
}

// SetDefaults resolves the manifest the way the external runner would see it:
// config-level defaults filled in and inherited down to each hook.
func (c *Config) SetDefaults() {
	if len(c.DefaultInstallHookTypes) == 0 {
		c.DefaultInstallHookTypes = []string{"pre-commit"}
	}

	if len(c.DefaultStages) == 0 {
		c.DefaultStages = append([]string(nil), Stages...)
	} else {
		c.DefaultStages = normalizeStages(c.DefaultStages)
	}

	if c.Exclude == "" {
		c.Exclude = "^$"
	}

	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.Name == "" {
				hook.Name = hook.ID
			}
			if len(hook.Stages) == 0 {
				hook.Stages = append([]string(nil), c.DefaultStages...)
			} else {
				hook.Stages = normalizeStages(hook.Stages)
			}
			if hook.LanguageVersion == "" && hook.Language != "" {
				if version, ok := c.DefaultLanguageVersion[hook.Language]; ok {
					hook.LanguageVersion = version
				}
			}
		}
	}
}

// HookByID returns the repo entry and hook matching the given id or alias.
func (c *Config) HookByID(id string) (*Repo, *Hook, bool) {
	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.ID == id || (hook.Alias != "" && hook.Alias == id) {
				return repo, hook, true
			}
		}
	}
	return nil, nil, false
}

// CIConfig is the typed view of the ci extension block consumed by hosted
// runner services.
type CIConfig struct {
	AutofixCommitMsg    string   `yaml:"autofix_commit_msg,omitempty"`
	AutofixPRs          *bool    `yaml:"autofix_prs,omitempty"`
	AutoupdateBranch    string   `yaml:"autoupdate_branch,omitempty"`
	AutoupdateCommitMsg string   `yaml:"autoupdate_commit_msg,omitempty"`
	AutoupdateSchedule  string   `yaml:"autoupdate_schedule,omitempty"`
	Skip                []string `yaml:"skip,omitempty"`
	Submodules          *bool    `yaml:"submodules,omitempty"`
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded manifest into the provided target struct. The target must be a
// pointer.
//
// Example:
//
//	var ci manifest.CIConfig
//	err := cfg.UnmarshalExtension("ci", &ci)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
