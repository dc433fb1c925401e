package manifest

import (
	"fmt"
	"regexp"

	"github.com/hooktools/hookman/errors"
)

var versionRegex = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Validate checks the manifest semantically: required keys, revision pin
// rules, hook placement rules, and pattern syntax. It does not touch the
// filesystem or any remote source.
func (c *Config) Validate() error {
	if c.Repos == nil {
		return errors.New(errors.ErrCodeManifestValidation, "repos key is required")
	}

	for i := range c.Repos {
		repo := &c.Repos[i]
		if err := validateRepo(repo); err != nil {
			return errors.Wrap(err, errors.ErrCodeManifestValidation,
				fmt.Sprintf("invalid repo entry '%s'", repoLabel(repo, i))).
				WithDetail("repo", repo.Repo).
				WithDetail("index", i)
		}
	}

	if err := validatePattern("files", c.Files); err != nil {
		return err
	}
	if err := validatePattern("exclude", c.Exclude); err != nil {
		return err
	}

	for _, stage := range c.DefaultStages {
		if err := validateStage(stage); err != nil {
			return err
		}
	}
	for _, hookType := range c.DefaultInstallHookTypes {
		if !stageSet[NormalizeStage(hookType)] {
			return errors.New(errors.ErrCodeManifestValidation,
				fmt.Sprintf("unknown hook type '%s' in default_install_hook_types", hookType)).
				WithDetail("hookType", hookType)
		}
	}

	if err := validateVersion(c.MinimumPreCommitVersion); err != nil {
		return err
	}

	return nil
}

func repoLabel(repo *Repo, index int) string {
	if repo.Repo != "" {
		return repo.Repo
	}
	return fmt.Sprintf("#%d", index)
}

func validateRepo(repo *Repo) error {
	if repo.Repo == "" {
		return errors.New(errors.ErrCodeManifestValidation, "repo must not be empty")
	}
	if len(repo.Hooks) == 0 {
		return errors.New(errors.ErrCodeManifestValidation, "repo must declare at least one hook")
	}

	// The revision pin keeps remote tool behavior reproducible. Local and
	// meta entries have nothing to pin.
	if repo.IsRemote() {
		if repo.Rev == "" {
			return errors.New(errors.ErrCodeManifestValidation, "remote repo requires a rev")
		}
	} else if repo.Rev != "" {
		return errors.New(errors.ErrCodeManifestValidation,
			fmt.Sprintf("%s repo must not set rev", repo.Repo))
	}

	for i := range repo.Hooks {
		hook := &repo.Hooks[i]
		if err := validateHook(repo, hook); err != nil {
			return errors.Wrap(err, errors.ErrCodeManifestValidation,
				fmt.Sprintf("invalid hook '%s'", hookLabel(hook, i))).
				WithDetail("hook", hook.ID)
		}
	}

	return nil
}

func hookLabel(hook *Hook, index int) string {
	if hook.ID != "" {
		return hook.ID
	}
	return fmt.Sprintf("#%d", index)
}

func validateHook(repo *Repo, hook *Hook) error {
	if hook.ID == "" {
		return errors.New(errors.ErrCodeManifestValidation, "hook id is required")
	}

	switch {
	case repo.IsLocal():
		if hook.Name == "" {
			return errors.New(errors.ErrCodeManifestValidation, "local hook requires a name")
		}
		if hook.Entry == "" {
			return errors.New(errors.ErrCodeManifestValidation, "local hook requires an entry")
		}
		if hook.Language == "" {
			return errors.New(errors.ErrCodeManifestValidation, "local hook requires a language")
		}
		if !languageSet[hook.Language] {
			return errors.New(errors.ErrCodeManifestValidation,
				fmt.Sprintf("unknown language '%s'", hook.Language)).
				WithDetail("language", hook.Language)
		}
	case repo.IsMeta():
		if !metaHookSet[hook.ID] {
			return errors.New(errors.ErrCodeManifestValidation,
				fmt.Sprintf("unknown meta hook '%s'", hook.ID)).
				WithDetail("knownMetaHooks", MetaHooks)
		}
		if hook.Entry != "" || hook.Language != "" {
			return errors.New(errors.ErrCodeManifestValidation,
				"meta hook must not set entry or language")
		}
	default:
		// Remote hooks are defined by the source repository's hooks file;
		// the config only selects and parameterizes them.
		if hook.Entry != "" || hook.Language != "" {
			return errors.New(errors.ErrCodeManifestValidation,
				"remote hook must not set entry or language")
		}
	}

	if err := validatePattern("files", hook.Files); err != nil {
		return err
	}
	if err := validatePattern("exclude", hook.Exclude); err != nil {
		return err
	}

	for _, stage := range hook.Stages {
		if err := validateStage(stage); err != nil {
			return err
		}
	}

	if err := validateVersion(hook.MinimumPreCommitVersion); err != nil {
		return err
	}

	return nil
}

func validatePattern(field, pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return errors.PatternInvalid(field, pattern, err)
	}
	return nil
}

func validateStage(stage string) error {
	if !stageSet[NormalizeStage(stage)] {
		return errors.New(errors.ErrCodeManifestValidation,
			fmt.Sprintf("unknown stage '%s'", stage)).
			WithDetail("stage", stage)
	}
	return nil
}

func validateVersion(version string) error {
	if version == "" {
		return nil
	}
	if !versionRegex.MatchString(version) {
		return errors.New(errors.ErrCodeManifestValidation,
			fmt.Sprintf("minimum_pre_commit_version '%s' is not a version", version)).
			WithDetail("version", version)
	}
	return nil
}
