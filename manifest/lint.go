package manifest

import (
	"fmt"
	"regexp"
	"strings"
)

// Finding is a non-fatal problem in a manifest: the file is valid, but
// something about it defeats reproducibility or is probably unintended.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Repo    string `json:"repo,omitempty"`
	Hook    string `json:"hook,omitempty"`
}

// String formats the finding for terminal output.
func (f Finding) String() string {
	location := ""
	if f.Repo != "" {
		location = f.Repo
		if f.Hook != "" {
			location += " / " + f.Hook
		}
		location += ": "
	}
	return fmt.Sprintf("%s%s [%s]", location, f.Message, f.Code)
}

// mutableRevNames are revision names that always track a moving target.
var mutableRevNames = map[string]bool{
	"master":  true,
	"main":    true,
	"HEAD":    true,
	"develop": true,
	"trunk":   true,
}

var hexRevRegex = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

// validCISchedules are the autoupdate schedules hosted runner services accept.
var validCISchedules = map[string]bool{
	"weekly":    true,
	"monthly":   true,
	"quarterly": true,
}

// Lint reports findings that Validate does not treat as errors. The manifest
// should be parsed but does not need defaults resolved.
func (c *Config) Lint() []Finding {
	var findings []Finding

	if c.Legacy {
		findings = append(findings, Finding{
			Code:    "legacy-layout",
			Message: "legacy manifest layout; run 'hookman migrate' to modernize",
		})
	}

	for i := range c.Repos {
		repo := &c.Repos[i]
		findings = append(findings, lintRepo(repo)...)
	}

	findings = append(findings, c.lintCI()...)

	return findings
}

func lintRepo(repo *Repo) []Finding {
	var findings []Finding

	if repo.IsRemote() && isMutableRev(repo.Rev) {
		findings = append(findings, Finding{
			Code:    "mutable-rev",
			Message: fmt.Sprintf("rev '%s' is not an immutable pin; tool behavior will drift", repo.Rev),
			Repo:    repo.Repo,
		})
	}

	// Duplicate ids are fine when alias or files tells the instances apart.
	seen := make(map[string]*Hook)
	for i := range repo.Hooks {
		hook := &repo.Hooks[i]

		if prev, ok := seen[hook.ID]; ok {
			if prev.Alias == hook.Alias && prev.Files == hook.Files {
				findings = append(findings, Finding{
					Code:    "duplicate-hook",
					Message: fmt.Sprintf("hook '%s' appears more than once with identical alias and files", hook.ID),
					Repo:    repo.Repo,
					Hook:    hook.ID,
				})
			}
		} else {
			seen[hook.ID] = hook
		}

		if hook.Args != nil && len(hook.Args) == 0 {
			findings = append(findings, Finding{
				Code:    "empty-args",
				Message: "args is present but empty; remove it or add arguments",
				Repo:    repo.Repo,
				Hook:    hook.ID,
			})
		}

		findings = append(findings, lintTypeLabels(repo, hook)...)
	}

	return findings
}

func lintTypeLabels(repo *Repo, hook *Hook) []Finding {
	var findings []Finding
	for _, group := range [][]string{hook.Types, hook.TypesOr, hook.ExcludeTypes} {
		for _, label := range group {
			if !knownTags[label] {
				findings = append(findings, Finding{
					Code:    "unknown-type",
					Message: fmt.Sprintf("type label '%s' is outside the known vocabulary and will never match here", label),
					Repo:    repo.Repo,
					Hook:    hook.ID,
				})
			}
		}
	}
	return findings
}

func (c *Config) lintCI() []Finding {
	if _, ok := c.Extensions["ci"]; !ok {
		return nil
	}

	var ci CIConfig
	if err := c.UnmarshalExtension("ci", &ci); err != nil {
		return []Finding{{
			Code:    "ci-invalid",
			Message: fmt.Sprintf("ci block does not decode: %v", err),
		}}
	}

	if ci.AutoupdateSchedule != "" && !validCISchedules[ci.AutoupdateSchedule] {
		return []Finding{{
			Code:    "ci-schedule",
			Message: fmt.Sprintf("ci autoupdate_schedule '%s' is not one of weekly, monthly, quarterly", ci.AutoupdateSchedule),
		}}
	}

	return nil
}

func isMutableRev(rev string) bool {
	if mutableRevNames[rev] {
		return true
	}
	if hexRevRegex.MatchString(rev) {
		return false
	}
	// A rev with no digit at all is almost certainly a branch name.
	return !strings.ContainsAny(rev, "0123456789")
}
