package errors

import (
	"fmt"
	"os/exec"
)

// ManifestNotFound creates a manifest not found error
func ManifestNotFound(path string) *HookmanError {
	return New(ErrCodeManifestNotFound, fmt.Sprintf("manifest file not found: %s", path)).
		WithDetail("path", path)
}

// ManifestInvalid creates an invalid manifest error
func ManifestInvalid(reason string) *HookmanError {
	return New(ErrCodeManifestInvalid, fmt.Sprintf("invalid manifest: %s", reason))
}

// HookNotFound creates a hook not found error
func HookNotFound(hookID string) *HookmanError {
	return New(ErrCodeHookNotFound, fmt.Sprintf("hook '%s' not found", hookID)).
		WithDetail("hook", hookID)
}

// RepoNotFound creates a repository entry not found error
func RepoNotFound(repo string) *HookmanError {
	return New(ErrCodeRepoNotFound, fmt.Sprintf("repository '%s' not found in manifest", repo)).
		WithDetail("repo", repo)
}

// PatternInvalid creates an invalid file pattern error
func PatternInvalid(field, pattern string, err error) *HookmanError {
	return Wrap(err, ErrCodePatternInvalid,
		fmt.Sprintf("invalid %s pattern: %s", field, pattern)).
		WithDetail("field", field).
		WithDetail("pattern", pattern)
}

// HooksFileNotFound creates a hooks file not found error
func HooksFileNotFound(path string) *HookmanError {
	return New(ErrCodeHooksFileNotFound, fmt.Sprintf("hooks file not found: %s", path)).
		WithDetail("path", path)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *HookmanError {
	hookmanErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		hookmanErr = hookmanErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return hookmanErr
}

// NotGitRepository creates an error for paths outside a git work tree
func NotGitRepository(path string) *HookmanError {
	return New(ErrCodeGitNotRepository, fmt.Sprintf("not a git repository: %s", path)).
		WithDetail("path", path)
}
