package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const preCommitHookTemplate = `#!/bin/sh
# hookman git hook - {{.HookName}}
# Auto-generated, do not edit directly

HOOKMAN_BIN="{{.HookmanBinary}}"

# Check if hookman is installed
if ! command -v "$HOOKMAN_BIN" >/dev/null 2>&1; then
    echo "hookman not found. Skipping {{.HookName}} validation."
    exit 0
fi

cd "$(git rev-parse --show-toplevel)" || exit 0

# Nothing to validate without a config
if [ ! -f .pre-commit-config.yaml ] && [ ! -f .pre-commit-config.yml ]; then
    exit 0
fi

"$HOOKMAN_BIN" validate
`

// managedHooks lists the hook names hookman owns. Only the manifest is
// validated before a commit; the configured hooks themselves are never run.
var managedHooks = []string{"pre-commit"}

// HookManager manages git hooks for hookman
type HookManager struct {
	hookmanBinary string
}

// Ensure it implements the interface
var _ HookProvider = (*HookManager)(nil)

// NewHookManager creates a new hook manager
func NewHookManager(hookmanBinary string) *HookManager {
	if hookmanBinary == "" {
		hookmanBinary = "hookman"
	}
	return &HookManager{
		hookmanBinary: hookmanBinary,
	}
}

// InstallHooks installs the hookman git hooks
func (m *HookManager) InstallHooks(ctx context.Context, repoPath string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	for _, hookName := range managedHooks {
		if err := m.installHook(hooksDir, hookName, preCommitHookTemplate); err != nil {
			return fmt.Errorf("install %s hook: %w", hookName, err)
		}
	}

	return nil
}

// UninstallHooks removes the hookman git hooks and restores any hook that was
// backed up during install
func (m *HookManager) UninstallHooks(ctx context.Context, repoPath string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")

	for _, hookName := range managedHooks {
		hookPath := filepath.Join(hooksDir, hookName)

		// Check it's a hookman hook before removing
		if !m.isHookmanHook(hookPath) {
			continue
		}
		if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s hook: %w", hookName, err)
		}

		backupPath := hookPath + ".pre-hookman"
		if _, err := os.Stat(backupPath); err == nil {
			if err := os.Rename(backupPath, hookPath); err != nil {
				return fmt.Errorf("restore %s hook: %w", hookName, err)
			}
		}
	}

	return nil
}

// installHook installs a single git hook
func (m *HookManager) installHook(hooksDir, hookName, templateContent string) error {
	hookPath := filepath.Join(hooksDir, hookName)

	// Check if hook already exists
	if _, err := os.Stat(hookPath); err == nil {
		if !m.isHookmanHook(hookPath) {
			// Backup existing hook
			backupPath := hookPath + ".pre-hookman"
			if err := os.Rename(hookPath, backupPath); err != nil {
				return fmt.Errorf("backup existing hook: %w", err)
			}
		}
	}

	tmpl, err := template.New(hookName).Parse(templateContent)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		HookName      string
		HookmanBinary string
	}{
		HookName:      hookName,
		HookmanBinary: m.hookmanBinary,
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	// Write hook file with executable permissions
	// #nosec G306 - Git hooks need to be executable
	if err := os.WriteFile(hookPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	return nil
}

// isHookmanHook checks if a hook file is managed by hookman
func (m *HookManager) isHookmanHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte("hookman git hook"))
}
