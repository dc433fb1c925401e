// Package starship integrates hookman with the Starship prompt: a custom
// module shows the validation status of the manifest governing the current
// directory.
package starship

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/state"
)

// NewStarshipCmd creates the starship command and its subcommands.
// The binaryName parameter is used to configure the command in starship.toml
// (e.g., "hookman" will generate "command = \"hookman starship status\"").
func NewStarshipCmd(binaryName string) *cobra.Command {
	starshipCmd := &cobra.Command{
		Use:   "starship",
		Short: "Manage Starship prompt integration",
		Long:  `Provides commands to show manifest validation status in the Starship prompt.`,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the hookman module to your starship.toml",
		Long: `Appends a custom module to your starship.toml configuration file to display
manifest validation status in your shell prompt. It will also attempt to add
the module to your main prompt format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStarshipInstall(binaryName)
		},
	}

	statusCmd := &cobra.Command{
		Use:    "status",
		Short:  "Print status for Starship prompt (for internal use)",
		Hidden: true,
		RunE:   runStarshipStatus,
	}

	starshipCmd.AddCommand(installCmd)
	starshipCmd.AddCommand(statusCmd)

	return starshipCmd
}

func runStarshipInstall(binaryName string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not get home directory: %w", err)
	}

	configPath := filepath.Join(home, ".config", "starship.toml")

	contentBytes, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("starship config not found at %s. Please ensure starship is installed and configured", configPath)
		}
		return fmt.Errorf("could not read starship config: %w", err)
	}
	content := string(contentBytes)

	// --- 1. Add or update the custom module definition ---
	moduleConfig := fmt.Sprintf(`
# Added by '%s starship install'
[custom.hookman]
description = "Shows pre-commit manifest status"
command = "%s starship status"
when = "test -f .pre-commit-config.yaml || test -f .pre-commit-config.yml"
format = " $output "
`, binaryName, binaryName)

	// Check if [custom.hookman] already exists
	if strings.Contains(content, "[custom.hookman]") {
		// If it exists, check if the command matches
		if !strings.Contains(content, fmt.Sprintf(`command = "%s starship status"`, binaryName)) {
			// Different command exists - keep it rather than fight over the section
			fmt.Printf("ℹ️  [custom.hookman] already exists with a different command.\n")
			fmt.Printf("   Keeping existing configuration to avoid conflicts.\n")
		} else {
			// Same command - replace the entire section
			startIdx := strings.Index(content, "[custom.hookman]")
			if startIdx != -1 {
				afterSection := content[startIdx:]
				nextSectionIdx := strings.Index(afterSection[1:], "\n[")

				var endIdx int
				if nextSectionIdx != -1 {
					endIdx = startIdx + nextSectionIdx + 1
				} else {
					endIdx = len(content)
				}

				content = content[:startIdx] + moduleConfig + content[endIdx:]
				fmt.Println("✓ Updated existing hookman starship module configuration.")
			}
		}
	} else {
		content += moduleConfig
		fmt.Println("✓ Added [custom.hookman] module to starship config.")
	}

	// --- 2. Add the module to the prompt format if not already present ---
	if strings.Contains(content, "${custom.hookman}") || strings.Contains(content, "$custom.hookman") {
		fmt.Println("✓ hookman module already in starship format.")
	} else {
		// Try to insert it after git_metrics, which is a common element.
		target := "$git_metrics\\"
		if strings.Contains(content, target) {
			replacement := target + "\n${custom.hookman}\\"
			content = strings.Replace(content, target, replacement, 1)
			fmt.Println("✓ Added hookman module to starship format.")
		} else {
			fmt.Printf("⚠️  Could not automatically add '${custom.hookman}' to your starship format.\n")
			fmt.Printf("   Please add it manually to the 'format' string in %s\n", configPath)
		}
	}

	// --- 3. Write the updated config back ---
	err = os.WriteFile(configPath, []byte(content), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write updated starship config: %w", err)
	}

	fmt.Printf("\nSuccessfully updated %s. Please restart your shell to see the changes.\n", configPath)
	return nil
}

func runStarshipStatus(cmd *cobra.Command, args []string) error {
	// This command must be fast and should not print errors to stderr.
	currentState, err := state.Load()
	if err != nil {
		// Silently fail if we can't load state
		return nil
	}

	// Call all registered providers and collect their output
	var outputs []string
	for _, provider := range providers {
		output, err := provider(currentState)
		if err != nil {
			// Silently ignore provider errors
			continue
		}
		if output != "" {
			outputs = append(outputs, output)
		}
	}

	// Print all non-empty outputs, joined by separator
	if len(outputs) > 0 {
		fmt.Print(strings.Join(outputs, " | "))
	}

	return nil
}
