package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/config"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
)

// CommandOptions holds common options for hookman commands
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with standard hookman flags
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the .pre-commit-config.yaml manifest")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger creates a logger based on command flags
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	entry := logging.NewLogger("hookman-cli")
	logger := entry.Logger

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// ResolveManifest returns the manifest path a command should operate on: the
// --config flag when given, otherwise the nearest manifest walking up from
// the working directory. Settings may override the file names searched for.
// Returns "" when none is found; commands that require one report that
// themselves.
func ResolveManifest(cmd *cobra.Command) (string, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	names := config.DefaultManifestNames
	if settings, err := config.Load(); err == nil && len(settings.ManifestNames) > 0 {
		names = settings.ManifestNames
	}

	found, err := manifest.FindNamed(cwd, names)
	if err != nil {
		// No manifest found, that's okay for some commands
		return "", nil
	}

	return found, nil
}
