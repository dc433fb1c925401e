package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/pkg/paths"
)

// PathsOutput represents the XDG-compliant paths used by hookman.
type PathsOutput struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
	StateDir  string `json:"state_dir"`
	CacheDir  string `json:"cache_dir"`
	LogDir    string `json:"log_dir"`
	StateFile string `json:"state_file"`
}

func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print the XDG-compliant paths used by hookman",
		Long: `Print the XDG-compliant paths used by hookman, in JSON for easy
scripting.

The paths follow the XDG Base Directory Specification, with HOOKMAN_HOME
overriding all of them at once:
- config_dir: the settings file (hookman.yml)
- state_dir:  validation state and logs
- state_file: the cached validation results
- log_dir:    per-component log files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir: paths.ConfigDir(),
				DataDir:   paths.DataDir(),
				StateDir:  paths.StateDir(),
				CacheDir:  paths.CacheDir(),
				LogDir:    paths.LogDir(),
				StateFile: paths.StateFilePath(),
			}

			jsonOutput, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}

			fmt.Println(string(jsonOutput))
			return nil
		},
	}
}
