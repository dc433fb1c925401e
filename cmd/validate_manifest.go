package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
)

// hooksFileReport is the validation outcome for one .pre-commit-hooks.yaml.
type hooksFileReport struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Hooks    int      `json:"hooks"`
	Problems []string `json:"problems,omitempty"`
}

func NewValidateManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-manifest [files...]",
		Short: "Validate .pre-commit-hooks.yaml hook definition files",
		Long: `Validate the manifest a hook source repository publishes: the bare
list of hook definitions in .pre-commit-hooks.yaml. Each definition
needs an id, a name, an entry and a known language; file patterns and
stage names are checked the same way config manifests are.

Without arguments the hooks file in the working directory is validated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			files := args
			if len(files) == 0 {
				files = []string{manifest.DefaultHooksFileName}
			}

			reports := make([]hooksFileReport, 0, len(files))
			invalid := 0
			for _, path := range files {
				report := validateHooksFile(path)
				if !report.Valid {
					invalid++
				}
				reports = append(reports, report)
			}

			if opts.JSONOutput {
				out, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			} else {
				pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
				for i, report := range reports {
					if i > 0 {
						pretty.Blank()
					}
					if report.Valid {
						pretty.Success(fmt.Sprintf("%s is valid (%d hooks)", report.Path, report.Hooks))
					} else {
						pretty.ErrorPretty(fmt.Sprintf("%s is invalid", report.Path), nil)
						pretty.Code(strings.Join(report.Problems, "\n"))
					}
				}
			}

			if invalid > 0 {
				return errors.New(errors.ErrCodeHooksFileInvalid,
					fmt.Sprintf("%d of %d hooks files failed validation", invalid, len(reports)))
			}
			return nil
		},
	}

	return cmd
}

func validateHooksFile(path string) hooksFileReport {
	report := hooksFileReport{Path: path, Valid: true}

	hooks, err := manifest.LoadHooksFile(path)
	if err != nil {
		report.Valid = false
		report.Problems = append(report.Problems, err.Error())
		return report
	}

	report.Hooks = len(hooks)
	if err := hooks.Validate(); err != nil {
		report.Valid = false
		report.Problems = append(report.Problems, err.Error())
	}

	return report
}
