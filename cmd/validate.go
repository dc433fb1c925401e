package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
	"github.com/hooktools/hookman/schema"
	"github.com/hooktools/hookman/state"
)

// FileReport is the validation outcome for a single manifest file.
type FileReport struct {
	Path     string   `json:"path"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
	Findings []string `json:"findings,omitempty"`
	Legacy   bool     `json:"legacy,omitempty"`
	Cached   bool     `json:"cached,omitempty"`
}

func NewValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate .pre-commit-config.yaml manifests",
		Long: `Validate manifest files against the embedded JSON Schema and the
semantic rules of the configuration model: required fields, pattern
syntax, stage names, local hook requirements and revision pins.

Without arguments the nearest manifest above the working directory is
validated. Lint findings (mutable revisions, duplicate hook ids, legacy
layout) are reported as warnings unless --strict is given.

Examples:
  # Validate the manifest of the current repository
  hookman validate

  # Validate specific files, treating findings as errors
  hookman validate --strict configs/*.yaml

  # Machine-readable report
  hookman validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			files := args
			if len(files) == 0 {
				path, err := cli.ResolveManifest(cmd)
				if err != nil {
					return err
				}
				if path == "" {
					return errors.ManifestNotFound(strings.Join(manifest.DefaultFileNames, " or "))
				}
				files = []string{path}
			}

			reports := make([]FileReport, 0, len(files))
			invalid := 0
			for _, path := range files {
				report := validateManifestFile(path, strict)
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
				printReports(reports)
			}

			if invalid > 0 {
				return errors.New(errors.ErrCodeManifestValidation,
					fmt.Sprintf("%d of %d manifests failed validation", invalid, len(reports)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat lint findings as validation errors")

	return cmd
}

// validateManifestFile runs the full pipeline on one manifest: schema
// validation of the raw document, then parse, lint and semantic validation of
// the typed model. The outcome is recorded in the state cache so that
// check --changed-only and the prompt segment can reuse it.
func validateManifestFile(path string, strict bool) FileReport {
	report := FileReport{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Problems = append(report.Problems, fmt.Sprintf("cannot read file: %v", err))
		return report
	}

	report = validateManifestBytes(path, data, strict)

	_ = state.Set(path, state.Result{
		Digest:    state.Digest(data),
		Valid:     report.Valid,
		Problems:  report.Problems,
		CheckedAt: time.Now().UTC(),
	})

	return report
}

func validateManifestBytes(path string, data []byte, strict bool) FileReport {
	report := FileReport{Path: path, Valid: true}

	cfg, err := manifest.Parse(data)
	if err != nil {
		report.Valid = false
		report.Problems = append(report.Problems, err.Error())
		return report
	}
	report.Legacy = cfg.Legacy

	// The schema describes the modern mapping layout; legacy files get the
	// lint finding and a pointer at migrate instead of a wall of schema
	// errors.
	if !cfg.Legacy {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err == nil {
			if validator, err := schema.NewValidator(); err == nil {
				if err := validator.Validate(doc); err != nil {
					report.Valid = false
					report.Problems = append(report.Problems, schemaProblems(err)...)
				}
			}
		}
	}

	for _, finding := range cfg.Lint() {
		report.Findings = append(report.Findings, finding.String())
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		report.Valid = false
		report.Problems = append(report.Problems, err.Error())
	}

	if strict && len(report.Findings) > 0 {
		report.Valid = false
		report.Problems = append(report.Problems, report.Findings...)
		report.Findings = nil
	}

	return report
}

// schemaProblems flattens a schema validation error into one problem per
// violation, dropping the header line.
func schemaProblems(err error) []string {
	var problems []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "schema validation failed:" {
			continue
		}
		problems = append(problems, strings.TrimPrefix(line, "- "))
	}
	if len(problems) == 0 {
		problems = append(problems, err.Error())
	}
	return problems
}

func printReports(reports []FileReport) {
	pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)

	for i, report := range reports {
		if i > 0 {
			pretty.Blank()
		}

		switch {
		case report.Valid && report.Cached:
			pretty.Success(fmt.Sprintf("%s is valid (cached)", report.Path))
		case report.Valid:
			pretty.Success(fmt.Sprintf("%s is valid", report.Path))
		default:
			pretty.ErrorPretty(fmt.Sprintf("%s is invalid", report.Path), nil)
			pretty.Code(strings.Join(report.Problems, "\n"))
		}

		if report.Legacy {
			pretty.WarnPretty("legacy layout detected; run 'hookman migrate' to modernize")
		}
		for _, finding := range report.Findings {
			pretty.WarnPretty(finding)
		}
	}
}
