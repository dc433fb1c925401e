package cmd

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/config"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/state"
)

func NewCheckCmd() *cobra.Command {
	var ignorePatterns []string
	var changedOnly bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Find and validate every manifest under a directory",
		Long: `Walk a directory tree, find every manifest file and validate all of
them. Intended for monorepos and CI jobs that keep more than one
configuration.

Ignore patterns use the .dockerignore syntax and come from the settings
file (check.ignore) plus any --ignore flags. The .git directory is
always skipped.

With --changed-only, files whose content digest matches the cached
validation result are not re-validated; the cached outcome is reported
instead.

Examples:
  # Validate every manifest in the repository
  hookman check

  # Skip vendored trees and only look at changed files
  hookman check --ignore 'vendor/**' --changed-only`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			opts := cli.GetOptions(cmd)

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			settings, err := config.Load()
			if err != nil {
				return err
			}

			patterns := append(append([]string(nil), settings.Check.Ignore...), ignorePatterns...)
			var matcher *patternmatcher.PatternMatcher
			if len(patterns) > 0 {
				matcher, err = patternmatcher.New(patterns)
				if err != nil {
					return errors.Wrap(err, errors.ErrCodePatternInvalid, "invalid ignore pattern")
				}
			}

			logger.Debugf("Searching %s for %v", root, settings.ManifestNames)
			found, err := findManifests(root, settings.ManifestNames, matcher)
			if err != nil {
				return err
			}
			logger.Debugf("Found %d manifest(s)", len(found))

			pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
			if len(found) == 0 {
				if opts.JSONOutput {
					fmt.Println("[]")
				} else {
					pretty.WarnPretty(fmt.Sprintf("no manifests found under %s", root))
				}
				return nil
			}

			reports := make([]FileReport, 0, len(found))
			invalid := 0
			for _, path := range found {
				report := checkManifest(path, strict, changedOnly)
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
				pretty.Divider()
				pretty.Field("manifests", len(reports))
				pretty.Field("valid", len(reports)-invalid)
				if invalid > 0 {
					pretty.Field("invalid", invalid)
				}
			}

			if invalid > 0 {
				return errors.New(errors.ErrCodeManifestValidation,
					fmt.Sprintf("%d of %d manifests failed validation", invalid, len(reports)))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&ignorePatterns, "ignore", nil, "Ignore pattern (.dockerignore syntax, repeatable)")
	cmd.Flags().BoolVar(&changedOnly, "changed-only", false, "Skip files whose cached validation result is still current")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat lint findings as validation errors")

	return cmd
}

// findManifests walks root and collects every file whose name is one of the
// configured manifest names, pruning ignored and .git directories.
func findManifests(root string, names []string, matcher *patternmatcher.PatternMatcher) ([]string, error) {
	nameSet := make(map[string]bool, len(names))
	for _, name := range names {
		nameSet[name] = true
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if matcher != nil && rel != "." {
				if ignored, _ := matcher.MatchesOrParentMatches(rel); ignored {
					return fs.SkipDir
				}
			}
			return nil
		}

		if !nameSet[d.Name()] {
			return nil
		}
		if matcher != nil {
			if ignored, _ := matcher.MatchesOrParentMatches(rel); ignored {
				return nil
			}
		}

		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to walk %s", root))
	}

	return found, nil
}

// checkManifest validates one manifest, short-circuiting to the cached result
// when changedOnly is set and the file's digest has not moved.
func checkManifest(path string, strict, changedOnly bool) FileReport {
	if changedOnly {
		if data, err := os.ReadFile(path); err == nil {
			if result, ok, err := state.Get(path); err == nil && ok && result.Digest == state.Digest(data) {
				return FileReport{
					Path:     path,
					Valid:    result.Valid,
					Problems: result.Problems,
					Cached:   true,
				}
			}
		}
	}
	return validateManifestFile(path, strict)
}
