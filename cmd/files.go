package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/manifest"
)

func NewFilesCmd() *cobra.Command {
	var hookID string

	cmd := &cobra.Command{
		Use:   "files [paths...]",
		Short: "Show which hooks would receive the given paths",
		Long: `Map caller-provided paths to the hooks that would receive them,
applying each hook's files/exclude patterns and type labels on top of
the config-wide ones.

Paths come from the arguments, or from stdin when a single '-' is
given. hookman never asks git which files changed; callers supply the
paths.

Examples:
  # Which hooks would see these two files?
  hookman files src/app.py README.md

  # Feed the staged files in from git
  git diff --cached --name-only | hookman files -

  # Only show what one hook would receive
  hookman files --hook black src/*.py`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			paths := args
			if len(args) == 1 && args[0] == "-" {
				var err error
				paths, err = readPaths(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				return errors.New(errors.ErrCodeInvalidInput,
					"no paths given; pass them as arguments or pipe them to 'hookman files -'")
			}

			manifestPath, err := cli.ResolveManifest(cmd)
			if err != nil {
				return err
			}
			if manifestPath == "" {
				return errors.ManifestNotFound(strings.Join(manifest.DefaultFileNames, " or "))
			}

			cfg, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}

			filters, err := cfg.CompileFilters()
			if err != nil {
				return err
			}

			if hookID != "" {
				filters = selectHook(filters, hookID)
				if len(filters) == 0 {
					return errors.HookNotFound(hookID)
				}
			}

			type hookFiles struct {
				Hook  string   `json:"hook"`
				Repo  string   `json:"repo"`
				Files []string `json:"files"`
			}

			var results []hookFiles
			for i := range filters {
				filter := &filters[i]
				matched := filter.Apply(paths)
				if len(matched) == 0 && hookID == "" {
					continue
				}
				results = append(results, hookFiles{
					Hook:  filter.Hook.ID,
					Repo:  filter.RepoSource,
					Files: matched,
				})
			}

			if opts.JSONOutput {
				if results == nil {
					results = []hookFiles{}
				}
				out, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			for i, result := range results {
				if i > 0 {
					fmt.Println()
				}
				fmt.Printf("%s:\n", result.Hook)
				for _, file := range result.Files {
					fmt.Printf("  %s\n", file)
				}
				if len(result.Files) == 0 {
					fmt.Println("  (no matching files)")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hookID, "hook", "", "Limit output to a single hook id or alias")

	return cmd
}

// readPaths reads newline-separated paths, skipping blanks.
func readPaths(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read paths from stdin")
	}
	return paths, nil
}

func selectHook(filters []manifest.HookFilter, id string) []manifest.HookFilter {
	var selected []manifest.HookFilter
	for i := range filters {
		hook := filters[i].Hook
		if hook.ID == id || (hook.Alias != "" && hook.Alias == id) {
			selected = append(selected, filters[i])
		}
	}
	return selected
}
