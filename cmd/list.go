package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/manifest"
	"github.com/hooktools/hookman/tui/components/table"
)

func NewListCmd() *cobra.Command {
	var hooksView bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the repositories and hooks of a manifest",
		Long: `List the repository entries of the nearest manifest, or every hook
with its resolved defaults when --hooks is given. Defaults are resolved
the way the runner would see them: names fall back to ids, stages to
the config default_stages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			path, err := cli.ResolveManifest(cmd)
			if err != nil {
				return err
			}
			if path == "" {
				return errors.ManifestNotFound(strings.Join(manifest.DefaultFileNames, " or "))
			}

			cfg, err := manifest.Load(path)
			if err != nil {
				return err
			}

			if hooksView {
				return printHooks(cfg, opts.JSONOutput)
			}
			return printRepos(cfg, opts.JSONOutput)
		},
	}

	cmd.Flags().BoolVar(&hooksView, "hooks", false, "List every hook instead of the repository entries")

	return cmd
}

func printRepos(cfg *manifest.Config, jsonOutput bool) error {
	if jsonOutput {
		type repoRow struct {
			Repo  string `json:"repo"`
			Rev   string `json:"rev,omitempty"`
			Hooks int    `json:"hooks"`
		}
		rows := make([]repoRow, 0, len(cfg.Repos))
		for i := range cfg.Repos {
			repo := &cfg.Repos[i]
			rows = append(rows, repoRow{Repo: repo.Repo, Rev: repo.Rev, Hooks: len(repo.Hooks)})
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	rows := make([][]string, 0, len(cfg.Repos))
	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		rev := repo.Rev
		if rev == "" {
			rev = "-"
		}
		rows = append(rows, []string{repo.Repo, rev, strconv.Itoa(len(repo.Hooks))})
	}
	fmt.Println(table.SimpleTable([]string{"REPO", "REV", "HOOKS"}, rows))
	return nil
}

func printHooks(cfg *manifest.Config, jsonOutput bool) error {
	if jsonOutput {
		type hookRow struct {
			ID     string   `json:"id"`
			Name   string   `json:"name"`
			Repo   string   `json:"repo"`
			Stages []string `json:"stages"`
		}
		var rows []hookRow
		for i := range cfg.Repos {
			repo := &cfg.Repos[i]
			for j := range repo.Hooks {
				hook := &repo.Hooks[j]
				rows = append(rows, hookRow{
					ID:     hook.ID,
					Name:   hook.Name,
					Repo:   repo.Repo,
					Stages: hook.Stages,
				})
			}
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	var rows [][]string
	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			rows = append(rows, []string{hook.ID, hook.Name, repo.Repo, formatStages(hook.Stages)})
		}
	}
	fmt.Println(table.SimpleTable([]string{"ID", "NAME", "REPO", "STAGES"}, rows))
	return nil
}

// formatStages collapses the full stage set, the usual case after defaults
// are resolved, to keep the table readable.
func formatStages(stages []string) string {
	if len(stages) == len(manifest.Stages) {
		return "all"
	}
	return strings.Join(stages, ", ")
}
