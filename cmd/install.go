package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/git"
	"github.com/hooktools/hookman/logging"
)

func NewInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the manifest validation hook in the current git repository",
		Long: `Write a pre-commit script to .git/hooks that runs 'hookman validate'
against the repository's manifest before each commit. A foreign
pre-commit hook is backed up as pre-commit.pre-hookman and restored on
uninstall.

The script only validates the manifest; the hooks it configures are
installed and executed by the external runner, never by hookman.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			root, err := git.GetGitRoot(cwd)
			if err != nil {
				return errors.NotGitRepository(cwd)
			}

			manager := git.NewHookManager("hookman")
			if err := manager.InstallHooks(cmd.Context(), root); err != nil {
				return errors.Wrap(err, errors.ErrCodeHookInstall, "failed to install git hook")
			}

			pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
			pretty.Success("installed pre-commit validation hook")
			pretty.Path("repository", root)
			return nil
		},
	}
}

func NewUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the manifest validation hook from the current git repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			root, err := git.GetGitRoot(cwd)
			if err != nil {
				return errors.NotGitRepository(cwd)
			}

			manager := git.NewHookManager("hookman")
			if err := manager.UninstallHooks(cmd.Context(), root); err != nil {
				return errors.Wrap(err, errors.ErrCodeHookInstall, "failed to remove git hook")
			}

			pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
			pretty.Success("removed pre-commit validation hook")
			return nil
		},
	}
}
