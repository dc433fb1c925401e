package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
)

func NewMigrateCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "migrate [file]",
		Short: "Migrate a legacy manifest to the modern layout",
		Long: `Rewrite pre-1.0 manifest layouts in place: a bare top-level repository
list gains the repos: mapping, and sha: revision keys become rev:.
Comments and the rest of the document structure are preserved.

The migrated manifest is printed to stdout unless --write is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				var err error
				path, err = cli.ResolveManifest(cmd)
				if err != nil {
					return err
				}
				if path == "" {
					return errors.ManifestNotFound(strings.Join(manifest.DefaultFileNames, " or "))
				}
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeManifestNotFound, fmt.Sprintf("cannot read %s", path))
			}

			migrated, changed, err := manifest.MigrateConfig(data)
			if err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
			if !changed {
				pretty.InfoPretty(fmt.Sprintf("%s already uses the modern layout", path))
				return nil
			}

			if !write {
				fmt.Print(string(migrated))
				return nil
			}

			if err := os.WriteFile(path, migrated, 0644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to write %s", path))
			}
			pretty.Success(fmt.Sprintf("migrated %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Rewrite the file in place")

	return cmd
}
