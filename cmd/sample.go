package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
)

func NewSampleCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a starter .pre-commit-config.yaml",
		Long: `Print a starter manifest with a formatter, a spell checker and a style
linter, each pinned to a fixed revision. With --write the sample is
written to .pre-commit-config.yaml in the working directory; an
existing file is never overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := manifest.Sample().Encode()
			if err != nil {
				return err
			}

			if !write {
				fmt.Print(string(out))
				return nil
			}

			target := manifest.DefaultFileNames[0]
			if _, err := os.Stat(target); err == nil {
				return errors.New(errors.ErrCodeInvalidInput,
					fmt.Sprintf("%s already exists, refusing to overwrite", target))
			}
			if err := os.WriteFile(target, out, 0644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to write %s", target))
			}

			pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
			pretty.Success(fmt.Sprintf("wrote %s", target))
			pretty.InfoPretty("edit the revisions to match the tools your project uses, then run 'hookman validate'")
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write the sample to .pre-commit-config.yaml instead of stdout")

	return cmd
}
