package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
)

func NewFmtCmd() *cobra.Command {
	var write bool
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Rewrite manifests in canonical form",
		Long: `Parse manifests and re-emit them in canonical form: two-space indent,
fields in model order, extension keys last. Comments are not preserved.

By default the formatted manifest is printed to stdout. --write
rewrites the files in place; --check prints nothing and exits nonzero
when a file is not canonically formatted, for CI.

Files using the legacy layout are refused; run 'hookman migrate'
first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && check {
				return errors.New(errors.ErrCodeInvalidInput, "--write and --check are mutually exclusive")
			}

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

			pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
			var needFormatting []string
			for _, path := range files {
				data, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeManifestNotFound, fmt.Sprintf("cannot read %s", path))
				}

				cfg, err := manifest.Parse(data)
				if err != nil {
					return err
				}
				if cfg.Legacy {
					return errors.New(errors.ErrCodeManifestInvalid,
						fmt.Sprintf("%s uses the legacy layout; run 'hookman migrate' first", path))
				}

				formatted, err := cfg.Encode()
				if err != nil {
					return err
				}

				if bytes.Equal(data, formatted) {
					if write {
						pretty.InfoPretty(fmt.Sprintf("%s unchanged", path))
					}
					continue
				}
				needFormatting = append(needFormatting, path)

				switch {
				case check:
					pretty.WarnPretty(fmt.Sprintf("%s is not canonically formatted", path))
				case write:
					if err := os.WriteFile(path, formatted, 0644); err != nil {
						return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to write %s", path))
					}
					pretty.Success(fmt.Sprintf("formatted %s", path))
				default:
					fmt.Print(string(formatted))
				}
			}

			if check && len(needFormatting) > 0 {
				return errors.New(errors.ErrCodeManifestValidation,
					fmt.Sprintf("%d file(s) need formatting", len(needFormatting)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&check, "check", false, "Exit nonzero when files are not canonically formatted")

	return cmd
}
