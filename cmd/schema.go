package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/manifest"
)

func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for .pre-commit-config.yaml",
		Long: `Print the JSON Schema describing the manifest format, generated from
the configuration model. Useful for editor integration (yaml-language-
server) and for validating manifests with external tooling.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := manifest.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
