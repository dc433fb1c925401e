package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/version"
)

func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("hookman", version.GetInfo())
}
