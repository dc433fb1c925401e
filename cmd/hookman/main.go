package main

import (
	"os"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/cmd"
	"github.com/hooktools/hookman/pkg/profiling"
	"github.com/hooktools/hookman/starship"
	"github.com/hooktools/hookman/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"hookman",
		"Model, validate and maintain pre-commit hook manifests",
	)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.Version = version.GetInfo().Short()
	cli.SetVersionTemplate(rootCmd, version.GetInfo())

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(rootCmd)
	rootCmd.PersistentPreRunE = profiler.PreRun
	rootCmd.PersistentPostRun = profiler.PostRun

	starship.RegisterProvider(starship.ManifestStatus)

	rootCmd.AddCommand(
		cmd.NewValidateCmd(),
		cmd.NewValidateManifestCmd(),
		cmd.NewCheckCmd(),
		cmd.NewListCmd(),
		cmd.NewFilesCmd(),
		cmd.NewSampleCmd(),
		cmd.NewFmtCmd(),
		cmd.NewMigrateCmd(),
		cmd.NewSchemaCmd(),
		cmd.NewInstallCmd(),
		cmd.NewUninstallCmd(),
		cmd.NewWatchCmd(),
		cmd.NewLogsCmd(),
		cmd.NewBrowseCmd(),
		cmd.NewPathsCmd(),
		cmd.NewVersionCmd(),
		starship.NewStarshipCmd("hookman"),
	)

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		verbose := false
		for _, arg := range os.Args[1:] {
			if arg == "-v" || arg == "--verbose" {
				verbose = true
			}
		}
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
