package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/manifest"
	"github.com/hooktools/hookman/pkg/watch"
)

func NewWatchCmd() *cobra.Command {
	var debounce time.Duration
	var strict bool

	cmd := &cobra.Command{
		Use:   "watch [files...]",
		Short: "Re-validate manifests whenever they change",
		Long: `Watch manifest files and re-validate them on every change, printing a
status line per run. Useful in a second terminal while editing a
configuration.

Editors that replace files on save are handled; rapid successive
writes are collapsed by the debounce window. Each run is also recorded
in the watch component log.`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// Status lines belong on stdout; the context writer carries that
			// through to every log call.
			ctx = logging.WithWriter(ctx, os.Stdout)

			log := logging.NewUnifiedLogger("watch")

			for _, path := range files {
				logWatchStatus(ctx, log, validateManifestFile(path, strict))
			}

			watcher, err := watch.New(files, debounce, func(path string) {
				logWatchStatus(ctx, log, validateManifestFile(path, strict))
			})
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to start watcher")
			}
			defer watcher.Close()

			log.Status(fmt.Sprintf("watching %d manifest(s), press ctrl-c to stop", len(files))).
				Field("files", len(files)).
				Field("debounce", debounce.String()).
				Log(ctx)
			watcher.Start(ctx)
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-validating after a change")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat lint findings as validation errors")

	return cmd
}

func logWatchStatus(ctx context.Context, log *logging.UnifiedLogger, report FileReport) {
	stamp := time.Now().Format("15:04:05")

	if report.Valid {
		log.Success(fmt.Sprintf("[%s] %s is valid", stamp, report.Path)).
			Field("path", report.Path).
			Field("valid", true).
			Log(ctx)
		return
	}

	log.Error(fmt.Sprintf("[%s] %s is invalid", stamp, report.Path)).
		Field("path", report.Path).
		Field("valid", false).
		Field("problems", len(report.Problems)).
		Log(ctx)
	for _, problem := range report.Problems {
		log.Status("  "+problem).NoIcon().PrettyOnly().Log(ctx)
	}
}
