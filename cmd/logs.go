package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/hooktools/hookman/cli"
	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/pkg/logging/logutil"
	"github.com/hooktools/hookman/pkg/paths"
)

func NewLogsCmd() *cobra.Command {
	var follow bool
	var tailLines int
	var listComponents bool

	cmd := &cobra.Command{
		Use:   "logs [component]",
		Short: "Show hookman's own log files",
		Long: `Show the log file of a hookman component (default: hookman-cli). Log
files live in the XDG state directory unless the settings file routes
them elsewhere; 'hookman paths' prints the locations.

With --json, lines written by the json format preset pass through
as-is and plain text lines are wrapped in a raw_line object, so the
stream stays parseable either way.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			if listComponents {
				return printLogComponents()
			}

			component := "hookman-cli"
			if len(args) > 0 {
				component = args[0]
			}

			logFile, _, err := logutil.FindComponentLogFile(component)
			if err != nil {
				return err
			}

			lines, err := readTailLines(logFile, tailLines)
			if err != nil {
				return err
			}
			for _, line := range lines {
				emitLogLine(line, opts.JSONOutput)
			}

			if !follow {
				return nil
			}
			return followLogFile(cmd, logFile, opts.JSONOutput)
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow the log as it grows")
	cmd.Flags().IntVar(&tailLines, "tail", 0, "Show only the last N lines (0 shows everything)")
	cmd.Flags().BoolVar(&listComponents, "list", false, "List components that have log files")

	return cmd
}

func printLogComponents() error {
	dir := paths.LogDir()
	components, err := logutil.Components(dir)
	if err != nil {
		return err
	}

	pretty := logging.NewPrettyLogger().WithWriter(os.Stdout)
	if len(components) == 0 {
		pretty.InfoPretty(fmt.Sprintf("no log files in %s", dir))
		return nil
	}
	pretty.Path("logs", dir)
	for _, component := range components {
		fmt.Println(component)
	}
	return nil
}

// readTailLines returns the last n lines of the file, or all of them when n
// is zero.
func readTailLines(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to read log file %s", path))
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func followLogFile(cmd *cobra.Command, path string, jsonOutput bool) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Whence: io.SeekEnd},
		Logger:   stdlog.New(io.Discard, "", 0),
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to tail %s", path))
	}
	defer t.Cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				continue
			}
			emitLogLine(line.Text, jsonOutput)
		}
	}
}

// emitLogLine prints one log line. With jsonOutput, lines that already are
// JSON pass through compacted; anything else is wrapped so the stream stays
// parseable.
func emitLogLine(line string, jsonOutput bool) {
	if !jsonOutput {
		fmt.Println(line)
		return
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err == nil {
		if out, err := json.Marshal(entry); err == nil {
			fmt.Println(string(out))
			return
		}
	}
	out, _ := json.Marshal(map[string]string{"raw_line": line})
	fmt.Println(string(out))
}
