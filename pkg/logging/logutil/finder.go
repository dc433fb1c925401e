// Package logutil locates the log files the logging package writes, so the
// logs command can find them without duplicating sink configuration.
package logutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hooktools/hookman/config"
	"github.com/hooktools/hookman/logging"
	"github.com/hooktools/hookman/pkg/paths"
	"github.com/hooktools/hookman/util/pathutil"
)

// logFileName matches the date-suffixed files the logging package produces,
// e.g. "check-2026-08-25.log". The first group is the component name.
var logFileName = regexp.MustCompile(`^(.+)-\d{4}-\d{2}-\d{2}\.log$`)

// FindComponentLogFile determines the log file to display for a component.
// A custom file sink configured in the [logging] settings table wins over
// the shared log directory. Returns the file path and the directory that
// was searched. An empty component matches any component.
func FindComponentLogFile(component string) (logFile string, logsDir string, err error) {
	settings, settingsErr := config.Load()

	var logCfg logging.Config
	if settingsErr == nil && settings != nil {
		if unmarshalErr := settings.UnmarshalExtension("logging", &logCfg); unmarshalErr != nil {
			// Continue with the default directory if the table is malformed.
		}
	}

	if logCfg.File.Enabled && logCfg.File.Path != "" {
		expanded, expandErr := pathutil.Expand(logCfg.File.Path)
		if expandErr != nil {
			return "", "", expandErr
		}
		return expanded, filepath.Dir(expanded), nil
	}

	logsDir = paths.LogDir()
	if logsDir == "" {
		return "", "", fmt.Errorf("could not determine log directory")
	}
	logFile, err = FindLatestLogFile(logsDir, component)
	return logFile, logsDir, err
}

// FindLatestLogFile finds the most recently modified non-empty log file in a
// directory, preferring files with content over empty ones. When component is
// non-empty only that component's files are considered.
func FindLatestLogFile(dir, component string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("could not read log directory %s: %w", dir, err)
	}

	var latestFile os.FileInfo
	var latestPath string
	var latestNonEmptyFile os.FileInfo
	var latestNonEmptyPath string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if component != "" && componentOf(entry.Name()) != component {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Track latest file overall
		if latestFile == nil || info.ModTime().After(latestFile.ModTime()) {
			latestFile = info
			latestPath = filepath.Join(dir, entry.Name())
		}
		// Track latest non-empty file
		if info.Size() > 0 {
			if latestNonEmptyFile == nil || info.ModTime().After(latestNonEmptyFile.ModTime()) {
				latestNonEmptyFile = info
				latestNonEmptyPath = filepath.Join(dir, entry.Name())
			}
		}
	}

	// Prefer non-empty files
	if latestNonEmptyFile != nil {
		return latestNonEmptyPath, nil
	}

	if latestFile == nil {
		if component != "" {
			return "", fmt.Errorf("no log files for component %q in %s", component, dir)
		}
		return "", fmt.Errorf("no log files found in %s", dir)
	}

	return latestPath, nil
}

// Components lists the distinct component names that have log files in dir,
// sorted alphabetically.
func Components(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read log directory %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := componentOf(entry.Name()); name != "" {
			seen[name] = true
		}
	}

	components := make([]string, 0, len(seen))
	for name := range seen {
		components = append(components, name)
	}
	sort.Strings(components)
	return components, nil
}

// componentOf extracts the component name from a log file name. Files that
// do not carry the date suffix fall back to the bare name minus extension.
func componentOf(fileName string) string {
	if m := logFileName.FindStringSubmatch(fileName); m != nil {
		return m[1]
	}
	if strings.HasSuffix(fileName, ".log") {
		return strings.TrimSuffix(fileName, ".log")
	}
	return ""
}
