package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hooktools/hookman/errors"
)

// extensionTags maps a lowercased file extension to its type labels. This is
// a reduced vocabulary of the external runner's file tagging; every entry
// carries text or binary.
var extensionTags = map[string][]string{
	"bash":     {"text", "shell", "bash"},
	"c":        {"text", "c"},
	"cc":       {"text", "c++"},
	"cfg":      {"text", "ini"},
	"cpp":      {"text", "c++"},
	"css":      {"text", "css"},
	"csv":      {"text", "csv"},
	"gif":      {"binary", "image", "gif"},
	"go":       {"text", "go"},
	"gz":       {"binary", "gzip"},
	"h":        {"text", "c", "header"},
	"hpp":      {"text", "c++", "header"},
	"html":     {"text", "html"},
	"ini":      {"text", "ini"},
	"ipynb":    {"text", "jupyter", "json"},
	"java":     {"text", "java"},
	"jpeg":     {"binary", "image", "jpeg"},
	"jpg":      {"binary", "image", "jpeg"},
	"js":       {"text", "javascript"},
	"json":     {"text", "json"},
	"kt":       {"text", "kotlin"},
	"lua":      {"text", "lua"},
	"markdown": {"text", "markdown"},
	"md":       {"text", "markdown"},
	"pdf":      {"binary", "pdf"},
	"php":      {"text", "php"},
	"pl":       {"text", "perl"},
	"png":      {"binary", "image", "png"},
	"proto":    {"text", "proto"},
	"py":       {"text", "python"},
	"pyi":      {"text", "python"},
	"r":        {"text", "r"},
	"rb":       {"text", "ruby"},
	"rs":       {"text", "rust"},
	"rst":      {"text", "rst"},
	"sh":       {"text", "shell"},
	"sql":      {"text", "sql"},
	"svg":      {"text", "svg", "xml", "image"},
	"swift":    {"text", "swift"},
	"tf":       {"text", "terraform"},
	"toml":     {"text", "toml"},
	"ts":       {"text", "ts"},
	"tsx":      {"text", "tsx"},
	"txt":      {"text", "plain-text"},
	"xml":      {"text", "xml"},
	"yaml":     {"text", "yaml"},
	"yml":      {"text", "yaml"},
	"zip":      {"binary", "zip"},
	"zsh":      {"text", "shell", "zsh"},
}

// nameTags maps well-known basenames to type labels.
var nameTags = map[string][]string{
	".gitignore": {"text", "gitignore"},
	"BUILD":      {"text", "bazel"},
	"Dockerfile": {"text", "dockerfile"},
	"Makefile":   {"text", "makefile"},
	"WORKSPACE":  {"text", "bazel"},
}

// structuralTags are labels derived from path properties rather than names.
var structuralTags = []string{
	"file",
	"directory",
	"symlink",
	"executable",
	"non-executable",
	"text",
	"binary",
}

// knownTags is the full label vocabulary, used by Lint to flag labels that
// can never match.
var knownTags = buildKnownTags()

func buildKnownTags() map[string]bool {
	known := make(map[string]bool)
	for _, tags := range extensionTags {
		for _, tag := range tags {
			known[tag] = true
		}
	}
	for _, tags := range nameTags {
		for _, tag := range tags {
			known[tag] = true
		}
	}
	for _, tag := range structuralTags {
		known[tag] = true
	}
	return known
}

// tagsForPath derives the type labels for a path. Name and extension labels
// never require the file to exist; the executable bit is only known when it
// does.
func tagsForPath(path string) map[string]bool {
	tags := map[string]bool{"file": true}

	name := filepath.Base(path)
	for _, tag := range nameTags[name] {
		tags[tag] = true
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, tag := range extensionTags[ext] {
		tags[tag] = true
	}

	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			delete(tags, "file")
			tags["directory"] = true
		} else if info.Mode()&0111 != 0 {
			tags["executable"] = true
		} else {
			tags["non-executable"] = true
		}
	}

	return tags
}

// HookFilter holds the compiled file filters for one resolved hook. Paths are
// matched with search semantics, like the external runner.
type HookFilter struct {
	RepoSource string
	Hook       *Hook

	files         *regexp.Regexp
	exclude       *regexp.Regexp
	configFiles   *regexp.Regexp
	configExclude *regexp.Regexp
}

// CompileFilters compiles the file filters of every hook in the manifest.
// The filters reference the config's hooks; the config must outlive them.
func (c *Config) CompileFilters() ([]HookFilter, error) {
	configFiles, err := compilePattern("files", c.Files)
	if err != nil {
		return nil, err
	}
	configExclude, err := compilePattern("exclude", c.Exclude)
	if err != nil {
		return nil, err
	}

	var filters []HookFilter
	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]

			files, err := compilePattern("files", hook.Files)
			if err != nil {
				return nil, err
			}
			exclude, err := compilePattern("exclude", hook.Exclude)
			if err != nil {
				return nil, err
			}

			filters = append(filters, HookFilter{
				RepoSource:    repo.Repo,
				Hook:          hook,
				files:         files,
				exclude:       exclude,
				configFiles:   configFiles,
				configExclude: configExclude,
			})
		}
	}

	return filters, nil
}

func compilePattern(field, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.PatternInvalid(field, pattern, err)
	}
	return re, nil
}

// Matches reports whether the hook would receive the given path.
func (f *HookFilter) Matches(path string) bool {
	if f.configFiles != nil && !f.configFiles.MatchString(path) {
		return false
	}
	if f.configExclude != nil && f.configExclude.MatchString(path) {
		return false
	}
	if f.files != nil && !f.files.MatchString(path) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(path) {
		return false
	}
	return f.matchesTypes(path)
}

func (f *HookFilter) matchesTypes(path string) bool {
	if len(f.Hook.Types) == 0 && len(f.Hook.TypesOr) == 0 && len(f.Hook.ExcludeTypes) == 0 {
		return true
	}

	tags := tagsForPath(path)

	for _, label := range f.Hook.Types {
		if !tags[label] {
			return false
		}
	}

	if len(f.Hook.TypesOr) > 0 {
		matched := false
		for _, label := range f.Hook.TypesOr {
			if tags[label] {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, label := range f.Hook.ExcludeTypes {
		if tags[label] {
			return false
		}
	}

	return true
}

// Apply returns the subset of the caller-provided paths the hook would
// receive. The paths are inputs; they are never derived from git state.
func (f *HookFilter) Apply(paths []string) []string {
	var matched []string
	for _, path := range paths {
		if f.Matches(path) {
			matched = append(matched, path)
		}
	}
	return matched
}
