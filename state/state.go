package state

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hooktools/hookman/errors"
	"github.com/hooktools/hookman/pkg/paths"
	"github.com/hooktools/hookman/util/pathutil"
)

// Result records the outcome of validating one manifest.
type Result struct {
	Digest    string    `yaml:"digest"`
	Valid     bool      `yaml:"valid"`
	Problems  []string  `yaml:"problems,omitempty"`
	CheckedAt time.Time `yaml:"checked_at"`
}

// State is the validation result cache, keyed by normalized manifest path
// (symlinks resolved). It lives in the XDG state directory so results are
// shared across the repositories a user checks.
type State struct {
	Results map[string]Result `yaml:"results"`
}

// Digest returns the content digest used to detect manifest changes.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func Load() (*State, error) {
	path := paths.StateFilePath()
	if path == "" {
		return nil, errors.New(errors.ErrCodeInternal, "cannot resolve state file location")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Results: make(map[string]Result)}, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to read state file")
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStateInvalid, "failed to parse state file").
			WithDetail("path", path)
	}

	if st.Results == nil {
		st.Results = make(map[string]Result)
	}

	return &st, nil
}

// Save saves the state to the state file.
func Save(st *State) error {
	path := paths.StateFilePath()
	if path == "" {
		return errors.New(errors.ErrCodeInternal, "cannot resolve state file location")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create state directory")
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal state")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write state file")
	}

	return nil
}

// Get retrieves the cached result for a manifest path.
// Returns the result and true if found.
func Get(manifestPath string) (Result, bool, error) {
	key, err := pathutil.NormalizeForLookup(manifestPath)
	if err != nil {
		return Result{}, false, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid manifest path")
	}

	st, err := Load()
	if err != nil {
		return Result{}, false, err
	}

	result, ok := st.Results[key]
	return result, ok, nil
}

// Set records the result for a manifest path.
func Set(manifestPath string, result Result) error {
	key, err := pathutil.NormalizeForLookup(manifestPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid manifest path")
	}

	st, err := Load()
	if err != nil {
		return err
	}

	st.Results[key] = result
	return Save(st)
}

// Delete removes the cached result for a manifest path.
func Delete(manifestPath string) error {
	key, err := pathutil.NormalizeForLookup(manifestPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid manifest path")
	}

	st, err := Load()
	if err != nil {
		return err
	}

	delete(st.Results, key)
	return Save(st)
}
