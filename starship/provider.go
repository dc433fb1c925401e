package starship

import (
	"fmt"
	"os"

	"github.com/hooktools/hookman/manifest"
	"github.com/hooktools/hookman/state"
	"github.com/hooktools/hookman/tui/theme"
	"github.com/hooktools/hookman/util/pathutil"
)

// StatusProvider generates a status string from the current validation
// state. Providers should return an empty string if they have nothing to
// display.
type StatusProvider func(st *state.State) (string, error)

// providers holds all registered status providers.
var providers []StatusProvider

// RegisterProvider registers a status provider to be called by the hidden
// status command the starship module invokes on every prompt render.
func RegisterProvider(p StatusProvider) {
	providers = append(providers, p)
}

// GetProviders returns all registered status providers.
// This is primarily used for testing.
func GetProviders() []StatusProvider {
	return providers
}

// ClearProviders removes all registered providers.
// This is primarily used for testing.
func ClearProviders() {
	providers = nil
}

// ManifestStatus reports the cached validation status of the manifest
// governing the current directory. It never returns an error: prompt
// rendering must stay quiet when anything is off.
func ManifestStatus(st *state.State) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil
	}

	path, err := manifest.Find(cwd)
	if err != nil {
		return "", nil
	}

	key, err := pathutil.NormalizeForLookup(path)
	if err != nil {
		return "", nil
	}

	result, ok := st.Results[key]
	if !ok {
		// Manifest present but never validated.
		return theme.IconHook, nil
	}

	data, err := os.ReadFile(path)
	if err != nil || state.Digest(data) != result.Digest {
		// Manifest changed since the last validation.
		return theme.IconHook, nil
	}

	if result.Valid {
		return theme.IconSuccess, nil
	}
	if n := len(result.Problems); n > 0 {
		return fmt.Sprintf("%s %d", theme.IconError, n), nil
	}
	return theme.IconError, nil
}
