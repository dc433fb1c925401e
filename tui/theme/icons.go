package theme

import (
	"os"

	"github.com/hooktools/hookman/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconHook    = "󰛢" // md-hook (U+F06E2)
	nerdIconSuccess = "󰄬" // md-check (U+F012C)
	nerdIconError   = "" // cod-error (U+EA87)
	nerdIconWarning = "" // fa-warning (U+F071)
	nerdIconInfo    = "󰋼" // md-information (U+F02FC)
	nerdIconRunning = "" // fa-refresh (U+F021)
	nerdIconBullet  = "" // oct-dot_fill (U+F444)
	nerdIconFilter  = "󱣬" // md-filter_check (U+F18EC)
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconHook    = "§"
	asciiIconSuccess = "✓"
	asciiIconError   = "✗"
	asciiIconWarning = "⚠"
	asciiIconInfo    = "ℹ"
	asciiIconRunning = "◐"
	asciiIconBullet  = "•"
	asciiIconFilter  = "/"
)

// Exported icons, populated at startup from the active icon set.
var (
	IconHook    string
	IconSuccess string
	IconError   string
	IconWarning string
	IconInfo    string
	IconRunning string
	IconBullet  string
	IconFilter  string
)

// init function determines which icon set to use
func init() {
	useASCII := false

	// 1. Check environment variable first
	if os.Getenv("HOOKMAN_ICONS") == "ascii" {
		useASCII = true
	} else {
		// 2. Check settings file
		settings, err := config.Load()
		if err == nil && settings != nil {
			var tuiCfg struct {
				Icons string `yaml:"icons"`
			}
			if err := settings.UnmarshalExtension("tui", &tuiCfg); err == nil && tuiCfg.Icons == "ascii" {
				useASCII = true
			}
		}
	}

	if useASCII {
		IconHook = asciiIconHook
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconRunning = asciiIconRunning
		IconBullet = asciiIconBullet
		IconFilter = asciiIconFilter
	} else {
		IconHook = nerdIconHook
		IconSuccess = nerdIconSuccess
		IconError = nerdIconError
		IconWarning = nerdIconWarning
		IconInfo = nerdIconInfo
		IconRunning = nerdIconRunning
		IconBullet = nerdIconBullet
		IconFilter = nerdIconFilter
	}
}
