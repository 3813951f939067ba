// Package theme selects and persists the user's color scheme preference and
// produces the stylesheet for it.
package theme

import "strings"

// SettingKey is the settings store key holding the override
const SettingKey = "themeOverride"

// Setting is the user's color scheme preference
type Setting string

const (
	System     Setting = "system"
	ForceLight Setting = "force_light"
	ForceDark  Setting = "force_dark"
)

// Settings lists every valid setting
var Settings = []Setting{System, ForceLight, ForceDark}

// ParseSetting maps a stored value to a Setting. Unknown values mean System.
func ParseSetting(s string) Setting {
	switch Setting(strings.TrimSpace(strings.ToLower(s))) {
	case ForceLight:
		return ForceLight
	case ForceDark:
		return ForceDark
	default:
		return System
	}
}

// Valid reports whether s is one of the known settings
func (s Setting) Valid() bool {
	for _, known := range Settings {
		if s == known {
			return true
		}
	}
	return false
}

// Attr returns the data-theme attribute value for the page
func (s Setting) Attr() string {
	switch s {
	case ForceLight:
		return "light"
	case ForceDark:
		return "dark"
	default:
		return "system"
	}
}
