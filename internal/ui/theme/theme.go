package theme

import (
	"github.com/charmbracelet/lipgloss"

	themesvc "github.com/rebeliceyang/lazyjson/internal/theme"
)

// Theme defines the color scheme and styling
type Theme struct {
	Name string
	Dark bool

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// JSON colors
	JSONKey     lipgloss.Color
	JSONString  lipgloss.Color
	JSONNumber  lipgloss.Color
	JSONBoolean lipgloss.Color
	JSONNull    lipgloss.Color
	JSONBracket lipgloss.Color
	JSONLink    lipgloss.Color

	// Breadcrumb colors
	CrumbKey    lipgloss.Color
	CrumbIndex  lipgloss.Color
	CrumbActive lipgloss.Color

	// ChromaStyle names the chroma style for the raw view
	ChromaStyle string
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMochaTheme()
	case "catppuccin-latte", "light":
		return CatppuccinLatteTheme()
	default:
		return DefaultTheme()
	}
}

// Resolve picks the palette for a theme setting. System follows the
// terminal background.
func Resolve(setting themesvc.Setting, darkBackground bool) Theme {
	switch setting {
	case themesvc.ForceLight:
		return CatppuccinLatteTheme()
	case themesvc.ForceDark:
		return DefaultTheme()
	default:
		if darkBackground {
			return DefaultTheme()
		}
		return CatppuccinLatteTheme()
	}
}
