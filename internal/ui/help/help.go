package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section is a titled group of key bindings
type Section struct {
	Title string
	Keys  []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"r", "Toggle raw JSON view"},
		{"/", "Search keys and values"},
		{"n", "Next search match"},
		{"t", "Cycle theme (system, light, dark)"},
	}
}

// GetNavigationKeys returns navigation key bindings
func GetNavigationKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"←/h", "Collapse or move to parent"},
		{"→/l", "Expand, load more or move down"},
		{"Enter/Space", "Toggle entry or load more"},
		{"Alt+Enter", "Toggle entry and all its siblings"},
		{"g/G", "Jump to top/bottom"},
		{"PgUp/PgDn", "Page up/down"},
	}
}

// GetTreeKeys returns tree action key bindings
func GetTreeKeys() []KeyBinding {
	return []KeyBinding{
		{"e", "Expand all"},
		{"E", "Collapse all"},
		{"y", "Copy path expression"},
		{"Y", "Copy entry as JSON"},
		{"c", "Copy string value"},
	}
}

// GetMouseKeys returns mouse bindings
func GetMouseKeys() []KeyBinding {
	return []KeyBinding{
		{"Click ▾/▸", "Toggle entry"},
		{"Ctrl+Click ▾/▸", "Toggle entry and all its siblings"},
		{"Ctrl+Click value", "Copy string value"},
		{"Click crumb", "Jump to path"},
		{"Wheel", "Scroll"},
	}
}

// Sections returns every help section in display order
func Sections() []Section {
	return []Section{
		{"Global", GetGlobalKeys()},
		{"Navigation", GetNavigationKeys()},
		{"Tree", GetTreeKeys()},
		{"Mouse", GetMouseKeys()},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazyjson - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, section := range Sections() {
		b.WriteString(sectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, kb := range section.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 1)).
		Height(max(height-4, 1))

	return boxStyle.Render(b.String())
}
