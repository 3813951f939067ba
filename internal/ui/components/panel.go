package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel represents a bordered UI panel
type Panel struct {
	Title   string
	Status  string // right-hand note on the title line
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	style := p.Style.
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder())

	content := p.Content
	if p.Title != "" || p.Status != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		title := titleStyle.Render(p.Title)
		if p.Status != "" {
			status := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(p.Status)
			gap := max(p.Width-lipgloss.Width(title)-lipgloss.Width(status), 1)
			title = lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), status)
		}
		content = title + "\n" + content
	}

	return style.Render(content)
}

// InnerHeight is the number of content rows below the title line
func (p *Panel) InnerHeight() int {
	h := p.Height
	if p.Title != "" || p.Status != "" {
		h--
	}
	return max(h, 1)
}
