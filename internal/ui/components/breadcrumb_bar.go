package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// BreadcrumbBar shows the tracked path as a single clickable line
type BreadcrumbBar struct {
	Tracker *breadcrumb.Tracker
	Theme   theme.Theme
	Width   int

	segments []crumbSegment
}

type crumbSegment struct {
	start, end int
	target     interaction.Target
}

// NewBreadcrumbBar creates a bar over tracker
func NewBreadcrumbBar(tracker *breadcrumb.Tracker, th theme.Theme) *BreadcrumbBar {
	return &BreadcrumbBar{Tracker: tracker, Theme: th, Width: 80}
}

// Visible reports whether the bar takes up a line
func (b *BreadcrumbBar) Visible() bool {
	return b.Tracker != nil && b.Tracker.State() == breadcrumb.Shown
}

// View renders the bar, or "" while the tracker is hidden
func (b *BreadcrumbBar) View() string {
	b.segments = b.segments[:0]
	if !b.Visible() {
		return ""
	}

	rootStyle := lipgloss.NewStyle().Foreground(b.Theme.Muted).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(b.Theme.Border)
	keyStyle := lipgloss.NewStyle().Foreground(b.Theme.CrumbKey)
	indexStyle := lipgloss.NewStyle().Foreground(b.Theme.CrumbIndex)
	activeStyle := lipgloss.NewStyle().Foreground(b.Theme.CrumbActive).Bold(true)

	maxWidth := max(b.Width, 1)
	var out strings.Builder
	col := 0
	write := func(text string, style lipgloss.Style, target *interaction.Target) bool {
		w := runewidth.StringWidth(text)
		if col+w > maxWidth {
			out.WriteString(style.Render(runewidth.Truncate(text, maxWidth-col, "…")))
			return false
		}
		if target != nil {
			b.segments = append(b.segments, crumbSegment{start: col, end: col + w, target: *target})
		}
		out.WriteString(style.Render(text))
		col += w
		return true
	}

	if !write("root", rootStyle, &interaction.Target{Kind: models.TargetRootCrumb}) {
		return out.String()
	}
	for _, c := range b.Tracker.Crumbs() {
		if !write(breadcrumb.Separator, sepStyle, nil) {
			break
		}
		style := keyStyle
		if c.Step.Kind == breadcrumb.ArrayItem {
			style = indexStyle
		}
		if c.Active {
			style = activeStyle
		}
		if !write(c.Step.Label(), style, &interaction.Target{Kind: models.TargetCrumb, Crumb: c.Position}) {
			break
		}
	}
	return out.String()
}

// HitTest resolves a click at column x of the last rendered bar
func (b *BreadcrumbBar) HitTest(x int) (interaction.Target, bool) {
	for _, s := range b.segments {
		if x >= s.start && x < s.end {
			return s.target, true
		}
	}
	return interaction.Target{}, false
}
