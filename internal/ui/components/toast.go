package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/interaction"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// NoticeExpiredMsg is sent when a notice may have timed out
type NoticeExpiredMsg struct{}

// Toast renders the current transient notice
type Toast struct {
	Notices *interaction.Notices
	Theme   theme.Theme
}

// NewToast creates a toast over notices
func NewToast(n *interaction.Notices, th theme.Theme) *Toast {
	return &Toast{Notices: n, Theme: th}
}

// View renders the notice, or "" when none is live
func (t *Toast) View() string {
	if t.Notices == nil {
		return ""
	}
	n, ok := t.Notices.Current()
	if !ok {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(t.Theme.Background).
		Background(t.Theme.Success).
		Bold(true).
		Padding(0, 1).
		Render(n.Text)
}

// ExpireCmd schedules a redraw once the notice lifetime has passed
func (t *Toast) ExpireCmd() tea.Cmd {
	ttl := interaction.NoticeTTL
	if t.Notices != nil {
		ttl = t.Notices.TTL()
	}
	return tea.Tick(ttl+10*time.Millisecond, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{}
	})
}
