package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// Search scopes
const (
	SearchAll  = "all"
	SearchKeys = "keys"
)

// SearchInputMsg is sent when search should be executed
type SearchInputMsg struct {
	Query string
	Mode  string // SearchAll or SearchKeys
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchInput provides a search input box
type SearchInput struct {
	Input   textinput.Model
	Mode    string // SearchAll or SearchKeys
	Theme   theme.Theme
	Width   int
	Visible bool
	Status  string // match counter shown next to the input
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search keys and values..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchInput{
		Input: ti,
		Mode:  SearchAll,
		Theme: th,
	}
}

// ToggleMode switches between searching everything and keys only
func (s *SearchInput) ToggleMode() {
	if s.Mode == SearchAll {
		s.Mode = SearchKeys
	} else {
		s.Mode = SearchAll
	}
}

// Reset clears the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
	s.Mode = SearchAll
	s.Status = ""
}

// Query returns the parsed query, applying the key-only scope when no
// explicit filter prefix was typed
func (s *SearchInput) Query() SearchQuery {
	q := ParseSearchQuery(s.Input.Value())
	if s.Mode == SearchKeys && q.TypeFilter == "" {
		q.TypeFilter = "key"
	}
	return q
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.ToggleMode()
			return s, nil
		case "enter":
			query := s.Input.Value()
			if query != "" {
				mode := s.Mode
				return s, func() tea.Msg {
					return SearchInputMsg{Query: query, Mode: mode}
				}
			}
			return s, nil
		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	modeIndicator := "[All]"
	modeColor := s.Theme.Success
	if s.Mode == SearchKeys {
		modeIndicator = "[Keys]"
		modeColor = s.Theme.Info
	}

	modeStyle := lipgloss.NewStyle().
		Foreground(modeColor).
		Bold(true)

	inputWidth := max(s.Width-24, 20) // Reserve space for mode indicator and status
	s.Input.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(max(s.Width-2, 1))

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true)

	content := modeStyle.Render(modeIndicator) + " / " + s.Input.View()
	if s.Status != "" {
		content += " " + helpStyle.Render(s.Status)
	}
	helpText := helpStyle.Render("Tab: toggle scope │ Enter: next match │ Esc: close │ k: v: s: n: b: null: o: a:")

	return boxStyle.Render(content + "\n" + helpText)
}
