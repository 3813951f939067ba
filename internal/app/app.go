package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/export"
	"github.com/rebeliceyang/lazyjson/internal/formatter"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	"github.com/rebeliceyang/lazyjson/internal/models"
	themesvc "github.com/rebeliceyang/lazyjson/internal/theme"
	"github.com/rebeliceyang/lazyjson/internal/ui/components"
	"github.com/rebeliceyang/lazyjson/internal/ui/help"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
	"github.com/rebeliceyang/lazyjson/internal/watch"
)

// Screen rows above the tree: top bar, breadcrumb line, panel border and
// panel title
const (
	crumbRow = 1
	treeTop  = 4
	treeLeft = 1
)

// wheelStep is the number of rows one wheel notch scrolls
const wheelStep = 3

// Source identifies where the document came from
type Source struct {
	Name string // shown in the top bar
	Path string // file to re-read on change, empty for stdin
}

// Options configures a new App
type Options struct {
	Config    *config.Config
	Formatter *formatter.Formatter
	Themes    *themesvc.Service
	Page      *formatter.Page
	Source    Source
	Watcher   *watch.Watcher
	Logger    *slog.Logger

	// DarkBackground reports the terminal background for the system
	// setting. Defaults to lipgloss.HasDarkBackground.
	DarkBackground func() bool
	// ReadFile re-reads the source on change. Defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)
}

// App is the main application model
type App struct {
	state     models.AppState
	config    *config.Config
	theme     theme.Theme
	formatter *formatter.Formatter
	themes    *themesvc.Service
	page      *formatter.Page
	watcher   *watch.Watcher
	logger    *slog.Logger
	dark      func() bool
	readFile  func(string) ([]byte, error)

	panel    components.Panel
	treeView *components.JSONTree
	crumbs   *components.BreadcrumbBar
	rawView  *components.RawView
	search   *components.SearchInput
	toast    *components.Toast

	matches []*models.TreeNode
	status  string
}

// FileChangedMsg is sent when the watched source file changed on disk
type FileChangedMsg struct{}

// WatchFileCmd waits for the next change burst from w
func WatchFileCmd(w *watch.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// New creates a new App over an already formatted page
func New(opts Options) *App {
	state := models.NewAppState()
	state.SourceName = opts.Source.Name
	state.SourcePath = opts.Source.Path
	state.Formatted = true
	state.Note = formatter.NoteDone

	cfg := opts.Config
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dark := opts.DarkBackground
	if dark == nil {
		dark = lipgloss.HasDarkBackground
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	a := &App{
		state:     state,
		config:    cfg,
		formatter: opts.Formatter,
		themes:    opts.Themes,
		page:      opts.Page,
		watcher:   opts.Watcher,
		logger:    logger,
		dark:      dark,
		readFile:  readFile,
	}
	a.theme = a.resolveTheme()

	a.treeView = components.NewJSONTree(a.page.Doc, a.page.Handler, a.page.Observer, a.theme)
	a.crumbs = components.NewBreadcrumbBar(a.page.Tracker, a.theme)
	a.rawView = components.NewRawView(a.theme, 80, 20)
	a.rawView.SetValue(a.page.Doc.Value)
	a.search = components.NewSearchInput(a.theme)
	a.toast = components.NewToast(a.page.Handler.Notices(), a.theme)
	a.panel = components.Panel{Title: "Tree"}

	bus := a.page.Handler.Bus()
	bus.OnToggle(func(e interaction.NodeToggled) {
		verb := "collapsed"
		if e.Expanded {
			verb = "expanded"
		}
		a.status = verb + " " + e.Node.Label()
	})
	bus.OnPathChanged(func(e breadcrumb.PathChanged) {
		a.logger.Debug("path changed", "path", e.Text)
	})

	a.updatePanelDimensions()
	a.updatePanelStyles()
	return a
}

// Page returns the page on screen
func (a *App) Page() *formatter.Page { return a.page }

// State returns a copy of the application state
func (a *App) State() models.AppState { return a.state }

// Status returns the status line note
func (a *App) Status() string { return a.status }

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return WatchFileCmd(a.watcher)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case components.SearchInputMsg:
		a.runSearch()
		return a, nil

	case components.CloseSearchMsg:
		a.state.ViewMode = models.NormalMode
		a.updatePanelDimensions()
		return a, nil

	case components.NoticeExpiredMsg:
		return a, nil

	case FileChangedMsg:
		a.reload()
		return a, WatchFileCmd(a.watcher)

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updatePanelDimensions()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.state.ViewMode {
	case models.HelpMode:
		switch key {
		case "?", "esc", "q":
			a.state.ViewMode = models.NormalMode
		}
		return a, nil

	case models.SearchMode:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd

	case models.RawMode:
		switch key {
		case "r", "esc":
			a.state.ViewMode = models.NormalMode
			return a, nil
		case "q":
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.rawView, cmd = a.rawView.Update(msg)
		return a, cmd
	}

	h := a.page.Handler
	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.state.ViewMode = models.HelpMode
	case "r":
		a.state.ViewMode = models.RawMode
	case "/":
		a.state.ViewMode = models.SearchMode
		a.search.Reset()
		a.search.Input.Focus()
		a.updatePanelDimensions()
	case "n":
		a.nextMatch()
	case "e":
		h.ToggleAll(false)
	case "E":
		h.ToggleAll(true)
	case "y":
		return a, a.copy(breadcrumb.Compute(h.Focus()).Expression())
	case "Y":
		data, err := export.Subtree(h.Focus(), export.FormatJSON)
		if err != nil {
			a.status = fmt.Sprintf("export failed: %v", err)
			return a, nil
		}
		return a, a.copy(string(data))
	case "c":
		before, _ := h.Notices().Current()
		target := interaction.Target{Kind: models.TargetValue, NodeID: h.Focus().ID}
		if err := h.HandleClick(target, interaction.Modifiers{Ctrl: true}); err != nil {
			a.logger.Warn("copy failed", "error", err)
		}
		if after, ok := h.Notices().Current(); ok && after != before {
			return a, a.toast.ExpireCmd()
		}
		return a, nil
	case "t":
		a.cycleTheme()
	default:
		var cmd tea.Cmd
		a.treeView, cmd = a.treeView.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleMouse dispatches wheel scrolling and left clicks on the tree and the
// breadcrumb bar
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.state.ViewMode == models.RawMode {
		var cmd tea.Cmd
		a.rawView, cmd = a.rawView.Update(msg)
		return cmd
	}
	if a.state.ViewMode != models.NormalMode {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.treeView.Scroll(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		a.treeView.Scroll(wheelStep)
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	var (
		target interaction.Target
		ok     bool
	)
	switch {
	case msg.Y == crumbRow && a.config.UI.ShowBreadcrumbs:
		a.crumbs.Width = a.state.Width
		a.crumbs.View()
		target, ok = a.crumbs.HitTest(msg.X)
	case msg.Y >= treeTop:
		target, ok = a.treeView.HitTest(msg.X-treeLeft, msg.Y-treeTop)
	}
	if !ok {
		return nil
	}

	mods := interaction.Modifiers{Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift}
	if err := a.page.Handler.HandleClick(target, mods); err != nil {
		a.logger.Warn("click failed", "target", string(target.Kind), "error", err)
		a.status = err.Error()
		return nil
	}
	if target.Kind == models.TargetValue && mods.Copy() {
		return a.toast.ExpireCmd()
	}
	return nil
}

// copy writes text to the clipboard and schedules the notice to clear
func (a *App) copy(text string) tea.Cmd {
	if err := a.page.Handler.Copy(text); err != nil {
		a.status = "copy failed"
		return nil
	}
	return a.toast.ExpireCmd()
}

// runSearch collects the matches of the current query and jumps to the
// first one after focus
func (a *App) runSearch() {
	a.matches = components.FilterTree(a.page.Doc.Root, a.search.Query())
	if len(a.matches) == 0 {
		a.search.Status = "no matches"
		a.status = "no matches"
		return
	}
	a.nextMatch()
}

// nextMatch focuses the next match, expanding its collapsed ancestors
func (a *App) nextMatch() {
	h := a.page.Handler
	next := components.NextMatch(a.matches, h.Focus())
	if next == nil {
		return
	}
	h.Expand(next)
	h.SetFocus(next)

	pos := 0
	for i, m := range a.matches {
		if m == next {
			pos = i + 1
		}
	}
	a.status = fmt.Sprintf("match %d/%d", pos, len(a.matches))
	a.search.Status = a.status
}

// cycleTheme persists the next theme setting and re-resolves the palette
func (a *App) cycleTheme() {
	next := themesvc.System
	for i, s := range themesvc.Settings {
		if s == a.page.Setting {
			next = themesvc.Settings[(i+1)%len(themesvc.Settings)]
		}
	}

	ctx := context.Background()
	if a.themes != nil {
		if err := a.themes.SetSetting(ctx, next); err != nil {
			a.logger.Warn("failed to store theme setting", "setting", string(next), "error", err)
		}
		a.page.CSS = a.themes.CSS(ctx, next)
	}
	a.page.Setting = next
	a.config.UI.Theme = ""
	a.theme = a.resolveTheme()
	a.applyTheme()
	a.status = "theme: " + string(next)
}

func (a *App) resolveTheme() theme.Theme {
	if a.config.UI.Theme != "" {
		return theme.GetTheme(a.config.UI.Theme)
	}
	return theme.Resolve(a.page.Setting, a.dark())
}

func (a *App) applyTheme() {
	a.treeView.Theme = a.theme
	a.crumbs.Theme = a.theme
	a.search.Theme = a.theme
	a.toast.Theme = a.theme
	a.rawView.Theme = a.theme
	a.rawView.SetValue(a.page.Doc.Value)
	a.updatePanelStyles()
}

// reload re-reads the source file and rebuilds the tree, keeping view
// state. A rejected file leaves the current tree on screen.
func (a *App) reload() {
	if a.state.SourcePath == "" || a.formatter == nil {
		return
	}
	data, err := a.readFile(a.state.SourcePath)
	if err != nil {
		a.logger.Warn("failed to re-read source", "path", a.state.SourcePath, "error", err)
		a.status = "reload failed"
		return
	}

	res := a.formatter.Reformat(a.page, string(data))
	a.state.Formatted = res.Formatted
	a.state.Note = res.Note
	if !res.Formatted {
		a.logger.Warn("reloaded source rejected", "path", a.state.SourcePath, "note", res.Note)
		a.status = "reload: " + res.Note
		return
	}

	a.treeView.Reset()
	a.rawView.SetValue(a.page.Doc.Value)
	a.matches = nil
	a.status = "reloaded"
}

// View implements tea.Model
func (a *App) View() string {
	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, a.theme)
	}
	return a.renderNormalView()
}

// renderNormalView renders the normal application view
func (a *App) renderNormalView() string {
	topBarRight := string(a.page.Setting)
	if a.state.ViewMode == models.RawMode {
		topBarRight = "raw · " + topBarRight
	}
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(a.formatStatusBar("lazyjson  "+a.state.SourceName, topBarRight))

	crumbLine := ""
	if a.config.UI.ShowBreadcrumbs {
		a.crumbs.Width = a.state.Width
		crumbLine = a.crumbs.View()
	}
	crumbLine = lipgloss.NewStyle().Width(a.state.Width).MaxWidth(a.state.Width).Render(crumbLine)

	if a.state.ViewMode == models.RawMode {
		a.panel.Title = "Raw"
		a.rawView.SetSize(a.panel.Width, a.panel.InnerHeight())
		a.panel.Content = a.rawView.View()
	} else {
		a.panel.Title = "Tree"
		a.treeView.Width = a.panel.Width
		a.treeView.Height = a.panel.InnerHeight()
		a.panel.Content = a.treeView.View()
	}
	a.panel.Status = a.status

	bottomBarLeft := "[?] Help | [/] Search | [y] Copy path | [r] Raw | [q] Quit"
	bottomBarRight := fmt.Sprintf("%d entries", len(a.page.Doc.Entries()))
	bottomBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomBarLeft, bottomBarRight))
	if notice := a.toast.View(); notice != "" {
		bottomBar = lipgloss.PlaceHorizontal(a.state.Width, lipgloss.Right, notice)
	}

	parts := []string{topBar, crumbLine, a.panel.View()}
	if a.state.ViewMode == models.SearchMode {
		a.search.Width = a.state.Width
		parts = append(parts, a.search.View())
	}
	parts = append(parts, bottomBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// updatePanelDimensions calculates panel sizes based on window size
func (a *App) updatePanelDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}

	// Top bar, breadcrumb line and bottom bar take one line each
	contentHeight := a.state.Height - 3
	if a.state.ViewMode == models.SearchMode {
		contentHeight -= 4
	}
	contentHeight = max(contentHeight, 5)

	// The border adds two columns and two rows
	a.panel.Width = max(a.state.Width-2, 10)
	a.panel.Height = contentHeight - 2

	a.treeView.Resize(a.panel.Width, a.panel.InnerHeight())
	a.rawView.SetSize(a.panel.Width, a.panel.InnerHeight())
}

// updatePanelStyles sets the panel border from the theme
func (a *App) updatePanelStyles() {
	a.panel.Style = lipgloss.NewStyle().BorderForeground(a.theme.BorderFocused)
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := max(a.state.Width-4, 0)

	leftLen := runewidth.StringWidth(left)
	rightLen := runewidth.StringWidth(right)

	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return runewidth.Truncate(left, availableWidth-rightLen, "") + right
		}
		return runewidth.Truncate(left, availableWidth, "")
	}

	spacing := availableWidth - leftLen - rightLen
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}
