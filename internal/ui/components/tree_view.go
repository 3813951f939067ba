package components

// JSONTree renders a built document as an indented, collapsible tree
// with keyboard and mouse navigation and viewport scrolling.
//
// Features:
//   - One row per visible entry, plus a closing-bracket row after every
//     expanded collection
//   - Unicode expander glyphs (▾ expanded, ▸ collapsed)
//   - Keyboard navigation (↑↓/jk, →←/hl, g/G, pgup/pgdown, space, enter)
//   - Typed hit segments on every row for mouse dispatch
//   - Visibility reporting to the breadcrumb observer on scroll
//
// Usage:
//
//	tv := components.NewJSONTree(page.Doc, page.Handler, page.Observer, th)
//	tv.Width = 80
//	tv.Height = 20
//
//	// In your Update method:
//	tv, cmd := tv.Update(msg)
//
//	// In your View method:
//	content := tv.View()

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/render"
	"github.com/rebeliceyang/lazyjson/internal/tree"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

const (
	glyphExpanded  = "▾ "
	glyphCollapsed = "▸ "
	glyphNone      = "  "
	indentUnit     = "  "
)

// Segment is a clickable region of a row, in terminal columns
type Segment struct {
	Start int // first column
	End   int // column after the last one
	Kind  models.TargetKind
}

// Row is one rendered line of the tree
type Row struct {
	Node     *models.TreeNode
	Closing  bool // closing bracket of an expanded collection
	Text     string
	Segments []Segment
	parts    []rowPart
}

type rowPart struct {
	text  string
	kind  models.TargetKind
	style lipgloss.Style
}

// line is a row slot before styling. end is one past the last line of the
// entry's span.
type line struct {
	node    *models.TreeNode
	closing bool
	end     int
}

// JSONTree represents the tree component for one document
type JSONTree struct {
	Doc          *tree.Document
	Handler      *interaction.Handler
	Observer     *breadcrumb.Observer
	Width        int         // Display width
	Height       int         // Rows available for entries
	Theme        theme.Theme // Color theme
	ScrollOffset int         // Vertical scroll offset for viewport

	lastFocus *models.TreeNode
	observed  map[*models.TreeNode]bool
}

// NewJSONTree creates a new tree component
func NewJSONTree(doc *tree.Document, h *interaction.Handler, o *breadcrumb.Observer, th theme.Theme) *JSONTree {
	return &JSONTree{
		Doc:      doc,
		Handler:  h,
		Observer: o,
		Width:    80,
		Height:   20,
		Theme:    th,
		observed: make(map[*models.TreeNode]bool),
	}
}

// Reset forgets scroll-derived state after the document was rebuilt
func (tv *JSONTree) Reset() {
	tv.lastFocus = nil
	tv.observed = make(map[*models.TreeNode]bool)
}

// View renders the visible part of the tree
func (tv *JSONTree) View() string {
	if tv.Doc == nil || tv.Doc.Root == nil {
		return tv.emptyState()
	}

	lines := tv.layout()
	cursor := tv.sync(lines)
	viewHeight := tv.viewHeight()

	startIdx := tv.ScrollOffset
	endIdx := min(tv.ScrollOffset+viewHeight, len(lines))

	rows := make([]string, 0, viewHeight)
	for i := startIdx; i < endIdx; i++ {
		rows = append(rows, tv.renderRow(tv.row(lines[i]), i == cursor))
	}
	for len(rows) < viewHeight {
		rows = append(rows, "")
	}

	content := strings.Join(rows, "\n")
	if startIdx > 0 || endIdx < len(lines) {
		content = tv.addScrollIndicators(content, startIdx, endIdx, len(lines))
	}
	return content
}

// Update handles keyboard input for tree navigation
func (tv *JSONTree) Update(msg tea.KeyMsg) (*JSONTree, tea.Cmd) {
	if tv.Doc == nil || tv.Handler == nil {
		return tv, nil
	}

	lines := tv.layout()
	cursor := tv.sync(lines)

	switch msg.String() {
	case "up", "k":
		tv.focusEntry(lines, cursor, -1)
	case "down", "j":
		tv.focusEntry(lines, cursor, 1)
	case "pgup":
		tv.focusEntry(lines, cursor, -tv.viewHeight())
	case "pgdown":
		tv.focusEntry(lines, cursor, tv.viewHeight())
	case "g", "home":
		tv.Handler.SetFocus(tv.Doc.Root)
		tv.ScrollOffset = 0
	case "G", "end":
		tv.focusEntry(lines, len(lines)-1, 0)
	case "right", "l":
		tv.Handler.HandleKey(interaction.KeyRight, interaction.Modifiers{})
	case "left", "h":
		tv.Handler.HandleKey(interaction.KeyLeft, interaction.Modifiers{})
	case "enter":
		tv.Handler.HandleKey(interaction.KeyEnter, interaction.Modifiers{})
	case " ":
		tv.Handler.HandleKey(interaction.KeySpace, interaction.Modifiers{})
	case "alt+enter":
		tv.Handler.HandleKey(interaction.KeyEnter, interaction.Modifiers{Meta: true})
	}

	return tv, nil
}

// focusEntry moves focus by delta lines from index from, skipping closing
// rows in the direction of travel
func (tv *JSONTree) focusEntry(lines []line, from, delta int) {
	if len(lines) == 0 {
		return
	}
	i := max(0, min(from+delta, len(lines)-1))
	step := 1
	if delta < 0 {
		step = -1
	}
	j := i
	for j >= 0 && j < len(lines) && lines[j].closing {
		j += step
	}
	if j < 0 || j >= len(lines) {
		// Only closing rows lie ahead; settle on the last entry before them.
		for j = i; j > 0 && lines[j].closing; j-- {
		}
	}
	tv.Handler.SetFocus(lines[j].node)
}

// Scroll moves the viewport by delta rows without moving focus and reports
// the resulting visibility changes to the observer
func (tv *JSONTree) Scroll(delta int) {
	if tv.Doc == nil {
		return
	}
	lines := tv.layout()
	tv.sync(lines)
	tv.ScrollOffset += delta
	tv.clampScroll(len(lines), tv.viewHeight())
	tv.observe(lines, true)
}

// Resize sets the component size and re-reports visibility
func (tv *JSONTree) Resize(width, height int) {
	tv.Width = width
	tv.Height = height
	if tv.Doc == nil {
		return
	}
	lines := tv.layout()
	tv.sync(lines)
	tv.observe(lines, true)
}

// HitTest resolves a click at column x of visible row y to a target
func (tv *JSONTree) HitTest(x, y int) (interaction.Target, bool) {
	if tv.Doc == nil || y < 0 || y >= tv.viewHeight() {
		return interaction.Target{}, false
	}
	lines := tv.layout()
	i := tv.ScrollOffset + y
	if i < 0 || i >= len(lines) {
		return interaction.Target{}, false
	}
	row := tv.row(lines[i])
	target := interaction.Target{Kind: models.TargetEntry, NodeID: row.Node.ID}
	if row.Closing {
		return target, true
	}
	for _, seg := range row.Segments {
		if x >= seg.Start && x < seg.End {
			target.Kind = seg.Kind
			break
		}
	}
	return target, true
}

// Rows returns every row of the tree in display order
func (tv *JSONTree) Rows() []Row {
	if tv.Doc == nil {
		return nil
	}
	lines := tv.layout()
	rows := make([]Row, len(lines))
	for i, l := range lines {
		rows[i] = tv.row(l)
	}
	return rows
}

// CursorIndex returns the row index of the focused entry
func (tv *JSONTree) CursorIndex() int {
	if tv.Doc == nil {
		return 0
	}
	return tv.sync(tv.layout())
}

// layout lists the row slots of every visible entry
func (tv *JSONTree) layout() []line {
	var lines []line
	var walk func(n *models.TreeNode)
	walk = func(n *models.TreeNode) {
		i := len(lines)
		lines = append(lines, line{node: n})
		if n.Expandable() && !tv.Doc.Collapsed(n) {
			for _, child := range n.Children {
				walk(child)
			}
			lines = append(lines, line{node: n, closing: true, end: len(lines) + 1})
		}
		lines[i].end = len(lines)
	}
	walk(tv.Doc.Root)
	return lines
}

// sync locates the focused row, re-homing focus to the nearest visible
// ancestor when a collapse hid it, and scrolls it into view when focus
// moved since the last call
func (tv *JSONTree) sync(lines []line) int {
	cursor := -1
	focus := tv.focus()
	for focus != nil && cursor < 0 {
		cursor = findLine(lines, focus)
		if cursor < 0 {
			focus = focus.Parent
		}
	}
	if cursor < 0 {
		cursor = 0
		focus = lines[0].node
	}
	if tv.Handler != nil && focus != tv.Handler.Focus() {
		tv.Handler.SetFocus(focus)
	}

	viewHeight := tv.viewHeight()
	if focus != tv.lastFocus {
		tv.lastFocus = focus
		tv.adjustScrollOffset(cursor, len(lines), viewHeight)
		tv.observe(lines, false)
	} else {
		tv.clampScroll(len(lines), viewHeight)
	}
	return cursor
}

func (tv *JSONTree) focus() *models.TreeNode {
	if tv.Handler == nil {
		return tv.Doc.Root
	}
	return tv.Handler.Focus()
}

func findLine(lines []line, node *models.TreeNode) int {
	for i, l := range lines {
		if l.node == node && !l.closing {
			return i
		}
	}
	return -1
}

// observe computes the visibility of every entry against the observed band
// and, when notify is set, hands the entries whose intersecting state
// changed to the observer
func (tv *JSONTree) observe(lines []line, notify bool) {
	viewHeight := tv.viewHeight()
	bandStart, bandEnd := breadcrumb.Band(viewHeight)
	bandStart += tv.ScrollOffset
	bandEnd += tv.ScrollOffset

	current := make(map[*models.TreeNode]bool)
	var batch []breadcrumb.Visibility
	for i, l := range lines {
		if l.closing {
			continue
		}
		ratio := breadcrumb.Ratio(i, l.end, bandStart, bandEnd)
		intersecting := ratio >= breadcrumb.Threshold
		if intersecting {
			current[l.node] = true
		}
		if intersecting != tv.observed[l.node] {
			batch = append(batch, breadcrumb.Visibility{Node: l.node, Ratio: ratio, Intersecting: intersecting})
		}
	}
	tv.observed = current

	if notify && tv.Observer != nil && len(batch) > 0 {
		tv.Observer.Notify(batch)
	}
}

// row builds the styled parts and hit segments of one row slot
func (tv *JSONTree) row(l line) Row {
	node := l.node
	r := Row{Node: node, Closing: l.closing}
	indent := strings.Repeat(indentUnit, node.Depth)
	bracket := lipgloss.NewStyle().Foreground(tv.Theme.JSONBracket)
	muted := lipgloss.NewStyle().Foreground(tv.Theme.Muted)
	plain := lipgloss.NewStyle().Foreground(tv.Theme.Foreground)

	add := func(text string, kind models.TargetKind, style lipgloss.Style) {
		r.parts = append(r.parts, rowPart{text: text, kind: kind, style: style})
	}

	if l.closing {
		add(indent+glyphNone, models.TargetEntry, plain)
		add(closeBracket(node), models.TargetEntry, bracket)
		return r.finish()
	}

	switch {
	case node.Expandable():
		glyph := glyphExpanded
		if tv.Doc.Collapsed(node) {
			glyph = glyphCollapsed
		}
		add(indent, models.TargetEntry, plain)
		add(glyph, models.TargetExpander, lipgloss.NewStyle().Foreground(tv.Theme.Info))
	default:
		add(indent+glyphNone, models.TargetEntry, plain)
	}

	switch {
	case node.HasKey:
		add(jsonv.Quote(node.Key), models.TargetKey, lipgloss.NewStyle().Foreground(tv.Theme.JSONKey))
		add(": ", models.TargetEntry, plain)
	case node.ArrayItem:
		add(strconv.Itoa(node.Index)+": ", models.TargetEntry, muted)
	}

	switch {
	case node.Placeholder:
		add(openBracket(node)+"…"+closeBracket(node), models.TargetEntry, bracket)
		add(" ", models.TargetEntry, plain)
		add(render.LoadMoreLabel, models.TargetLoadMore, lipgloss.NewStyle().Foreground(tv.Theme.Info).Underline(true))
		add(" "+itemCount(node.Size), models.TargetEntry, muted)
	case node.IsCollection() && node.Size == 0:
		add(openBracket(node)+closeBracket(node), models.TargetEntry, bracket)
	case node.IsCollection() && tv.Doc.Collapsed(node):
		add(openBracket(node)+"…"+closeBracket(node), models.TargetEntry, bracket)
		add(" "+itemCount(node.Size), models.TargetEntry, muted)
	case node.IsCollection():
		add(openBracket(node), models.TargetEntry, bracket)
	default:
		text, style := tv.primitive(node)
		add(text, models.TargetValue, style)
	}
	return r.finish()
}

// finish joins the parts and records their column ranges
func (r Row) finish() Row {
	var b strings.Builder
	col := 0
	for _, p := range r.parts {
		w := runewidth.StringWidth(p.text)
		if p.kind != models.TargetEntry && w > 0 {
			r.Segments = append(r.Segments, Segment{Start: col, End: col + w, Kind: p.kind})
		}
		b.WriteString(p.text)
		col += w
	}
	r.Text = b.String()
	return r
}

// primitive returns the display text and style of a primitive entry
func (tv *JSONTree) primitive(node *models.TreeNode) (string, lipgloss.Style) {
	v := node.Value
	switch node.ValueKind {
	case jsonv.KindString:
		style := lipgloss.NewStyle().Foreground(tv.Theme.JSONString)
		if render.IsURL(v.Str()) {
			style = lipgloss.NewStyle().Foreground(tv.Theme.JSONLink).Underline(true)
		}
		return `"` + jsonv.Escape(v.Str()) + `"`, style
	case jsonv.KindNumber:
		return v.Literal(), lipgloss.NewStyle().Foreground(tv.Theme.JSONNumber)
	case jsonv.KindBool:
		return v.Literal(), lipgloss.NewStyle().Foreground(tv.Theme.JSONBoolean)
	default:
		return v.Literal(), lipgloss.NewStyle().Foreground(tv.Theme.JSONNull)
	}
}

// renderRow renders a single row with appropriate styling
func (tv *JSONTree) renderRow(r Row, selected bool) string {
	maxWidth := max(tv.Width-2, 1) // Account for padding

	if selected {
		content := runewidth.Truncate(r.Text, maxWidth, "…")
		return lipgloss.NewStyle().
			Background(tv.Theme.Selection).
			Foreground(tv.Theme.Foreground).
			Bold(true).
			Width(maxWidth).
			Render(content)
	}

	var b strings.Builder
	remaining := maxWidth
	for _, p := range r.parts {
		if remaining <= 0 {
			break
		}
		text := p.text
		if w := runewidth.StringWidth(text); w > remaining {
			text = runewidth.Truncate(text, remaining, "…")
		}
		remaining -= runewidth.StringWidth(text)
		b.WriteString(p.style.Render(text))
	}
	return b.String()
}

// adjustScrollOffset adjusts the scroll offset to keep the cursor visible
func (tv *JSONTree) adjustScrollOffset(cursor, totalRows, viewHeight int) {
	if cursor < tv.ScrollOffset {
		tv.ScrollOffset = cursor
	}
	if cursor >= tv.ScrollOffset+viewHeight {
		tv.ScrollOffset = cursor - viewHeight + 1
	}
	tv.clampScroll(totalRows, viewHeight)
}

// clampScroll keeps the scroll offset within bounds
func (tv *JSONTree) clampScroll(totalRows, viewHeight int) {
	maxScroll := max(totalRows-viewHeight, 0)
	tv.ScrollOffset = max(0, min(tv.ScrollOffset, maxScroll))
}

// addScrollIndicators adds visual indicators for scrollable content
func (tv *JSONTree) addScrollIndicators(content string, startIdx, endIdx, total int) string {
	lines := strings.Split(content, "\n")
	indicator := lipgloss.NewStyle().Foreground(tv.Theme.Info)
	clip := lipgloss.NewStyle().MaxWidth(max(tv.Width-2, 1))

	if startIdx > 0 && len(lines) > 0 {
		lines[0] = clip.Render(indicator.Render("↑") + " " + lines[0])
	}

	if endIdx < total && len(lines) > 0 {
		lastIdx := len(lines) - 1
		lines[lastIdx] = clip.Render(indicator.Render("↓") + " " + lines[lastIdx])
	}

	return strings.Join(lines, "\n")
}

// emptyState returns the empty state view
func (tv *JSONTree) emptyState() string {
	style := lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Width(max(tv.Width-2, 1)).
		Align(lipgloss.Center)

	return style.Render("No document loaded")
}

func (tv *JSONTree) viewHeight() int {
	return max(tv.Height, 1)
}

func openBracket(n *models.TreeNode) string {
	if n.Kind == models.EntryArray {
		return "["
	}
	return "{"
}

func closeBracket(n *models.TreeNode) string {
	if n.Kind == models.EntryArray {
		return "]"
	}
	return "}"
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
