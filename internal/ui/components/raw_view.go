package components

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyjson/internal/export"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/ui/theme"
)

// DefaultChromaStyle is used when the theme names no known chroma style
const DefaultChromaStyle = "monokai"

// RawView shows the pretty-printed document with syntax highlighting
type RawView struct {
	Viewport viewport.Model
	Theme    theme.Theme
	content  string
}

// NewRawView creates a raw view of the given size
func NewRawView(th theme.Theme, width, height int) *RawView {
	return &RawView{
		Viewport: viewport.New(width, height),
		Theme:    th,
	}
}

// SetValue renders value as indented JSON and highlights it
func (r *RawView) SetValue(value *jsonv.Value) {
	if value == nil {
		r.content = ""
		r.Viewport.SetContent("")
		return
	}
	formatted, err := export.MarshalJSON(value, "  ")
	if err != nil {
		formatted = []byte(value.Literal())
	}
	r.content = string(formatted)
	r.Viewport.SetContent(Highlight(r.content, r.Theme.ChromaStyle))
	r.Viewport.GotoTop()
}

// Content returns the unhighlighted text
func (r *RawView) Content() string {
	return r.content
}

// SetSize resizes the viewport
func (r *RawView) SetSize(width, height int) {
	r.Viewport.Width = width
	r.Viewport.Height = height
}

// Update forwards scrolling keys and mouse events to the viewport
func (r *RawView) Update(msg tea.Msg) (*RawView, tea.Cmd) {
	var cmd tea.Cmd
	r.Viewport, cmd = r.Viewport.Update(msg)
	return r, cmd
}

// View renders the viewport
func (r *RawView) View() string {
	return r.Viewport.View()
}

// Highlight colors JSON text for a 256-color terminal. On any failure the
// text is returned unchanged.
func Highlight(text, styleName string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return text
	}
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Get("terminal")
	}
	if formatter == nil {
		return text
	}

	style := styles.Get(styleName)
	if style == nil || style == styles.Fallback {
		style = styles.Get(DefaultChromaStyle)
	}
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return text
	}
	return buf.String()
}
