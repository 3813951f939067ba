package formatter

import (
	"io"
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	"github.com/rebeliceyang/lazyjson/internal/render"
	"github.com/rebeliceyang/lazyjson/internal/theme"
	"github.com/rebeliceyang/lazyjson/internal/tree"
)

// Element IDs on the written page
const (
	StyleID  = "jfStyleEl"
	MainID   = "jsonFormatterMain"
	ParsedID = "jsonFormatterParsed"
	RawID    = "jsonFormatterRaw"
)

// Page is a formatted document with its navigation state
type Page struct {
	Raw      string
	Doc      *tree.Document
	Tracker  *breadcrumb.Tracker
	Observer *breadcrumb.Observer
	Handler  *interaction.Handler
	Setting  theme.Setting
	CSS      string

	logger *slog.Logger
}

func el(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func txt(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Node builds the full page markup
func (p *Page) Node() *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := el(atom.Html, html.Attribute{Key: "data-theme", Val: p.Setting.Attr()})
	doc.AppendChild(root)

	head := el(atom.Head)
	meta := el(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"})
	head.AppendChild(meta)
	if p.CSS != "" {
		style := el(atom.Style, html.Attribute{Key: "id", Val: StyleID})
		style.AppendChild(txt(p.CSS))
		head.AppendChild(style)
	}
	root.AppendChild(head)

	body := el(atom.Body)
	container := el(atom.Div, html.Attribute{Key: "id", Val: MainID})
	container.AppendChild(render.Breadcrumb(p.Tracker.State(), p.Tracker.Crumbs()))

	parsed := el(atom.Div, html.Attribute{Key: "id", Val: ParsedID})
	parsed.AppendChild(render.New(p.Doc.Collapsed, p.logger).Entry(p.Doc.Root))
	container.AppendChild(parsed)
	body.AppendChild(container)

	raw := el(atom.Div,
		html.Attribute{Key: "id", Val: RawID},
		html.Attribute{Key: "class", Val: "hidden"},
		html.Attribute{Key: "hidden"},
	)
	pre := el(atom.Pre)
	pre.AppendChild(txt(p.Raw))
	raw.AppendChild(pre)
	body.AppendChild(raw)

	root.AppendChild(body)
	return doc
}

// WriteHTML writes the page as a standalone HTML document
func (p *Page) WriteHTML(w io.Writer) error {
	return render.Write(w, p.Node())
}
