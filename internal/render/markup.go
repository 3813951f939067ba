// Package render projects the entry tree and its view state into HTML
// markup.
package render

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rebeliceyang/lazyjson/internal/models"
)

// Attribute names shared with the interaction layer
const (
	AttrRole       = "data-role"
	AttrID         = "data-id"
	AttrKind       = "data-kind"
	AttrDepth      = "data-depth"
	AttrSize       = "data-size"
	AttrIndex      = "data-index"
	AttrArrayIndex = "data-array-index"
	AttrType       = "data-type"
	AttrCrumb      = "data-crumb"
)

func element(a atom.Atom, class string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	n.Attr = append(n.Attr, attrs...)
	return n
}

func span(class string, attrs ...html.Attribute) *html.Node {
	return element(atom.Span, class, attrs...)
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func role(kind models.TargetKind) html.Attribute {
	return attr(AttrRole, string(kind))
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// Attr returns the value of key on n
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr replaces or appends key on n
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, attr(key, val))
}

// HasClass reports whether n carries class c
func HasClass(n *html.Node, c string) bool {
	classes, _ := Attr(n, "class")
	for _, field := range strings.Fields(classes) {
		if field == c {
			return true
		}
	}
	return false
}

// Role returns the typed interaction target of n
func Role(n *html.Node) models.TargetKind {
	v, _ := Attr(n, AttrRole)
	return models.ParseTargetKind(v)
}

// Find returns the first element in n's subtree, n included, matching fn
func Find(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && fn(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, fn); found != nil {
			return found
		}
	}
	return nil
}

// FindByID returns the element for the entry with the given ID
func FindByID(n *html.Node, id string) *html.Node {
	return Find(n, func(e *html.Node) bool {
		v, ok := Attr(e, AttrID)
		return ok && v == id && Role(e) == models.TargetEntry
	})
}

// TextContent concatenates all text below n
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

// Write serialises n
func Write(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}
