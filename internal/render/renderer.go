package render

import (
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// LoadMoreLabel is the text on a lazy placeholder's button
const LoadMoreLabel = "Load more..."

// Renderer turns entries into markup. It never mutates the tree; collapse
// state is read through the collapsed callback.
type Renderer struct {
	collapsed func(*models.TreeNode) bool
	logger    *slog.Logger
}

// New creates a renderer. A nil collapsed func renders everything expanded.
func New(collapsed func(*models.TreeNode) bool, logger *slog.Logger) *Renderer {
	if collapsed == nil {
		collapsed = func(*models.TreeNode) bool { return false }
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{collapsed: collapsed, logger: logger}
}

// Entry renders node and its whole subtree
func (r *Renderer) Entry(node *models.TreeNode) *html.Node {
	var n *html.Node
	switch {
	case node.Placeholder:
		n = r.placeholder(node)
	case node.IsCollection():
		n = r.collection(node)
	default:
		n = r.primitiveEntry(node)
	}
	if node.Parent != nil {
		SetAttr(n, AttrIndex, itoa(node.Index))
		if node.ArrayItem {
			SetAttr(n, AttrArrayIndex, "true")
		}
	}
	return n
}

func (r *Renderer) entryShell(node *models.TreeNode, class string) *html.Node {
	return span(class,
		role(models.TargetEntry),
		attr(AttrID, node.ID),
		attr(AttrKind, string(node.Kind)),
		attr(AttrDepth, itoa(node.Depth)),
	)
}

func (r *Renderer) primitiveEntry(node *models.TreeNode) *html.Node {
	entry := r.entryShell(node, "entry primitive")
	if node.HasKey {
		entry.AppendChild(Key(node.Key))
	}
	entry.AppendChild(r.Primitive(node.Value))
	return entry
}

func (r *Renderer) collection(node *models.TreeNode) *html.Node {
	hasChildren := node.Size > 0
	collapsed := hasChildren && r.collapsed(node)

	class := "entry"
	if collapsed {
		class += " collapsed"
	}
	entry := r.entryShell(node, class)
	SetAttr(entry, AttrSize, itoa(node.Size))
	if hasChildren {
		expanded := "true"
		if collapsed {
			expanded = "false"
		}
		SetAttr(entry, "aria-expanded", expanded)
	}

	if node.HasKey {
		entry.AppendChild(Key(node.Key))
	}
	entry.AppendChild(bracket(node.Kind, true))
	if hasChildren {
		entry.AppendChild(span("e",
			role(models.TargetExpander),
			attr(AttrID, node.ID),
			attr("tabindex", "0"),
			attr("role", "button"),
			attr("aria-label", "Toggle"),
		))
		entry.AppendChild(span("ell"))
		inner := span("blockInner")
		for _, child := range node.Children {
			inner.AppendChild(r.Entry(child))
		}
		entry.AppendChild(inner)
	}
	entry.AppendChild(bracket(node.Kind, false))
	return entry
}

func (r *Renderer) placeholder(node *models.TreeNode) *html.Node {
	entry := r.entryShell(node, "entry lazy-placeholder")
	SetAttr(entry, AttrSize, itoa(node.Size))
	if node.HasKey {
		entry.AppendChild(Key(node.Key))
	}
	button := element(atom.Button, "load-more-btn",
		role(models.TargetLoadMore),
		attr(AttrID, node.ID),
		attr("type", "button"),
	)
	button.AppendChild(text(LoadMoreLabel))
	entry.AppendChild(button)
	return entry
}

// Primitive renders a scalar value span
func (r *Renderer) Primitive(v *jsonv.Value) *html.Node {
	var s *html.Node
	switch v.Kind() {
	case jsonv.KindString:
		s = span("s", role(models.TargetValue))
		s.AppendChild(text(jsonv.Escape(v.Str())))
	case jsonv.KindNumber:
		s = span("n", role(models.TargetValue))
		s.AppendChild(text(v.Literal()))
	case jsonv.KindBool:
		s = span("bl", role(models.TargetValue))
		s.AppendChild(text(v.Literal()))
	default:
		s = span("nl", role(models.TargetValue))
		s.AppendChild(text("null"))
	}
	r.decorate(s, v)
	return s
}

// Key renders a quoted key label
func Key(key string) *html.Node {
	k := span("k", role(models.TargetKey))
	k.AppendChild(text(jsonv.Quote(key)))
	return k
}

func bracket(kind models.EntryKind, open bool) *html.Node {
	b := span("b")
	switch {
	case kind == models.EntryObject && open:
		b.AppendChild(text("{"))
	case kind == models.EntryObject:
		b.AppendChild(text("}"))
	case open:
		b.AppendChild(text("["))
	default:
		b.AppendChild(text("]"))
	}
	return b
}
