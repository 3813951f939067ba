package interaction

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/tree"
)

// ErrUnknownTarget is returned when a target's entry cannot be found
var ErrUnknownTarget = errors.New("unknown target")

// Modifiers are the modifier keys held during an interaction
type Modifiers struct {
	Ctrl  bool
	Meta  bool
	Alt   bool
	Shift bool
}

// Multi reports whether the platform multi-select modifier is held
func (m Modifiers) Multi() bool {
	return m.Ctrl || m.Meta
}

// Copy reports whether the copy modifier is held
func (m Modifiers) Copy() bool {
	return m.Ctrl
}

// Target identifies the element an interaction landed on
type Target struct {
	Kind   models.TargetKind
	NodeID string
	Crumb  int
}

// Key is a navigation key
type Key string

const (
	KeyEnter Key = "enter"
	KeySpace Key = "space"
	KeyRight Key = "right"
	KeyLeft  Key = "left"
)

// Deps are the collaborators of a Handler
type Deps struct {
	Bus       *Bus
	Clipboard Clipboard
	Notices   *Notices
	Logger    *slog.Logger
}

// Handler is the single dispatcher for one document
type Handler struct {
	doc       *tree.Document
	tracker   *breadcrumb.Tracker
	bus       *Bus
	clipboard Clipboard
	notices   *Notices
	logger    *slog.Logger
	focus     *models.TreeNode
}

// NewHandler wires a handler over doc. Path changes from tracker are
// forwarded to the bus.
func NewHandler(doc *tree.Document, tracker *breadcrumb.Tracker, deps Deps) *Handler {
	h := &Handler{
		doc:       doc,
		tracker:   tracker,
		bus:       deps.Bus,
		clipboard: deps.Clipboard,
		notices:   deps.Notices,
		logger:    deps.Logger,
		focus:     doc.Root,
	}
	if h.bus == nil {
		h.bus = NewBus()
	}
	if h.clipboard == nil {
		h.clipboard = SystemClipboard{}
	}
	if h.notices == nil {
		h.notices = NewNotices(nil)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	tracker.OnChange(h.bus.EmitPathChanged)
	tracker.SetScroller(breadcrumb.ScrollerFunc(func(n *models.TreeNode) { h.focus = n }))
	return h
}

// Bus returns the event bus
func (h *Handler) Bus() *Bus { return h.bus }

// Notices returns the notice holder
func (h *Handler) Notices() *Notices { return h.notices }

// Focus returns the focused entry
func (h *Handler) Focus() *models.TreeNode { return h.focus }

// SetFocus moves keyboard focus to node and reports it to the tracker
func (h *Handler) SetFocus(node *models.TreeNode) {
	if node == nil {
		return
	}
	h.focus = node
	h.tracker.Update(node)
}

// Reset re-attaches the handler after the document was rebuilt. Focus moves
// to the entry with the same ID, or the nearest surviving ancestor.
func (h *Handler) Reset() {
	h.tracker.SetRoot(h.doc.Root)
	id := ""
	if h.focus != nil {
		id = h.focus.ID
	}
	for {
		if node := h.doc.Root.FindByID(id); node != nil {
			h.focus = node
			return
		}
		if id == "" {
			h.focus = h.doc.Root
			return
		}
		id = parentID(id)
	}
}

func parentID(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '/' {
			return id[:i]
		}
	}
	return ""
}

func (h *Handler) node(t Target) (*models.TreeNode, error) {
	node := h.doc.Root.FindByID(t.NodeID)
	if node == nil {
		return nil, fmt.Errorf("%s %q: %w", t.Kind, t.NodeID, ErrUnknownTarget)
	}
	return node, nil
}

// HandleClick dispatches a click on target
func (h *Handler) HandleClick(t Target, mods Modifiers) error {
	switch t.Kind {
	case models.TargetCrumb:
		return h.tracker.Navigate(t.Crumb)
	case models.TargetRootCrumb:
		return h.tracker.NavigateRoot()
	case models.TargetNone:
		return nil
	}

	node, err := h.node(t)
	if err != nil {
		return err
	}

	switch t.Kind {
	case models.TargetExpander:
		h.toggle(node, mods)
	case models.TargetLoadMore:
		if err := h.doc.LoadMore(node); err != nil {
			return fmt.Errorf("load %q: %w", node.ID, err)
		}
	case models.TargetValue:
		if mods.Copy() && node.ValueKind == jsonv.KindString {
			_ = h.Copy(node.Value.Str())
		}
	}
	h.SetFocus(node)
	return nil
}

// HandleKey applies a navigation key to the focused entry. It reports
// whether the key was consumed.
func (h *Handler) HandleKey(key Key, mods Modifiers) bool {
	node := h.focus
	if node == nil {
		return false
	}

	switch key {
	case KeyEnter, KeySpace:
		switch {
		case node.Placeholder:
			return h.load(node)
		case node.Expandable():
			h.toggle(node, mods)
			return true
		}
		return false

	case KeyRight:
		switch {
		case node.Placeholder:
			return h.load(node)
		case h.doc.Collapsed(node):
			h.setCollapsed(node, false)
		default:
			h.SetFocus(h.doc.Next(node))
		}
		return true

	case KeyLeft:
		switch {
		case node.Expandable() && !h.doc.Collapsed(node):
			h.setCollapsed(node, true)
		case node.Parent != nil:
			h.SetFocus(node.Parent)
		}
		return true
	}
	return false
}

func (h *Handler) load(node *models.TreeNode) bool {
	if err := h.doc.LoadMore(node); err != nil {
		h.logger.Warn("load more failed", "id", node.ID, "error", err)
		return false
	}
	h.tracker.Update(node)
	return true
}

// toggle flips node. With the multi modifier every expandable sibling is set
// to the inverse of node's current state.
func (h *Handler) toggle(node *models.TreeNode, mods Modifiers) {
	if !node.Expandable() {
		return
	}
	collapse := !h.doc.Collapsed(node)
	if !mods.Multi() {
		h.setCollapsed(node, collapse)
		return
	}
	for _, sibling := range node.Siblings() {
		h.setCollapsed(sibling, collapse)
	}
}

func (h *Handler) setCollapsed(node *models.TreeNode, collapsed bool) {
	if h.doc.SetCollapsed(node, collapsed) {
		h.bus.EmitToggle(NodeToggled{Expanded: !collapsed, Node: node})
	}
}

// Expand reveals node by expanding each collapsed ancestor
func (h *Handler) Expand(node *models.TreeNode) {
	for p := node.Parent; p != nil; p = p.Parent {
		h.setCollapsed(p, false)
	}
}

// ToggleAll collapses or expands every expandable entry
func (h *Handler) ToggleAll(collapse bool) {
	h.doc.Root.Walk(func(n *models.TreeNode) bool {
		h.setCollapsed(n, collapse)
		return true
	})
}

// Copy writes text to the clipboard and shows the copied notice on success
func (h *Handler) Copy(text string) error {
	if err := h.clipboard.WriteAll(text); err != nil {
		h.logger.Warn("clipboard write failed", "error", err)
		return err
	}
	h.notices.Show(CopiedNotice)
	return nil
}
