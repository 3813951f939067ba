package tree

import (
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// Document is a built tree together with its view state
type Document struct {
	Value   *jsonv.Value
	Root    *models.TreeNode
	View    *ViewState
	Builder *Builder
}

// NewDocument builds the tree for value with a fresh view state
func NewDocument(value *jsonv.Value, b *Builder) *Document {
	if b == nil {
		b = NewBuilder(false, DefaultMaxDepth)
	}
	return &Document{
		Value:   value,
		Root:    b.Build(value),
		View:    NewViewState(),
		Builder: b,
	}
}

// Rebuild replaces the tree with one built from value, keeping view state
func (d *Document) Rebuild(value *jsonv.Value) {
	d.Value = value
	d.Root = d.Builder.Build(value)
}

// Collapsed reports whether node is currently collapsed. Entries without an
// expand control are never collapsed.
func (d *Document) Collapsed(node *models.TreeNode) bool {
	return node.Expandable() && d.View.IsCollapsed(node.ID)
}

// SetCollapsed changes an expandable entry's state and reports whether it
// changed
func (d *Document) SetCollapsed(node *models.TreeNode, collapsed bool) bool {
	if !node.Expandable() {
		return false
	}
	return d.View.SetCollapsed(node.ID, collapsed)
}

// Visible returns the entries not hidden by a collapsed ancestor
func (d *Document) Visible() []*models.TreeNode {
	return d.Root.Flatten(d.Collapsed)
}

// Entries returns every built entry in document order
func (d *Document) Entries() []*models.TreeNode {
	return d.Root.Flatten(nil)
}

// Leaves returns the built primitive entries in document order
func (d *Document) Leaves() []*models.TreeNode {
	var leaves []*models.TreeNode
	d.Root.Walk(func(n *models.TreeNode) bool {
		if n.Kind == models.EntryPrimitive {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// LoadMore expands a lazy placeholder in place
func (d *Document) LoadMore(node *models.TreeNode) error {
	return d.Builder.LoadMore(node)
}

// Next returns the visible entry after node in document order
func (d *Document) Next(node *models.TreeNode) *models.TreeNode {
	visible := d.Visible()
	for i, n := range visible {
		if n == node && i+1 < len(visible) {
			return visible[i+1]
		}
	}
	return nil
}
