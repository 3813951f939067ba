package models

import (
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

// EntryKind represents the rendered kind of a tree entry
type EntryKind string

const (
	EntryObject    EntryKind = "object"
	EntryArray     EntryKind = "array"
	EntryPrimitive EntryKind = "primitive"
)

// EntryKindOf maps a value kind to the entry kind that renders it
func EntryKindOf(k jsonv.Kind) EntryKind {
	switch k {
	case jsonv.KindObject:
		return EntryObject
	case jsonv.KindArray:
		return EntryArray
	default:
		return EntryPrimitive
	}
}

// TreeNode is one rendered entry: a JSON value in the context of its parent
type TreeNode struct {
	ID          string       // JSON Pointer of the entry ("" for the root)
	Kind        EntryKind    // object, array or primitive
	ValueKind   jsonv.Kind   // classified kind of Value
	Depth       int          // nesting level, root = 0
	Size        int          // child count for collections
	Key         string       // object property name, valid when HasKey
	HasKey      bool         // false for the root and for array elements
	Index       int          // ordinal position within the parent's children
	ArrayItem   bool         // true when the parent is an array
	Parent      *TreeNode    // nil for the root
	Children    []*TreeNode  // built children in display order
	Value       *jsonv.Value // the value this entry renders
	Placeholder bool         // lazy stand-in whose children are not built yet
}

// NewTreeNode creates a detached entry for value
func NewTreeNode(id string, value *jsonv.Value) *TreeNode {
	kind := value.Kind()
	return &TreeNode{
		ID:        id,
		Kind:      EntryKindOf(kind),
		ValueKind: kind,
		Size:      value.Len(),
		Value:     value,
		Children:  make([]*TreeNode, 0, value.Len()),
	}
}

// AddChild adds a child entry, fixing up its parent link, depth and ordinal
func (n *TreeNode) AddChild(child *TreeNode) {
	child.Parent = n
	child.Depth = n.Depth + 1
	child.Index = len(n.Children)
	child.ArrayItem = n.Kind == EntryArray
	n.Children = append(n.Children, child)
}

// IsCollection reports whether the entry renders an object or array
func (n *TreeNode) IsCollection() bool {
	return n.Kind == EntryObject || n.Kind == EntryArray
}

// Expandable reports whether the entry has an expand/collapse control.
// Empty collections and placeholders have none.
func (n *TreeNode) Expandable() bool {
	return n.IsCollection() && n.Size > 0 && !n.Placeholder
}

// Label returns the display label: the key, the [index] of an array item,
// or "root"
func (n *TreeNode) Label() string {
	switch {
	case n.HasKey:
		return n.Key
	case n.ArrayItem:
		return "[" + strconv.Itoa(n.Index) + "]"
	default:
		return "root"
	}
}

// Walk visits every built entry in document order. Returning false from fn
// skips the entry's children.
func (n *TreeNode) Walk(fn func(*TreeNode) bool) {
	stack := []*TreeNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Flatten returns the visible entries in document order. An entry is
// visible when none of its ancestors is collapsed.
func (n *TreeNode) Flatten(collapsed func(*TreeNode) bool) []*TreeNode {
	result := make([]*TreeNode, 0)
	n.Walk(func(node *TreeNode) bool {
		result = append(result, node)
		return node.Expandable() && (collapsed == nil || !collapsed(node))
	})
	return result
}

// FindByID finds an entry by its pointer ID
func (n *TreeNode) FindByID(id string) *TreeNode {
	var found *TreeNode
	n.Walk(func(node *TreeNode) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return strings.HasPrefix(id, node.ID+"/")
	})
	return found
}

// GetPath returns the display labels from the root's first child down to
// this entry
func (n *TreeNode) GetPath() []string {
	path := make([]string, 0, n.Depth)
	for current := n; current != nil && current.Parent != nil; current = current.Parent {
		path = append([]string{current.Label()}, path...)
	}
	return path
}

// GetDepth returns the depth of this entry by counting parent links
func (n *TreeNode) GetDepth() int {
	depth := 0
	for current := n.Parent; current != nil; current = current.Parent {
		depth++
	}
	return depth
}

// IsAncestorOf checks if this entry is an ancestor of the given entry
func (n *TreeNode) IsAncestorOf(other *TreeNode) bool {
	for current := other.Parent; current != nil; current = current.Parent {
		if current == n {
			return true
		}
	}
	return false
}

// Siblings returns the children of this entry's parent, including itself.
// The root is its own only sibling.
func (n *TreeNode) Siblings() []*TreeNode {
	if n.Parent == nil {
		return []*TreeNode{n}
	}
	return n.Parent.Children
}

// Root returns the top of the tree containing this entry
func (n *TreeNode) Root() *TreeNode {
	current := n
	for current.Parent != nil {
		current = current.Parent
	}
	return current
}

// ChildID returns the pointer of a child reached through token
func ChildID(parentID, token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return parentID + "/" + token
}
