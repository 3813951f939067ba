// Package tree builds the logical entry tree for a parsed JSON value and
// keeps the per-entry view state separate from it.
package tree

import (
	"errors"
	"strconv"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

const (
	// DefaultMaxDepth is the depth past which lazy mode defers subtrees
	DefaultMaxDepth = 15
	// DefaultMaxRecursion bounds nesting built in one pass, lazy or not
	DefaultMaxRecursion = 5000
)

// ErrNotPlaceholder is returned when LoadMore is called on a built entry
var ErrNotPlaceholder = errors.New("entry is not a lazy placeholder")

// Builder composes entries from a parsed value
type Builder struct {
	Lazy         bool // defer subtrees deeper than MaxDepth
	MaxDepth     int
	MaxRecursion int // hard bound relative to where a build starts
}

// NewBuilder creates a builder with defaults applied
func NewBuilder(lazy bool, maxDepth int) *Builder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Builder{
		Lazy:         lazy,
		MaxDepth:     maxDepth,
		MaxRecursion: DefaultMaxRecursion,
	}
}

// Build creates the root entry for value
func (b *Builder) Build(value *jsonv.Value) *models.TreeNode {
	return b.build(value, "", 0, 0, b.Lazy)
}

// LoadMore replaces a placeholder in place with its fully built subtree.
// The entry keeps its ID, parent slot and depth. Lazy mode does not apply
// to the loaded subtree; only the recursion bound does.
func (b *Builder) LoadMore(node *models.TreeNode) error {
	if node == nil || !node.Placeholder {
		return ErrNotPlaceholder
	}
	node.Placeholder = false
	b.buildChildren(node, node.Depth, false)
	return nil
}

func (b *Builder) build(value *jsonv.Value, id string, depth, origin int, lazy bool) *models.TreeNode {
	node := models.NewTreeNode(id, value)
	node.Depth = depth

	if !node.IsCollection() {
		return node
	}
	if b.deferred(depth, origin, lazy) {
		node.Placeholder = true
		return node
	}

	b.buildChildren(node, origin, lazy)
	return node
}

func (b *Builder) deferred(depth, origin int, lazy bool) bool {
	if lazy && depth > b.MaxDepth {
		return true
	}
	limit := b.MaxRecursion
	if limit <= 0 {
		limit = DefaultMaxRecursion
	}
	return depth-origin > limit
}

func (b *Builder) buildChildren(node *models.TreeNode, origin int, lazy bool) {
	switch node.Kind {
	case models.EntryObject:
		for _, m := range node.Value.DisplayMembers() {
			child := b.build(m.Value, models.ChildID(node.ID, m.Key), node.Depth+1, origin, lazy)
			child.Key, child.HasKey = m.Key, true
			node.AddChild(child)
		}
	case models.EntryArray:
		for i, item := range node.Value.Items() {
			child := b.build(item, models.ChildID(node.ID, strconv.Itoa(i)), node.Depth+1, origin, lazy)
			node.AddChild(child)
		}
	}
}
