package tree

import "github.com/rebeliceyang/lazyjson/internal/models"

// ViewState maps entry IDs to their collapsed state. Entries are expanded
// unless recorded otherwise. Because IDs are pointers into the data, the
// state survives rebuilding the tree from a re-parsed document.
type ViewState struct {
	collapsed map[string]bool
}

// NewViewState creates an empty view state with everything expanded
func NewViewState() *ViewState {
	return &ViewState{collapsed: make(map[string]bool)}
}

// IsCollapsed reports whether the entry with id is collapsed
func (v *ViewState) IsCollapsed(id string) bool {
	return v.collapsed[id]
}

// SetCollapsed records the collapsed state and reports whether it changed
func (v *ViewState) SetCollapsed(id string, collapsed bool) bool {
	if v.collapsed[id] == collapsed {
		return false
	}
	if collapsed {
		v.collapsed[id] = true
	} else {
		delete(v.collapsed, id)
	}
	return true
}

// Toggle flips the entry's state and returns the new collapsed value
func (v *ViewState) Toggle(id string) bool {
	next := !v.collapsed[id]
	v.SetCollapsed(id, next)
	return next
}

// Len returns the number of collapsed entries
func (v *ViewState) Len() int {
	return len(v.collapsed)
}

// CollapseAll collapses every expandable entry under and including root
func (v *ViewState) CollapseAll(root *models.TreeNode) {
	root.Walk(func(n *models.TreeNode) bool {
		if n.Expandable() {
			v.collapsed[n.ID] = true
		}
		return true
	})
}

// ExpandAll clears the collapsed state of root and its descendants
func (v *ViewState) ExpandAll(root *models.TreeNode) {
	root.Walk(func(n *models.TreeNode) bool {
		delete(v.collapsed, n.ID)
		return true
	})
}
