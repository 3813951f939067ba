// Package interaction dispatches clicks and key presses on rendered entries
// to the tree's view state, the path tracker and the clipboard.
package interaction

import (
	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// NodeToggled is emitted once for every entry whose collapse state changed
type NodeToggled struct {
	Expanded bool
	Node     *models.TreeNode
}

// Bus is a synchronous event bus. Handlers run in registration order on the
// emitting goroutine.
type Bus struct {
	toggled []func(NodeToggled)
	paths   []func(breadcrumb.PathChanged)
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// OnToggle registers fn for NodeToggled
func (b *Bus) OnToggle(fn func(NodeToggled)) {
	b.toggled = append(b.toggled, fn)
}

// OnPathChanged registers fn for breadcrumb path changes
func (b *Bus) OnPathChanged(fn func(breadcrumb.PathChanged)) {
	b.paths = append(b.paths, fn)
}

// EmitToggle delivers e to every toggle handler
func (b *Bus) EmitToggle(e NodeToggled) {
	for _, fn := range b.toggled {
		fn(e)
	}
}

// EmitPathChanged delivers e to every path handler
func (b *Bus) EmitPathChanged(e breadcrumb.PathChanged) {
	for _, fn := range b.paths {
		fn(e)
	}
}
