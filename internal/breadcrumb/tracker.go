package breadcrumb

import (
	"fmt"

	"github.com/rebeliceyang/lazyjson/internal/models"
)

// State is the breadcrumb bar's visibility
type State int

const (
	Hidden State = iota
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// Crumb is one rendered breadcrumb item
type Crumb struct {
	Position int // index into the path
	Step     Step
	Active   bool // last item
}

// PathChanged is emitted on every breadcrumb render
type PathChanged struct {
	Path   Path
	Text   string
	Target *models.TreeNode
}

// Scroller brings an entry into view
type Scroller interface {
	ScrollIntoView(node *models.TreeNode)
}

// ScrollerFunc adapts a function to Scroller
type ScrollerFunc func(node *models.TreeNode)

// ScrollIntoView calls f(node)
func (f ScrollerFunc) ScrollIntoView(node *models.TreeNode) { f(node) }

// Tracker holds the current path and re-renders the breadcrumb only when
// the path actually changes
type Tracker struct {
	root      *models.TreeNode
	state     State
	path      Path
	target    *models.TreeNode
	crumbs    []Crumb
	renders   int
	scroller  Scroller
	listeners []func(PathChanged)
}

// NewTracker creates a hidden tracker over the tree rooted at root
func NewTracker(root *models.TreeNode) *Tracker {
	return &Tracker{root: root, state: Hidden}
}

// OnChange registers a listener for PathChanged
func (t *Tracker) OnChange(fn func(PathChanged)) {
	t.listeners = append(t.listeners, fn)
}

// SetScroller sets the collaborator used by Navigate
func (t *Tracker) SetScroller(s Scroller) {
	t.scroller = s
}

// SetRoot swaps in a rebuilt tree. The current path is re-resolved so the
// target points into the new tree; the bar itself is not re-rendered.
func (t *Tracker) SetRoot(root *models.TreeNode) {
	t.root = root
	if node, err := Resolve(root, t.path); err == nil {
		t.target = node
	} else {
		t.target = nil
	}
}

// Update recomputes the path for node. It reports whether the breadcrumb
// was re-rendered; an identical path is a no-op.
func (t *Tracker) Update(node *models.TreeNode) bool {
	if node == nil {
		return false
	}
	path := Compute(node)
	t.target = node
	if path.Equal(t.path) {
		return false
	}

	t.path = path
	if len(path) == 0 {
		t.state = Hidden
	} else {
		t.state = Shown
	}
	t.render()

	event := PathChanged{Path: path, Text: path.String(), Target: node}
	for _, fn := range t.listeners {
		fn(event)
	}
	return true
}

func (t *Tracker) render() {
	t.renders++
	t.crumbs = make([]Crumb, len(t.path))
	for i, step := range t.path {
		t.crumbs[i] = Crumb{Position: i, Step: step, Active: i == len(t.path)-1}
	}
}

// Navigate re-locates the entry for crumb i by replaying the path from the
// root, scrolls it into view and recomputes the path from it
func (t *Tracker) Navigate(i int) error {
	if i < 0 || i >= len(t.path) {
		return fmt.Errorf("crumb %d out of range [0,%d)", i, len(t.path))
	}
	node, err := Resolve(t.root, t.path[:i+1])
	if err != nil {
		return err
	}
	t.reveal(node)
	return nil
}

// NavigateRoot scrolls to the root entry
func (t *Tracker) NavigateRoot() error {
	if t.root == nil {
		return ErrPathNotFound
	}
	t.reveal(t.root)
	return nil
}

func (t *Tracker) reveal(node *models.TreeNode) {
	if t.scroller != nil {
		t.scroller.ScrollIntoView(node)
	}
	t.Update(node)
}

// State returns whether the bar is hidden or shown
func (t *Tracker) State() State { return t.state }

// Path returns the last rendered path
func (t *Tracker) Path() Path { return t.path }

// Target returns the entry the last navigation event pointed at
func (t *Tracker) Target() *models.TreeNode { return t.target }

// Crumbs returns the rendered items
func (t *Tracker) Crumbs() []Crumb { return t.crumbs }

// Renders returns how many times the breadcrumb has been rendered
func (t *Tracker) Renders() int { return t.renders }
