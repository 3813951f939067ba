package models

import (
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
)

func buildSample() (*TreeNode, *TreeNode, *TreeNode) {
	root := NewTreeNode("", jsonv.Object(
		jsonv.Member{Key: "list", Value: jsonv.Array(jsonv.Float(1), jsonv.Float(2))},
	))
	list := NewTreeNode(ChildID("", "list"), jsonv.Array(jsonv.Float(1), jsonv.Float(2)))
	list.Key, list.HasKey = "list", true
	root.AddChild(list)
	first := NewTreeNode(ChildID(list.ID, "0"), jsonv.Float(1))
	second := NewTreeNode(ChildID(list.ID, "1"), jsonv.Float(2))
	list.AddChild(first)
	list.AddChild(second)
	return root, list, second
}

func TestAddChildSetsLinks(t *testing.T) {
	root, list, second := buildSample()

	if list.Parent != root {
		t.Error("Parent not set correctly")
	}
	if list.Depth != 1 || second.Depth != 2 {
		t.Errorf("Expected depths 1 and 2, got %d and %d", list.Depth, second.Depth)
	}
	if second.GetDepth() != second.Depth {
		t.Errorf("Expected GetDepth %d, got %d", second.Depth, second.GetDepth())
	}
	if !second.ArrayItem || second.Index != 1 {
		t.Errorf("Expected array item at index 1, got ArrayItem=%v Index=%d", second.ArrayItem, second.Index)
	}
	if list.ArrayItem {
		t.Error("Object property should not be marked as array item")
	}
}

func TestFlattenHonoursCollapsed(t *testing.T) {
	root, list, _ := buildSample()

	all := root.Flatten(nil)
	if len(all) != 4 {
		t.Fatalf("Expected 4 visible entries, got %d", len(all))
	}

	collapsed := func(n *TreeNode) bool { return n == list }
	visible := root.Flatten(collapsed)
	if len(visible) != 2 {
		t.Fatalf("Expected 2 visible entries with list collapsed, got %d", len(visible))
	}
	if visible[1] != list {
		t.Error("Expected the collapsed entry itself to remain visible")
	}
}

func TestFindByIDAndPath(t *testing.T) {
	root, list, second := buildSample()

	if got := root.FindByID("/list/1"); got != second {
		t.Errorf("Expected to find second element, got %+v", got)
	}
	if got := root.FindByID("/missing"); got != nil {
		t.Errorf("Expected nil for missing id, got %+v", got)
	}

	path := second.GetPath()
	if len(path) != 2 || path[0] != "list" || path[1] != "[1]" {
		t.Errorf("Unexpected path %v", path)
	}
	if !root.IsAncestorOf(second) || !list.IsAncestorOf(second) {
		t.Error("Expected root and list to be ancestors")
	}
	if second.IsAncestorOf(list) {
		t.Error("Child should not be ancestor of parent")
	}
	if second.Root() != root {
		t.Error("Root() should return the tree root")
	}
}

func TestChildIDEscapes(t *testing.T) {
	if got := ChildID("", "a/b~c"); got != "/a~1b~0c" {
		t.Errorf("Expected escaped pointer, got %q", got)
	}
}

func TestExpandable(t *testing.T) {
	empty := NewTreeNode("", jsonv.Object())
	if empty.Expandable() {
		t.Error("Empty object should not be expandable")
	}
	leaf := NewTreeNode("", jsonv.String("x"))
	if leaf.Expandable() || leaf.IsCollection() {
		t.Error("Primitive should not be expandable")
	}
	_, list, _ := buildSample()
	list.Placeholder = true
	if list.Expandable() {
		t.Error("Placeholder should not be expandable")
	}
}
