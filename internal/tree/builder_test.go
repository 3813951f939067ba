package tree

import (
	"sort"
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustParse(t *testing.T, raw string) *jsonv.Value {
	t.Helper()
	v, err := jsonv.Parse([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestBuildSortsObjectKeys(t *testing.T) {
	doc := NewDocument(mustParse(t, `{"b":1,"a":2}`), nil)

	require.Len(t, doc.Root.Children, 2)
	assert.Equal(t, "a", doc.Root.Children[0].Key)
	assert.Equal(t, "b", doc.Root.Children[1].Key)
	assert.Equal(t, 0, doc.Root.Children[0].Index)
	assert.Equal(t, 1, doc.Root.Children[1].Index)
	assert.False(t, doc.Root.Children[0].ArrayItem)
	assert.Equal(t, "/a", doc.Root.Children[0].ID)
}

func TestBuildArrayKeepsOrder(t *testing.T) {
	doc := NewDocument(mustParse(t, `[10,20]`), nil)

	require.Len(t, doc.Root.Children, 2)
	for i, child := range doc.Root.Children {
		assert.Equal(t, i, child.Index)
		assert.True(t, child.ArrayItem)
		assert.False(t, child.HasKey)
	}
	assert.Equal(t, "10", doc.Root.Children[0].Value.Literal())
	assert.Equal(t, "20", doc.Root.Children[1].Value.Literal())
	assert.Equal(t, 2, doc.Root.Size)
}

func TestLazyPlaceholderAndLoadMore(t *testing.T) {
	value := mustParse(t, `{"a":{"b":{"c":{"d":[1,2]}}}}`)
	doc := NewDocument(value, NewBuilder(true, 1))

	a := doc.Root.Children[0]
	b := a.Children[0]
	require.True(t, b.Placeholder, "depth 2 exceeds max depth 1")
	assert.Empty(t, b.Children)
	assert.Equal(t, 1, b.Size)
	assert.False(t, b.Expandable())

	require.NoError(t, doc.LoadMore(b))
	assert.False(t, b.Placeholder)
	assert.Same(t, a.Children[0], b, "placeholder is replaced in place")
	require.Len(t, b.Children, 1)
	c := b.Children[0]
	assert.Equal(t, 3, c.Depth)
	assert.False(t, c.Placeholder, "loaded subtree is fully built")
	assert.Len(t, c.Children[0].Children, 2)

	assert.ErrorIs(t, doc.LoadMore(b), ErrNotPlaceholder)
	assert.ErrorIs(t, doc.LoadMore(c.Children[0].Children[0]), ErrNotPlaceholder)
}

func TestRecursionBoundWithoutLazy(t *testing.T) {
	depth := 50
	raw := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	b := NewBuilder(false, 0)
	b.MaxRecursion = 10

	doc := NewDocument(mustParse(t, raw), b)

	var placeholder *models.TreeNode
	doc.Root.Walk(func(n *models.TreeNode) bool {
		if n.Placeholder && placeholder == nil {
			placeholder = n
		}
		return true
	})
	require.NotNil(t, placeholder)
	assert.Equal(t, 11, placeholder.Depth)

	require.NoError(t, doc.LoadMore(placeholder))
	assert.NotEmpty(t, placeholder.Children)
}

func TestViewStateToggleIsLossless(t *testing.T) {
	doc := NewDocument(mustParse(t, `{"list":[1,2,3],"obj":{"x":1}}`), nil)
	list := doc.Root.Children[0]
	before := list.Children

	assert.True(t, doc.SetCollapsed(list, true))
	assert.True(t, doc.Collapsed(list))
	assert.Len(t, doc.Visible(), 4)
	assert.Equal(t, before, list.Children, "collapsing never removes children")

	assert.True(t, doc.SetCollapsed(list, false))
	assert.False(t, doc.SetCollapsed(list, false), "no change when already expanded")
	assert.Equal(t, before, list.Children)
	assert.Equal(t, 3, list.Size)
	assert.Len(t, doc.Visible(), 7)

	leaf := list.Children[0]
	assert.False(t, doc.SetCollapsed(leaf, true), "primitives cannot collapse")
}

func TestCollapseAllExpandAll(t *testing.T) {
	doc := NewDocument(mustParse(t, `{"a":{"b":[1]},"c":[]}`), nil)

	doc.View.CollapseAll(doc.Root)
	assert.Equal(t, 3, doc.View.Len(), "root, a and b are expandable; c is empty")
	assert.Len(t, doc.Visible(), 1)

	doc.View.ExpandAll(doc.Root)
	assert.Equal(t, 0, doc.View.Len())
}

func TestRebuildKeepsViewState(t *testing.T) {
	doc := NewDocument(mustParse(t, `{"a":[1,2]}`), nil)
	doc.SetCollapsed(doc.Root.Children[0], true)

	doc.Rebuild(mustParse(t, `{"a":[1,2,3],"b":true}`))
	assert.True(t, doc.Collapsed(doc.Root.FindByID("/a")))
}

func TestNextFollowsVisibleOrder(t *testing.T) {
	doc := NewDocument(mustParse(t, `{"a":[1],"b":2}`), nil)
	a := doc.Root.Children[0]

	assert.Same(t, a.Children[0], doc.Next(a))
	doc.SetCollapsed(a, true)
	assert.Same(t, doc.Root.Children[1], doc.Next(a))
	assert.Nil(t, doc.Next(doc.Root.Children[1]))
}

// genValue draws an arbitrary JSON value, bounded in depth
func genValue(t *rapid.T, depth int) *jsonv.Value {
	maxKind := 5
	if depth >= 4 {
		maxKind = 3
	}
	switch rapid.IntRange(0, maxKind).Draw(t, "kind") {
	case 0:
		return jsonv.Null()
	case 1:
		return jsonv.Bool(rapid.Bool().Draw(t, "bool"))
	case 2:
		return jsonv.Float(rapid.Float64Range(-1e9, 1e9).Draw(t, "number"))
	case 3:
		return jsonv.String(rapid.String().Draw(t, "string"))
	case 4:
		return genArray(t, depth)
	default:
		return genObject(t, depth)
	}
}

func genArray(t *rapid.T, depth int) *jsonv.Value {
	n := rapid.IntRange(0, 4).Draw(t, "len")
	items := make([]*jsonv.Value, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, genValue(t, depth+1))
	}
	return jsonv.Array(items...)
}

func genObject(t *rapid.T, depth int) *jsonv.Value {
	n := rapid.IntRange(0, 4).Draw(t, "len")
	members := make([]jsonv.Member, 0, n)
	for i := 0; i < n; i++ {
		key := rapid.StringMatching(`[a-z/~ ]{0,4}`).Draw(t, "key")
		members = append(members, jsonv.Member{Key: key, Value: genValue(t, depth+1)})
	}
	return jsonv.Object(members...)
}

func countPrimitives(v *jsonv.Value) int {
	switch v.Kind() {
	case jsonv.KindObject:
		n := 0
		for _, m := range v.Members() {
			n += countPrimitives(m.Value)
		}
		return n
	case jsonv.KindArray:
		n := 0
		for _, item := range v.Items() {
			n += countPrimitives(item)
		}
		return n
	default:
		return 1
	}
}

func TestPropertyTreeShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var value *jsonv.Value
		if rapid.Bool().Draw(t, "root is array") {
			value = genArray(t, 0)
		} else {
			value = genObject(t, 0)
		}
		doc := NewDocument(value, nil)

		if got, want := len(doc.Leaves()), countPrimitives(value); got != want {
			t.Fatalf("leaf count %d, primitives %d", got, want)
		}

		doc.Root.Walk(func(n *models.TreeNode) bool {
			if n.Parent != nil && n.Depth != n.Parent.Depth+1 {
				t.Fatalf("depth %d under parent depth %d", n.Depth, n.Parent.Depth)
			}
			if n.IsCollection() && len(n.Children) != n.Size {
				t.Fatalf("entry %q has %d children, size %d", n.ID, len(n.Children), n.Size)
			}
			if n.Kind == models.EntryObject {
				keys := make([]string, 0, len(n.Children))
				for _, c := range n.Children {
					keys = append(keys, c.Key)
				}
				if !sort.StringsAreSorted(keys) {
					t.Fatalf("keys not sorted: %v", keys)
				}
			}
			return true
		})

		entries := doc.Entries()
		target := entries[rapid.IntRange(0, len(entries)-1).Draw(t, "target")]
		children := target.Children
		size := target.Size
		doc.SetCollapsed(target, true)
		doc.SetCollapsed(target, false)
		if target.Size != size || len(target.Children) != len(children) {
			t.Fatalf("collapse/expand changed entry %q", target.ID)
		}
		for i := range children {
			if target.Children[i] != children[i] {
				t.Fatalf("collapse/expand replaced child %d of %q", i, target.ID)
			}
		}
	})
}
