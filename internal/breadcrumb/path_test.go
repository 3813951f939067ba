package breadcrumb

import (
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const sample = `{"users":[{"name":"a","tags":["x"]},{"name":"b"}],"meta":{"a/b":1,"two words":true}}`

func buildDoc(t *testing.T, raw string, b *tree.Builder) *tree.Document {
	t.Helper()
	v, err := jsonv.Parse([]byte(raw))
	require.NoError(t, err)
	return tree.NewDocument(v, b)
}

func TestComputeArrayAndObjectSteps(t *testing.T) {
	doc := buildDoc(t, sample, nil)
	node := doc.Root.FindByID("/users/1/name")
	require.NotNil(t, node)

	path := Compute(node)
	require.Len(t, path, 3)
	assert.Equal(t, Step{Key: "users", Kind: ObjectProperty}, path[0])
	assert.Equal(t, Step{Index: 1, HasIndex: true, Kind: ArrayItem}, path[1])
	assert.Equal(t, Step{Key: "name", Kind: ObjectProperty}, path[2])

	assert.Equal(t, "users › [1] › name", path.String())
	assert.Equal(t, "$.users[1].name", path.Expression())
	assert.Equal(t, node.ID, path.Pointer())
}

func TestComputeRootIsEmpty(t *testing.T) {
	doc := buildDoc(t, sample, nil)

	path := Compute(doc.Root)
	assert.Empty(t, path)
	assert.Equal(t, "", path.String())
	assert.Equal(t, "$", path.Expression())
	assert.Nil(t, Compute(nil))
}

func TestExpressionQuotesAwkwardKeys(t *testing.T) {
	doc := buildDoc(t, sample, nil)

	slash := Compute(doc.Root.FindByID("/meta/a~1b"))
	assert.Equal(t, `$.meta["a/b"]`, slash.Expression())
	assert.Equal(t, "/meta/a~1b", slash.Pointer())

	space := Compute(doc.Root.FindByID("/meta/two words"))
	assert.Equal(t, `$.meta["two words"]`, space.Expression())
}

func TestPathEqual(t *testing.T) {
	a := Path{{Key: "x", Kind: ObjectProperty}, {Index: 0, HasIndex: true, Kind: ArrayItem}}
	b := Path{{Key: "x", Kind: ObjectProperty}, {Index: 0, HasIndex: true, Kind: ArrayItem}}
	c := Path{{Key: "x", Kind: ObjectProperty}, {Index: 1, HasIndex: true, Kind: ArrayItem}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a[:1]))
	assert.True(t, Path(nil).Equal(Path{}))
}

func TestResolve(t *testing.T) {
	doc := buildDoc(t, sample, nil)
	target := doc.Root.FindByID("/users/0/tags/0")
	require.NotNil(t, target)

	got, err := Resolve(doc.Root, Compute(target))
	require.NoError(t, err)
	assert.Same(t, target, got)

	_, err = Resolve(doc.Root, Path{{Key: "missing", Kind: ObjectProperty}})
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = Resolve(doc.Root, Path{{Key: "users", Kind: ObjectProperty}, {Index: 9, HasIndex: true, Kind: ArrayItem}})
	assert.ErrorIs(t, err, ErrPathNotFound)

	// array items are not matched by key
	_, err = Resolve(doc.Root, Path{{Key: "users", Kind: ObjectProperty}, {Key: "0", Kind: ObjectProperty}})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestResolveStopsAtPlaceholder(t *testing.T) {
	doc := buildDoc(t, `{"a":{"b":{"c":1}}}`, tree.NewBuilder(true, 1))

	path := Path{{Key: "a", Kind: ObjectProperty}, {Key: "b", Kind: ObjectProperty}, {Key: "c", Kind: ObjectProperty}}
	node, err := Resolve(doc.Root, path)
	assert.ErrorIs(t, err, ErrPlaceholder)
	require.NotNil(t, node)
	assert.Equal(t, "/a/b", node.ID)

	require.NoError(t, doc.LoadMore(node))
	node, err = Resolve(doc.Root, path)
	require.NoError(t, err)
	assert.Equal(t, "/a/b/c", node.ID)
}

func genJSON(depth int) *rapid.Generator[*jsonv.Value] {
	return rapid.Custom(func(t *rapid.T) *jsonv.Value {
		choice := rapid.IntRange(0, 3).Draw(t, "choice")
		if depth <= 0 {
			choice = rapid.IntRange(0, 1).Draw(t, "leaf")
		}
		switch choice {
		case 0:
			return jsonv.String(rapid.String().Draw(t, "s"))
		case 1:
			return jsonv.Float(float64(rapid.IntRange(-100, 100).Draw(t, "n")))
		case 2:
			items := rapid.SliceOfN(genJSON(depth-1), 0, 4).Draw(t, "items")
			return jsonv.Array(items...)
		default:
			keys := rapid.SliceOfN(rapid.StringMatching(`[a-z/~ .]{0,4}`), 0, 4).Draw(t, "keys")
			members := make([]jsonv.Member, len(keys))
			for i, k := range keys {
				members[i] = jsonv.Member{Key: k, Value: genJSON(depth - 1).Draw(t, "member")}
			}
			return jsonv.Object(members...)
		}
	})
}

func TestComputeResolveRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := tree.NewDocument(genJSON(4).Draw(t, "doc"), nil)

		doc.Root.Walk(func(n *models.TreeNode) bool {
			path := Compute(n)
			if len(path) != n.Depth {
				t.Fatalf("path length %d, depth %d", len(path), n.Depth)
			}
			if path.Pointer() != n.ID {
				t.Fatalf("pointer %q, id %q", path.Pointer(), n.ID)
			}
			got, err := Resolve(doc.Root, path)
			if err != nil {
				t.Fatalf("resolve %q: %v", n.ID, err)
			}
			if got != n {
				t.Fatalf("resolve %q returned %q", n.ID, got.ID)
			}
			return true
		})
	})
}
