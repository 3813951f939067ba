package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/models"
	"github.com/rebeliceyang/lazyjson/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func renderDoc(t *testing.T, raw string, b *tree.Builder) (*tree.Document, *html.Node) {
	t.Helper()
	v, err := jsonv.Parse([]byte(raw))
	require.NoError(t, err)
	doc := tree.NewDocument(v, b)
	return doc, New(doc.Collapsed, nil).Entry(doc.Root)
}

func attrOf(t *testing.T, n *html.Node, key string) string {
	t.Helper()
	v, ok := Attr(n, key)
	require.True(t, ok, "missing %s", key)
	return v
}

func TestObjectChildrenInSortedOrder(t *testing.T) {
	_, root := renderDoc(t, `{"b":1,"a":2}`, nil)

	inner := Find(root, func(n *html.Node) bool { return HasClass(n, "blockInner") })
	require.NotNil(t, inner)

	var keys, indices []string
	for c := inner.FirstChild; c != nil; c = c.NextSibling {
		key := Find(c, func(n *html.Node) bool { return Role(n) == models.TargetKey })
		keys = append(keys, TextContent(key))
		indices = append(indices, attrOf(t, c, AttrIndex))
		_, isArray := Attr(c, AttrArrayIndex)
		assert.False(t, isArray)
	}
	assert.Equal(t, []string{`"a"`, `"b"`}, keys)
	assert.Equal(t, []string{"0", "1"}, indices)
}

func TestArrayItemsCarryIndexMarkers(t *testing.T) {
	_, root := renderDoc(t, `[10,20]`, nil)

	assert.Equal(t, "array", attrOf(t, root, AttrKind))
	assert.Equal(t, "2", attrOf(t, root, AttrSize))
	assert.Equal(t, "true", attrOf(t, root, "aria-expanded"))

	inner := Find(root, func(n *html.Node) bool { return HasClass(n, "blockInner") })
	require.NotNil(t, inner)
	i := 0
	for c := inner.FirstChild; c != nil; c = c.NextSibling {
		assert.Equal(t, itoa(i), attrOf(t, c, AttrIndex))
		assert.Equal(t, "true", attrOf(t, c, AttrArrayIndex))
		assert.Nil(t, Find(c, func(n *html.Node) bool { return Role(n) == models.TargetKey }), "array items have no key label")
		i++
	}
	assert.Equal(t, 2, i)
}

func TestEmptyCollectionHasOnlyBrackets(t *testing.T) {
	_, root := renderDoc(t, `{"a":[]}`, nil)

	a := FindByID(root, "/a")
	require.NotNil(t, a)
	assert.Nil(t, Find(a, func(n *html.Node) bool { return Role(n) == models.TargetExpander }))
	assert.Nil(t, Find(a, func(n *html.Node) bool { return HasClass(n, "blockInner") }))
	_, hasAria := Attr(a, "aria-expanded")
	assert.False(t, hasAria)
	assert.Equal(t, `"a"[]`, TextContent(a))
}

func TestCollapsedStateFromViewState(t *testing.T) {
	doc, _ := renderDoc(t, `{"a":{"x":1},"b":[1]}`, nil)
	doc.SetCollapsed(doc.Root.FindByID("/a"), true)

	root := New(doc.Collapsed, nil).Entry(doc.Root)
	a := FindByID(root, "/a")
	b := FindByID(root, "/b")
	assert.True(t, HasClass(a, "collapsed"))
	assert.Equal(t, "false", attrOf(t, a, "aria-expanded"))
	assert.False(t, HasClass(b, "collapsed"))
	assert.NotNil(t, FindByID(a, "/a/x"), "collapsed children stay in the markup")
}

func TestPrimitiveText(t *testing.T) {
	_, root := renderDoc(t, `{"s":"say \"hi\"\n","n":1.5,"t":true,"z":null}`, nil)

	value := func(id string) *html.Node {
		entry := FindByID(root, id)
		require.NotNil(t, entry)
		return Find(entry, func(n *html.Node) bool { return Role(n) == models.TargetValue })
	}

	s := value("/s")
	assert.True(t, HasClass(s, "s"))
	assert.Equal(t, `say \"hi\"\n`, TextContent(s))
	unescaped, err := jsonv.Unescape(TextContent(s))
	require.NoError(t, err)
	assert.Equal(t, "say \"hi\"\n", unescaped)

	assert.Equal(t, "1.5", TextContent(value("/n")))
	assert.True(t, HasClass(value("/t"), "bl"))
	assert.Equal(t, "true", attrOf(t, value("/t"), "data-value"))
	assert.Equal(t, "null", TextContent(value("/z")))
	assert.True(t, HasClass(value("/z"), "nl"))
}

func TestDecorations(t *testing.T) {
	_, root := renderDoc(t, `{
		"url":"https://example.com/a?b=1",
		"plain":"hello world",
		"mail":"someone@example.com",
		"day":"2024-01-15",
		"big":-2500000,
		"small":42,
		"ftp":"ftp://example.com"
	}`, nil)

	value := func(id string) *html.Node {
		return Find(FindByID(root, id), func(n *html.Node) bool { return Role(n) == models.TargetValue })
	}

	url := value("/url")
	assert.Equal(t, "url", attrOf(t, url, AttrType))
	link := Find(url, func(n *html.Node) bool { return n.Data == "a" })
	require.NotNil(t, link)
	assert.Equal(t, "https://example.com/a?b=1", attrOf(t, link, "href"))
	assert.Equal(t, "_blank", attrOf(t, link, "target"))
	assert.Equal(t, "noopener noreferrer", attrOf(t, link, "rel"))
	assert.Equal(t, "https://example.com/a?b=1", TextContent(link))

	plain := value("/plain")
	_, typed := Attr(plain, AttrType)
	assert.False(t, typed)
	assert.Nil(t, Find(plain, func(n *html.Node) bool { return n.Data == "a" }))

	assert.Equal(t, "email", attrOf(t, value("/mail"), AttrType))
	assert.Equal(t, "date", attrOf(t, value("/day"), AttrType))
	assert.Equal(t, "large", attrOf(t, value("/big"), AttrType))
	_, typed = Attr(value("/small"), AttrType)
	assert.False(t, typed)
	_, typed = Attr(value("/ftp"), AttrType)
	assert.False(t, typed)
}

func TestDetectors(t *testing.T) {
	assert.True(t, IsURL("http://x.io"))
	assert.False(t, IsURL("https://"))
	assert.False(t, IsURL("example.com"))
	assert.True(t, IsEmail("a@b.co"))
	assert.False(t, IsEmail("a@b"))
	assert.False(t, IsEmail("a b@c.d"))
	assert.True(t, IsDate("2024-01-15T10:00:00Z"))
	assert.True(t, IsDate("2024-01"))
	assert.False(t, IsDate("2024"))
	assert.False(t, IsDate("not-a-date"))
}

func TestPlaceholderMarkup(t *testing.T) {
	_, root := renderDoc(t, `{"a":{"b":{"c":1}}}`, tree.NewBuilder(true, 1))

	b := FindByID(root, "/a/b")
	require.NotNil(t, b)
	assert.True(t, HasClass(b, "lazy-placeholder"))
	button := Find(b, func(n *html.Node) bool { return Role(n) == models.TargetLoadMore })
	require.NotNil(t, button)
	assert.Equal(t, "button", button.Data)
	assert.Equal(t, LoadMoreLabel, TextContent(button))
	assert.Equal(t, "/a/b", attrOf(t, button, AttrID))
}

func TestBreadcrumbMarkup(t *testing.T) {
	doc, _ := renderDoc(t, `{"users":[{"name":"a"}]}`, nil)
	tracker := breadcrumb.NewTracker(doc.Root)
	tracker.Update(doc.Root.FindByID("/users/0/name"))

	bar := Breadcrumb(tracker.State(), tracker.Crumbs())
	assert.False(t, HasClass(bar, "hidden"))
	assert.Equal(t, "root › usersobj › [0]arr › nameobj", strings.Join(strings.Fields(TextContent(bar)), " "))

	items := 0
	var last *html.Node
	Find(bar, func(n *html.Node) bool {
		if Role(n) == models.TargetCrumb {
			items++
			last = n
		}
		return false
	})
	assert.Equal(t, 3, items)
	assert.True(t, HasClass(last, "active"))
	assert.Equal(t, "2", attrOf(t, last, AttrCrumb))

	hidden := Breadcrumb(breadcrumb.Hidden, nil)
	assert.True(t, HasClass(hidden, "hidden"))
}

func TestWrite(t *testing.T) {
	_, root := renderDoc(t, `{"k":"<b>"}`, nil)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, root))
	out := buf.String()
	assert.Contains(t, out, `data-role="entry"`)
	assert.Contains(t, out, "&lt;b&gt;")
	assert.NotContains(t, out, "<b>")
}
