package formatter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rebeliceyang/lazyjson/internal/settings"
	"github.com/rebeliceyang/lazyjson/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingCSS struct{}

func (panickingCSS) CSS(context.Context, theme.Setting) (string, error) {
	panic("stylesheet exploded")
}

func TestFormatRejections(t *testing.T) {
	f := New(Options{})
	ctx := context.Background()

	tests := []struct {
		name   string
		raw    string
		note   string
		length int
	}{
		{"empty", "", NoteNoContent, 0},
		{"string", `"hello"`, NoteBadStart, 7},
		{"leading text", `x{"a":1}`, NoteBadStart, 8},
		{"broken", `{"a":`, NoteNotJSON, 5},
		{"trailing garbage", `[1] [2]`, NoteNotJSON, 7},
		{"multibyte length", `{"ü":`, NoteNotJSON, 5},
		{"two documents", `{"a":1}{"b":2}`, NoteNotJSON, 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, res := f.Format(ctx, tt.raw)
			assert.Nil(t, page)
			assert.False(t, res.Formatted)
			assert.Equal(t, tt.note, res.Note)
			require.NotNil(t, res.RawLength)
			assert.Equal(t, tt.length, *res.RawLength)
		})
	}
}

func TestFormatTooLong(t *testing.T) {
	raw := "[" + strings.Repeat(" ", MaxLength) + "]"

	page, res := New(Options{}).Format(context.Background(), raw)
	assert.Nil(t, page)
	assert.False(t, res.Formatted)
	assert.Equal(t, NoteTooLong, res.Note)
	require.NotNil(t, res.RawLength)
	assert.Equal(t, MaxLength+2, *res.RawLength)
}

func TestFormatAccepts(t *testing.T) {
	page, res := New(Options{}).Format(context.Background(), "  \n{\"b\":1,\"a\":[true]}")

	require.True(t, res.Formatted)
	assert.Equal(t, NoteDone, res.Note)
	require.NotNil(t, page)
	assert.Equal(t, 2, page.Doc.Root.Size)
	assert.Equal(t, "a", page.Doc.Root.Children[0].Key)
	assert.Equal(t, theme.System, page.Setting)
	assert.Contains(t, page.CSS, "prefers-color-scheme")
}

func TestFormatOutOfRangeNumber(t *testing.T) {
	page, res := New(Options{}).Format(context.Background(), `{"big":1e400}`)
	require.True(t, res.Formatted)

	big := page.Doc.Root.FindByID("/big")
	require.NotNil(t, big)
	assert.Equal(t, "null", big.Value.Literal())

	var buf bytes.Buffer
	require.NoError(t, page.WriteHTML(&buf))
	assert.Contains(t, buf.String(), ">null</span>")
}

func TestFormatUsesStoredTheme(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	require.NoError(t, store.Set(ctx, theme.SettingKey, "force_light"))

	page, res := New(Options{Themes: theme.NewService(store, nil, nil)}).Format(ctx, `[]`)
	require.True(t, res.Formatted)
	assert.Equal(t, theme.ForceLight, page.Setting)
	assert.NotContains(t, page.CSS, "prefers-color-scheme")
}

func TestFormatRecoversFromSetupPanic(t *testing.T) {
	f := New(Options{Themes: theme.NewService(nil, panickingCSS{}, nil)})

	page, res := f.Format(context.Background(), `{"a":1}`)
	assert.Nil(t, page)
	assert.False(t, res.Formatted)
	assert.Equal(t, NoteUnexpected, res.Note)
	assert.Nil(t, res.RawLength)
}

func TestReformatKeepsViewState(t *testing.T) {
	f := New(Options{})
	page, res := f.Format(context.Background(), `{"a":{"x":1},"b":{"y":2}}`)
	require.True(t, res.Formatted)

	a := page.Doc.Root.FindByID("/a")
	page.Doc.SetCollapsed(a, true)
	page.Handler.SetFocus(page.Doc.Root.FindByID("/b/y"))

	res = f.Reformat(page, `{"a":{"x":1,"z":3},"b":{}}`)
	require.True(t, res.Formatted)
	assert.True(t, page.Doc.Collapsed(page.Doc.Root.FindByID("/a")))
	assert.Equal(t, "/b", page.Handler.Focus().ID)

	res = f.Reformat(page, `nope`)
	assert.False(t, res.Formatted)
	assert.Equal(t, NoteBadStart, res.Note)
	assert.NotNil(t, page.Doc.Root.FindByID("/a/z"), "rejected input leaves the page alone")
}

func TestWriteHTML(t *testing.T) {
	page, res := New(Options{}).Format(context.Background(), `{"site":"https://example.com","n":1}`)
	require.True(t, res.Formatted)

	var buf bytes.Buffer
	require.NoError(t, page.WriteHTML(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<html data-theme="system">`)
	assert.Contains(t, out, `<style id="jfStyleEl">`)
	assert.Contains(t, out, `id="breadcrumbBar"`)
	assert.Contains(t, out, `breadcrumb-bar hidden`)
	assert.Contains(t, out, `<a href="https://example.com" target="_blank" rel="noopener noreferrer">`)
	assert.Contains(t, out, `id="jsonFormatterRaw" class="hidden" hidden=""`)
}
