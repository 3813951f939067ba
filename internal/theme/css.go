package theme

import (
	"context"
	_ "embed"
)

var (
	//go:embed css/light.css
	lightCSS string
	//go:embed css/dark.css
	darkCSS string
)

// CSSProvider produces the stylesheet for a setting
type CSSProvider interface {
	CSS(ctx context.Context, s Setting) (string, error)
}

// StaticCSS serves the embedded stylesheets
type StaticCSS struct {
	Light string
	Dark  string
}

// NewStaticCSS returns a provider over the embedded light and dark sheets
func NewStaticCSS() *StaticCSS {
	return &StaticCSS{Light: lightCSS, Dark: darkCSS}
}

// CSS composes the sheets. Forced dark layers the dark overrides on the
// light base; system wraps them in a prefers-color-scheme query.
func (p *StaticCSS) CSS(_ context.Context, s Setting) (string, error) {
	switch s {
	case ForceLight:
		return p.Light, nil
	case ForceDark:
		return p.Light + "\n\n" + p.Dark, nil
	default:
		return p.Light + "\n\n@media (prefers-color-scheme: dark) {\n" + p.Dark + "\n}", nil
	}
}
