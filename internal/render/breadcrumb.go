package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/models"
)

// Breadcrumb renders the breadcrumb bar. A hidden bar is still emitted so
// the page keeps a stable slot for it.
func Breadcrumb(state breadcrumb.State, crumbs []breadcrumb.Crumb) *html.Node {
	class := "breadcrumb-bar"
	if state == breadcrumb.Hidden {
		class += " hidden"
	}
	bar := element(atom.Div, class, attr("id", "breadcrumbBar"), attr("data-state", state.String()))
	container := element(atom.Div, "breadcrumb-container")
	bar.AppendChild(container)

	root := element(atom.Div, "breadcrumb-item", role(models.TargetRootCrumb))
	root.AppendChild(text("root"))
	container.AppendChild(root)

	for _, c := range crumbs {
		sep := span("breadcrumb-separator")
		sep.AppendChild(text(breadcrumb.Separator))
		container.AppendChild(sep)

		class := "breadcrumb-item"
		if c.Active {
			class += " active"
		}
		item := element(atom.Div, class, role(models.TargetCrumb), attr(AttrCrumb, itoa(c.Position)))

		typeTag := "obj"
		if c.Step.Kind == breadcrumb.ArrayItem {
			index := span("breadcrumb-index")
			index.AppendChild(text(c.Step.Label()))
			item.AppendChild(index)
			typeTag = "arr"
		} else {
			key := span("breadcrumb-key")
			key.AppendChild(text(c.Step.Key))
			item.AppendChild(key)
		}
		tag := span("breadcrumb-type")
		tag.AppendChild(text(typeTag))
		item.AppendChild(tag)

		container.AppendChild(item)
	}
	return bar
}
