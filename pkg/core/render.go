package core

import (
	"maps"
)

// RenderedNode is the attribute set handed to the frontend for one element.
type RenderedNode struct {
	Kind      Kind              `json:"kind"`
	ID        string            `json:"id"`
	Class     string            `json:"class"`
	Style     string            `json:"style"`
	Src       string            `json:"src,omitempty"`
	Alt       string            `json:"alt,omitempty"`
	Text      string            `json:"text,omitempty"`
	Position  []float64         `json:"position"`
	Attrs     map[string]string `json:"attrs,omitempty"`
	Callbacks []string          `json:"callbacks,omitempty"`
	Children  []RenderedNode    `json:"children,omitempty"`
}

// Texter is implemented by elements that display text.
type Texter interface {
	Text() string
}

// Render snapshots the tree rooted at root.
func Render(root Element) RenderedNode {
	n := root.Base()
	out := RenderedNode{
		Kind:     n.kind,
		ID:       n.id,
		Class:    n.class,
		Style:    n.style.String(),
		Position: n.position.Coords(),
	}
	if len(n.attrs) > 0 {
		extra := maps.Clone(n.attrs)
		out.Src = extra["src"]
		out.Alt = extra["alt"]
		delete(extra, "src")
		delete(extra, "alt")
		if len(extra) > 0 {
			out.Attrs = extra
		}
	}
	if t, ok := root.(Texter); ok {
		out.Text = t.Text()
	}
	for e := range n.Callbacks() {
		out.Callbacks = append(out.Callbacks, ExposedName(n.id, e))
	}
	for _, child := range root.Tree().Children {
		out.Children = append(out.Children, Render(child))
	}
	return out
}
