package widgets

import (
	"strconv"

	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/layout"
	"github.com/electripy/electripy/pkg/style"
)

// Common holds the options shared by every element kind.
type Common struct {
	// Class is the class attribute.
	Class string
	// Position places the element, inside Parent if one is set.
	Position layout.Position
	// Parent receives the element as its last child.
	Parent core.Element
	// Registry is the kind allow-list. Nil means the built-in kinds.
	Registry *core.Registry
}

func (c Common) options(kind core.Kind) core.Options {
	return core.Options{
		Kind:     string(kind),
		Class:    c.Class,
		Position: c.Position,
		Parent:   c.Parent,
		Registry: c.Registry,
	}
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height int
}

// IsZero reports whether both dimensions are unset.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) orDefault(def Size) Size {
	if s.IsZero() {
		return def
	}
	return s
}

func (s Size) decls() []style.Decl {
	return []style.Decl{
		{Property: "width", Value: px(s.Width)},
		{Property: "height", Value: px(s.Height)},
	}
}

// Placement pairs an element with the position it is attached at.
type Placement struct {
	Element  core.Element
	Position layout.Position
}

// At returns a Placement of e at pos.
func At(e core.Element, pos layout.Position) Placement {
	return Placement{Element: e, Position: pos}
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

// attachToRoot is the AddToApp shared by non-root kinds.
func attachToRoot(e core.Element, h core.Host) error {
	return h.Root().Base().AddChild(e, e.Base().Position())
}
