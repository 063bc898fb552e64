package widgets

import (
	"strconv"

	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/style"
)

// BodyClass is the class given to a Body without one.
const BodyClass = "body"

// BodyOptions configures NewBody.
type BodyOptions struct {
	Common
	// Padding is {top/bottom, left/right} in pixels.
	Padding [2]int
	// Elements are attached in order during setup.
	Elements []Placement
}

// Body is the root container of an application tree.
type Body struct {
	core.Node
	padding  [2]int
	elements []Placement
}

// NewBody builds a Body and attaches opts.Elements.
func NewBody(opts BodyOptions) (*Body, error) {
	if opts.Class == "" {
		opts.Class = BodyClass
	}
	b := &Body{padding: opts.Padding, elements: opts.Elements}
	if err := b.Init(b, opts.options(core.KindBody)); err != nil {
		return nil, err
	}
	return b, nil
}

// Setup attaches the placements, then applies the padding.
func (b *Body) Setup() error {
	for _, p := range b.elements {
		if err := b.AddChild(p.Element, p.Position); err != nil {
			return err
		}
	}
	b.AddStyle(style.Decl{
		Property: "padding",
		Value:    strconv.Itoa(b.padding[0]) + "px " + strconv.Itoa(b.padding[1]) + "px",
	})
	return nil
}

// Padding returns {top/bottom, left/right}.
func (b *Body) Padding() [2]int {
	return b.padding
}

// AddToApp does nothing; a Body is the root other elements attach to.
func (b *Body) AddToApp(core.Host) error {
	return nil
}
