// Package core provides the element tree: identity, style, position,
// parent/child links and callbacks shared by every UI element kind.
//
// # Elements
//
// An element kind embeds [Node] and implements Setup and AddToApp:
//
//	type Badge struct {
//	    core.Node
//	    label string
//	}
//
//	func NewBadge(label string, opts core.Options) (*Badge, error) {
//	    b := &Badge{label: label}
//	    opts.Kind = "Badge"
//	    if err := b.Init(b, opts); err != nil {
//	        return nil, err
//	    }
//	    return b, nil
//	}
//
//	func (b *Badge) Setup() error { b.AddStyle(style.Decl{Property: "color", Value: "red"}); return nil }
//
//	func (b *Badge) AddToApp(h core.Host) error { return h.Root().Base().AddChild(b, b.Position()) }
//
// Kinds outside the built-in set must be registered in the [Registry]
// passed through [Options].
//
// # Positions
//
// Children are placed with [layout.Px] (pixels) or [layout.Frac]
// (fractions of the parent's box). A fractional child turns its parent into
// the positioning anchor ("position: relative").
//
// # Tree dumps
//
// [Walk] traverses a tree lazily in pre-order; [FormatTree] renders it one
// line per element, which is also what Node.String returns.
package core
