package core

import (
	"crypto/md5"
	"encoding/hex"
	"iter"
	"maps"
	"slices"

	"github.com/electripy/electripy/pkg/errors"
	"github.com/electripy/electripy/pkg/layout"
	"github.com/electripy/electripy/pkg/style"
)

// IDLength is the number of hex digits kept from the content hash.
const IDLength = 5

// Element is a node in the UI hierarchy.
//
// Concrete kinds embed [Node], which supplies Base and Tree, and implement
// Setup and AddToApp themselves.
type Element interface {
	// Base returns the embedded Node.
	Base() *Node
	// Setup builds element-specific children and style. It runs once,
	// after the base attributes and the position have been resolved.
	Setup() error
	// Tree returns the element mapped to its direct children.
	Tree() Tree
	// AddToApp registers the element with the launcher's root.
	AddToApp(host Host) error
}

// Host is the launcher side of AddToApp.
type Host interface {
	Root() Element
}

// Tree is an element with its direct children.
type Tree struct {
	Element  Element
	Children []Element
}

// Options configures Node.Init.
type Options struct {
	// Kind must be registered in Registry.
	Kind string
	// Class is the free-form class attribute.
	Class string
	// Position is resolved once during construction.
	Position layout.Position
	// Parent, if set, receives the element as its last child.
	Parent Element
	// Registry is the kind allow-list. Nil means the built-in kinds.
	Registry *Registry
}

// Node holds the state shared by every element kind. The zero value is not
// usable; call Init from the concrete kind's constructor.
type Node struct {
	self      Element
	kind      Kind
	class     string
	id        string
	style     style.Declarations
	position  layout.Position
	parent    Element // non-owning; cleared on detach
	children  []Element
	callbacks map[Event]Callback
	attrs     map[string]string
}

// HashID derives the stable element id from the kind and class.
func HashID(kind Kind, class string) string {
	sum := md5.Sum([]byte(string(kind) + class))
	return hex.EncodeToString(sum[:])[:IDLength]
}

// Base returns n. Embedding kinds inherit it.
func (n *Node) Base() *Node {
	return n
}

// Init constructs the node for self, which must embed n. The kind is
// validated, id and class are derived, the position is resolved (through
// the parent's AddChild when a parent is given), then self.Setup runs.
//
// If Setup fails the element is detached from its parent again. Style
// already applied to the parent stays.
func (n *Node) Init(self Element, opts Options) error {
	const op = "core.Init"
	if self == nil || self.Base() != n {
		return errors.Errorf(op, errors.KindInvalidChild, opts.Kind,
			"%w: self must embed the initialized node", errors.ErrInvalidChild)
	}
	kind, err := opts.Registry.Lookup(opts.Kind)
	if err != nil {
		return err
	}

	n.self = self
	n.kind = kind
	n.class = opts.Class
	n.id = HashID(kind, opts.Class)
	n.callbacks = make(map[Event]Callback)

	if opts.Parent != nil {
		err = opts.Parent.Base().AddChild(self, opts.Position)
	} else {
		err = n.SetPosition(opts.Position)
	}
	if err != nil {
		return err
	}

	if err := self.Setup(); err != nil {
		if n.parent != nil {
			_ = n.parent.Base().RemoveChild(self)
		}
		return err
	}
	return nil
}

// Kind returns the element kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the element kind as a string.
func (n *Node) Name() string {
	return string(n.kind)
}

// ID returns the content-hash id.
func (n *Node) ID() string {
	return n.id
}

// Class returns the class attribute.
func (n *Node) Class() string {
	return n.class
}

// SetClass replaces the class attribute. The id keeps the value derived at
// construction.
func (n *Node) SetClass(class string) {
	n.class = class
}

// Position returns the last resolved position.
func (n *Node) Position() layout.Position {
	return n.position
}

// Parent returns the parent element, or nil when detached.
func (n *Node) Parent() Element {
	return n.parent
}

// Children returns a copy of the children in order.
func (n *Node) Children() []Element {
	return slices.Clone(n.children)
}

// Tree returns the element mapped to its direct children.
func (n *Node) Tree() Tree {
	return Tree{Element: n.self, Children: n.Children()}
}

// label names the node in errors, e.g. "Button#1f3a9".
func (n *Node) label() string {
	if n == nil || n.kind == "" {
		return "<uninitialized>"
	}
	return string(n.kind) + "#" + n.id
}

// AddChild attaches child at pos and appends it to the children. A child
// attached elsewhere is moved. Normalized positions are validated before
// anything is mutated, and make n the positioning anchor.
func (n *Node) AddChild(child Element, pos layout.Position) error {
	const op = "core.AddChild"
	if n.self == nil {
		return errors.Errorf(op, errors.KindInvalidChild, n.label(),
			"%w: parent has not been initialized", errors.ErrInvalidChild)
	}
	if child == nil || child.Base().self == nil {
		return errors.Errorf(op, errors.KindInvalidChild, n.label(),
			"%w: child has not been initialized", errors.ErrInvalidChild)
	}
	c := child.Base()
	for p := n.self; p != nil; p = p.Base().parent {
		if p.Base() == c {
			return errors.Errorf(op, errors.KindInvalidChild, c.label(),
				"%w: cannot attach an element to itself or its descendant %s", errors.ErrInvalidChild, n.label())
		}
	}
	if err := pos.Validate(); err != nil {
		return errors.Errorf(op, errors.KindInvalidCoordinate, c.label(),
			"%w: got %s", errors.ErrInvalidCoordinate, pos)
	}

	if c.parent != nil {
		c.parent.Base().detach(c)
	}
	c.parent = n.self
	if err := c.SetPosition(pos); err != nil {
		c.parent = nil
		return err
	}
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child. The child keeps its style and position.
func (n *Node) RemoveChild(child Element) error {
	if child == nil || !n.detach(child.Base()) {
		name := "<nil>"
		if child != nil {
			name = child.Base().label()
		}
		return errors.Errorf("core.RemoveChild", errors.KindNotChild, n.label(),
			"%w: %s", errors.ErrElementNotChild, name)
	}
	return nil
}

func (n *Node) detach(c *Node) bool {
	i := slices.IndexFunc(n.children, func(e Element) bool { return e.Base() == c })
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	c.parent = nil
	return true
}

// SetPosition resolves pos and overwrites the position, left and bottom
// declarations. A normalized pos makes the parent "position: relative".
func (n *Node) SetPosition(pos layout.Position) error {
	res, err := layout.Resolve(pos)
	if err != nil {
		return errors.Errorf("core.SetPosition", errors.KindInvalidCoordinate, n.label(),
			"%w: got %s", errors.ErrInvalidCoordinate, pos)
	}
	if res.AnchorParent && n.parent != nil {
		n.parent.Base().AddStyle(layout.ParentDecl)
	}
	n.style.Add(res.Decls()...)
	n.position = pos
	return nil
}

// AddStyle merges decls into the style, last writer wins.
func (n *Node) AddStyle(decls ...style.Decl) {
	n.style.Add(decls...)
}

// AddStyleString parses s in the serialized form and merges it. Nothing is
// applied if s is malformed.
func (n *Node) AddStyleString(s string) error {
	d, err := style.Parse(s)
	if err != nil {
		return err
	}
	n.style.Merge(d)
	return nil
}

// Style returns a copy of the declarations.
func (n *Node) Style() *style.Declarations {
	return n.style.Clone()
}

// StyleString returns the serialized style.
func (n *Node) StyleString() string {
	return n.style.String()
}

// AddCallback sets the callback for e, replacing any previous one. A nil fn
// clears it.
func (n *Node) AddCallback(e Event, fn Callback) error {
	if !e.Valid() {
		return invalidEvent("core.AddCallback", n.label(), e)
	}
	if n.callbacks == nil {
		n.callbacks = make(map[Event]Callback)
	}
	if fn == nil {
		delete(n.callbacks, e)
		return nil
	}
	n.callbacks[e] = fn
	return nil
}

// Callback returns the callback for e, or Noop when none is set.
func (n *Node) Callback(e Event) Callback {
	if fn, ok := n.callbacks[e]; ok {
		return fn
	}
	return Noop
}

// HasCallback reports whether a callback is set for e.
func (n *Node) HasCallback(e Event) bool {
	_, ok := n.callbacks[e]
	return ok
}

// Callbacks iterates the set callbacks in event order.
func (n *Node) Callbacks() iter.Seq2[Event, Callback] {
	return func(yield func(Event, Callback) bool) {
		for _, e := range events {
			fn, ok := n.callbacks[e]
			if !ok {
				continue
			}
			if !yield(e, fn) {
				return
			}
		}
	}
}

// SetAttr sets an extra rendered attribute such as "src" or "alt".
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// Attr returns an extra rendered attribute.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Attributes returns the rendered attribute set: id, class, the serialized
// style, the position tuple and any extra attributes.
func (n *Node) Attributes() map[string]string {
	out := maps.Clone(n.attrs)
	if out == nil {
		out = make(map[string]string, 4)
	}
	out["id"] = n.id
	out["class"] = n.class
	out["style"] = n.style.String()
	out["position"] = n.position.String()
	return out
}

// String returns the indented tree rooted at the element.
func (n *Node) String() string {
	if n.self == nil {
		return ""
	}
	return FormatTree(n.self)
}
