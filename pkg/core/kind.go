package core

import (
	"maps"
	"slices"
	"sync"

	"github.com/electripy/electripy/pkg/errors"
)

// Kind names an element kind, e.g. "Button".
type Kind string

// Built-in element kinds.
const (
	KindBody      Kind = "Body"
	KindButton    Kind = "Button"
	KindParagraph Kind = "Paragraph"
	KindHeading   Kind = "Heading"
	KindImage     Kind = "Image"
)

var builtinKinds = []Kind{KindBody, KindButton, KindParagraph, KindHeading, KindImage}

// Registry is the allow-list of element kinds that may be constructed.
// It is passed explicitly through [Options]. A nil *Registry and the zero
// Registry both hold the built-in kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[Kind]struct{} // nil until first Register
}

// NewRegistry returns a registry holding exactly kinds.
func NewRegistry(kinds ...Kind) *Registry {
	r := &Registry{kinds: make(map[Kind]struct{}, len(kinds))}
	r.Register(kinds...)
	return r
}

// DefaultRegistry returns a new registry holding the built-in kinds.
// Callers may extend it with Register without affecting other registries.
func DefaultRegistry() *Registry {
	return NewRegistry(builtinKinds...)
}

// Register adds kinds to the registry. On the zero Registry the built-in
// kinds stay registered.
func (r *Registry) Register(kinds ...Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.kinds == nil {
		r.kinds = make(map[Kind]struct{}, len(builtinKinds)+len(kinds))
		for _, k := range builtinKinds {
			r.kinds[k] = struct{}{}
		}
	}
	for _, k := range kinds {
		r.kinds[k] = struct{}{}
	}
}

// Lookup validates name against the registry.
func (r *Registry) Lookup(name string) (Kind, error) {
	k := Kind(name)
	if slices.Contains(r.Kinds(), k) {
		return k, nil
	}
	return "", errors.Errorf("core.Lookup", errors.KindUnknownElement, name,
		"%w: %q has not been registered", errors.ErrUnknownElementKind, name)
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	if r == nil {
		return slices.Sorted(slices.Values(builtinKinds))
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.kinds == nil {
		return slices.Sorted(slices.Values(builtinKinds))
	}
	return slices.Sorted(maps.Keys(r.kinds))
}
