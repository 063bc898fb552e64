// Package bridge exposes an element tree and its callbacks to a frontend.
//
// [Collect] gathers the callbacks of a tree into a [Table], keyed by their
// exposed names ("{id}_{event}_callback"). A [Server] answers JSON-RPC 2.0
// requests for the table and the rendered tree, and invokes callbacks by
// name.
package bridge

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/errors"
)

// Table maps exposed names to callbacks. It is safe for concurrent use.
type Table struct {
	mu        sync.RWMutex
	callbacks map[string]core.Callback
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{callbacks: make(map[string]core.Callback)}
}

// Collect walks the tree rooted at root and registers every set callback
// under its exposed name. Elements sharing kind and class share an id; the
// callback registered last wins and the collision is logged.
func Collect(root core.Element, logger *zap.Logger) (*Table, error) {
	if root == nil {
		return nil, errors.Errorf("bridge.Collect", errors.KindBridge, "",
			"%w: nil root", errors.ErrBridge)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t := NewTable()
	for _, e := range core.Walk(root) {
		n := e.Base()
		for ev, fn := range n.Callbacks() {
			name := core.ExposedName(n.ID(), ev)
			if t.Register(name, fn) {
				logger.Warn("exposed callback registered twice",
					zap.String("name", name),
					zap.String("element", n.Name()),
					zap.String("class", n.Class()))
			}
		}
	}
	logger.Debug("collected callbacks", zap.Int("count", t.Len()))
	return t, nil
}

// Register sets the callback for name and reports whether it replaced one.
func (t *Table) Register(name string, fn core.Callback) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, replaced := t.callbacks[name]
	t.callbacks[name] = fn
	return replaced
}

// Lookup returns the callback registered under name.
func (t *Table) Lookup(name string) (core.Callback, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.callbacks[name]
	return fn, ok
}

// Names returns the registered names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.callbacks))
}

// Len returns the number of registered callbacks.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.callbacks)
}

// Invoke calls the callback registered under name. A panicking callback is
// recovered, reported to the global error handler and returned as an error.
func (t *Table) Invoke(ctx context.Context, name string, params json.RawMessage) (result any, err error) {
	const op = "bridge.Invoke"
	fn, ok := t.Lookup(name)
	if !ok {
		return nil, errors.Errorf(op, errors.KindBridge, name, "%w: no callback %q", errors.ErrBridge, name)
	}
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(errors.NewPanic(op+" "+name, r))
			result = nil
			err = errors.Errorf(op, errors.KindBridge, name, "%w: callback panicked: %v", errors.ErrBridge, r)
		}
	}()
	return fn(ctx, params)
}
