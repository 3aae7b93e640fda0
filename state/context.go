// Package state holds the mutable side of the engine: hierarchical named
// state contexts with change notification, and the global reactive
// app-state registry.
package state

import (
	"sync"
)

// Context a named, mutable variable store. Contexts form a singly-linked
// chain toward the page/component root: reads fall through to the
// ancestor, writes stay strictly local. Keys exist only from construction;
// setting an undeclared key is a soft per-key failure.
type Context struct {
	Namespace string
	StateID   string

	mutex     sync.RWMutex
	values    map[string]interface{}
	ancestor  *Context
	listeners map[int]func()
	nextID    int
}

// NewContext create a state context over the initial values. ancestor is
// nil for a page/component root.
func NewContext(namespace string, stateID string, initial map[string]interface{}, ancestor *Context) *Context {
	values := make(map[string]interface{}, len(initial))
	for key, value := range initial {
		values[key] = value
	}
	return &Context{
		Namespace: namespace,
		StateID:   stateID,
		values:    values,
		ancestor:  ancestor,
		listeners: map[int]func(){},
	}
}

// GetValue read a key, delegating to the ancestor chain on a local miss
func (ctx *Context) GetValue(key string) (interface{}, bool) {
	ctx.mutex.RLock()
	value, has := ctx.values[key]
	ctx.mutex.RUnlock()
	if has {
		return value, true
	}
	if ctx.ancestor != nil {
		return ctx.ancestor.GetValue(key)
	}
	return nil, false
}

// HasKey check if the key exists in the local map (ancestors not consulted)
func (ctx *Context) HasKey(key string) bool {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	_, has := ctx.values[key]
	return has
}

// Values a copy of the local map
func (ctx *Context) Values() map[string]interface{} {
	ctx.mutex.RLock()
	defer ctx.mutex.RUnlock()
	values := make(map[string]interface{}, len(ctx.values))
	for key, value := range ctx.values {
		values[key] = value
	}
	return values
}

// SetValue write one local key. Returns false without writing when the key
// was not declared at construction. Fires notification on success.
func (ctx *Context) SetValue(key string, value interface{}) bool {
	results := ctx.SetValues(map[string]interface{}{key: value})
	return results[key]
}

// SetValues write a batch of local keys. Undeclared keys fail per-key
// without poisoning the rest. At most one notification fires per call, and
// only when at least one key was written.
func (ctx *Context) SetValues(values map[string]interface{}) map[string]bool {
	results := make(map[string]bool, len(values))
	changed := false

	ctx.mutex.Lock()
	for key, value := range values {
		if _, has := ctx.values[key]; !has {
			results[key] = false
			continue
		}
		ctx.values[key] = value
		results[key] = true
		changed = true
	}
	ctx.mutex.Unlock()

	if changed {
		ctx.notify()
	}
	return results
}

// OriginContext walk the ancestor chain to its root. The root is the
// page/component scope used for whole-scope rebuild operations.
func (ctx *Context) OriginContext() *Context {
	origin := ctx
	for origin.ancestor != nil {
		origin = origin.ancestor
	}
	return origin
}

// Ancestor the next outer context, nil at the root
func (ctx *Context) Ancestor() *Context {
	return ctx.ancestor
}

// AddListener register a change listener, returning a handle for removal
func (ctx *Context) AddListener(fn func()) int {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	id := ctx.nextID
	ctx.nextID++
	ctx.listeners[id] = fn
	return id
}

// RemoveListener drop one listener
func (ctx *Context) RemoveListener(id int) {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	delete(ctx.listeners, id)
}

// Close drop all listeners. Called when the owning subtree unmounts.
func (ctx *Context) Close() {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()
	ctx.listeners = map[int]func(){}
}

func (ctx *Context) notify() {
	ctx.mutex.RLock()
	fns := make([]func(), 0, len(ctx.listeners))
	for _, fn := range ctx.listeners {
		fns = append(fns, fn)
	}
	ctx.mutex.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
