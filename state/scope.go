package state

import (
	"github.com/duiengine/dui/scope"
)

// Reserved scope keys. Expressions written against ${state.count} or
// ${appState.counter} must resolve identically at any nesting depth.
const (
	KeyState    = "state"
	KeyAppState = "appState"
)

// Scope binds a state context into the expression scope chain. Lookup
// precedence, in order: the reserved "state" key and the namespace name
// (both answer the full local map), then local state fields, then the
// inner context. The order is load-bearing: the innermost state must
// shadow identically-named variables from enclosing scopes.
type Scope struct {
	state *Context
	inner scope.Context
}

// NewScope bind state over an inner context (nil for a root scope)
func NewScope(state *Context, inner scope.Context) *Scope {
	return &Scope{state: state, inner: inner}
}

// State the bound context
func (s *Scope) State() *Context {
	return s.state
}

// GetValue resolve a key per the state-scope precedence
func (s *Scope) GetValue(key string) (interface{}, bool) {
	if key == KeyState || (s.state.Namespace != "" && key == s.state.Namespace) {
		return s.state.Values(), true
	}
	if s.state.HasKey(key) {
		return s.state.GetValue(key)
	}
	if s.inner != nil {
		return s.inner.GetValue(key)
	}
	return nil, false
}

// CopyAndExtend layer vars over this scope
func (s *Scope) CopyAndExtend(vars map[string]interface{}) scope.Context {
	return scope.Extend(s, vars)
}

// Keys the reachable keys, state first
func (s *Scope) Keys() []string {
	keys := []string{KeyState}
	if s.state.Namespace != "" {
		keys = append(keys, s.state.Namespace)
	}
	seen := map[string]bool{KeyState: true, s.state.Namespace: true}
	for key := range s.state.Values() {
		if !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}
	if s.inner != nil {
		for _, key := range s.inner.Keys() {
			if !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	return keys
}

var _ scope.Context = (*Scope)(nil)

// AppScope binds the global reactive registry into the expression scope.
// Precedence: the reserved "appState" key (all current values plus each
// value's change-stream handle under its own stream name), then an exact
// value-key match (the value), then a stream-name match (the stream
// handle, not the value), then the inner context.
type AppScope struct {
	app   *AppState
	inner scope.Context
}

// NewAppScope bind an app-state registry over an inner context
func NewAppScope(app *AppState, inner scope.Context) *AppScope {
	return &AppScope{app: app, inner: inner}
}

// GetValue resolve a key per the app-scope precedence
func (s *AppScope) GetValue(key string) (interface{}, bool) {
	values := s.app.All()

	if key == KeyAppState {
		all := make(map[string]interface{}, len(values)*2)
		for name, rv := range values {
			all[name] = rv.Value()
			all[rv.StreamName] = rv.Stream()
		}
		return all, true
	}

	if rv, has := values[key]; has {
		return rv.Value(), true
	}
	for _, rv := range values {
		if rv.StreamName == key {
			return rv.Stream(), true
		}
	}

	if s.inner != nil {
		return s.inner.GetValue(key)
	}
	return nil, false
}

// CopyAndExtend layer vars over this scope
func (s *AppScope) CopyAndExtend(vars map[string]interface{}) scope.Context {
	return scope.Extend(s, vars)
}

// Keys the reachable keys, appState first
func (s *AppScope) Keys() []string {
	keys := []string{KeyAppState}
	seen := map[string]bool{KeyAppState: true}
	for name, rv := range s.app.All() {
		if !seen[name] {
			keys = append(keys, name)
			seen[name] = true
		}
		if !seen[rv.StreamName] {
			keys = append(keys, rv.StreamName)
			seen[rv.StreamName] = true
		}
	}
	if s.inner != nil {
		for _, key := range s.inner.Keys() {
			if !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	return keys
}

var _ scope.Context = (*AppScope)(nil)
