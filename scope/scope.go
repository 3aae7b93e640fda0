// Package scope provides the layered key/value lookup used for expression
// evaluation. Contexts form a singly-linked chain toward a root: a lookup
// misses locally and delegates to the ancestor, and extension creates a new
// context sharing the original chain instead of copying it.
package scope

// Context the expression-evaluation scope contract
type Context interface {

	// GetValue looks a key up in this context, delegating to the ancestor
	// chain on a local miss
	GetValue(key string) (interface{}, bool)

	// CopyAndExtend returns a new context that answers vars first and falls
	// back to the full receiver chain. The receiver is never mutated.
	CopyAndExtend(vars map[string]interface{}) Context

	// Keys lists every key reachable from this context, innermost first.
	// Shadowed ancestor keys appear once.
	Keys() []string
}

// Variables the base context: a local map with an optional ancestor
type Variables struct {
	values   map[string]interface{}
	ancestor Context
}

// New create a context over vars with an optional ancestor (nil for a root)
func New(vars map[string]interface{}, ancestor Context) *Variables {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return &Variables{values: vars, ancestor: ancestor}
}

// GetValue looks up a key locally, then in the ancestor chain
func (ctx *Variables) GetValue(key string) (interface{}, bool) {
	if value, has := ctx.values[key]; has {
		return value, true
	}
	if ctx.ancestor != nil {
		return ctx.ancestor.GetValue(key)
	}
	return nil, false
}

// CopyAndExtend returns a new context layered over the receiver
func (ctx *Variables) CopyAndExtend(vars map[string]interface{}) Context {
	return New(vars, ctx)
}

// Keys lists the reachable keys, innermost first
func (ctx *Variables) Keys() []string {
	keys := make([]string, 0, len(ctx.values))
	seen := map[string]bool{}
	for key := range ctx.values {
		keys = append(keys, key)
		seen[key] = true
	}
	if ctx.ancestor != nil {
		for _, key := range ctx.ancestor.Keys() {
			if !seen[key] {
				keys = append(keys, key)
				seen[key] = true
			}
		}
	}
	return keys
}

// Extend layers vars over any context implementation. Specialized contexts
// use this for their CopyAndExtend so extension behavior stays uniform.
func Extend(ctx Context, vars map[string]interface{}) Context {
	return New(vars, ctx)
}
