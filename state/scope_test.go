package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duiengine/dui/scope"
	"github.com/duiengine/dui/variable"
)

func TestStateScopePrecedence(t *testing.T) {
	inner := scope.New(map[string]interface{}{"count": "outer", "other": "x"}, nil)
	ctx := NewContext("cart", "cart", map[string]interface{}{"count": 5}, nil)
	s := NewScope(ctx, inner)

	// the reserved aggregate key answers the full local map
	value, found := s.GetValue("state")
	assert.True(t, found)
	assert.Equal(t, map[string]interface{}{"count": 5}, value)

	// the namespace name answers the same
	value, found = s.GetValue("cart")
	assert.True(t, found)
	assert.Equal(t, map[string]interface{}{"count": 5}, value)

	// a state field shadows the identically-named outer variable
	value, found = s.GetValue("count")
	assert.True(t, found)
	assert.Equal(t, 5, value)

	// everything else falls through
	value, found = s.GetValue("other")
	assert.True(t, found)
	assert.Equal(t, "x", value)

	_, found = s.GetValue("missing")
	assert.False(t, found)
}

func TestStateScopeExtension(t *testing.T) {
	ctx := NewContext("page", "page", map[string]interface{}{"count": 1}, nil)
	s := NewScope(ctx, nil)

	derived := s.CopyAndExtend(map[string]interface{}{"index": 0})
	value, found := derived.GetValue("index")
	assert.True(t, found)
	assert.Equal(t, 0, value)

	// falls back through to the state scope
	value, found = derived.GetValue("count")
	assert.True(t, found)
	assert.Equal(t, 1, value)
}

func TestAppScopePrecedence(t *testing.T) {
	app := NewAppState("proj1", nil)
	assert.Nil(t, app.Init([]Descriptor{
		{Key: "counter", Type: variable.TypeNumber, Default: float64(2), StreamName: "counterStream"},
	}))

	inner := scope.New(map[string]interface{}{"counter": "shadowed"}, nil)
	s := NewAppScope(app, inner)

	// the reserved key answers all values plus their stream handles
	value, found := s.GetValue("appState")
	assert.True(t, found)
	all := value.(map[string]interface{})
	assert.Equal(t, float64(2), all["counter"])
	assert.IsType(t, &Signal{}, all["counterStream"])

	// an exact key match answers the value, shadowing the inner variable
	value, found = s.GetValue("counter")
	assert.True(t, found)
	assert.Equal(t, float64(2), value)

	// a stream-name match answers the stream handle, not the value
	value, found = s.GetValue("counterStream")
	assert.True(t, found)
	assert.IsType(t, &Signal{}, value)

	_, found = s.GetValue("missing")
	assert.False(t, found)
}
