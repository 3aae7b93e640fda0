package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetValuesIsolation(t *testing.T) {
	ctx := NewContext("page", "page", map[string]interface{}{"count": 0}, nil)

	notifications := 0
	ctx.AddListener(func() { notifications++ })

	results := ctx.SetValues(map[string]interface{}{"count": 5, "missing": 1})
	assert.Equal(t, map[string]bool{"count": true, "missing": false}, results)

	value, found := ctx.GetValue("count")
	assert.True(t, found)
	assert.Equal(t, 5, value)

	// the bad key neither exists nor was created
	assert.False(t, ctx.HasKey("missing"))
	_, found = ctx.GetValue("missing")
	assert.False(t, found)

	// exactly one notification for the whole batched call
	assert.Equal(t, 1, notifications)
}

func TestSetValuesNoChangeNoNotify(t *testing.T) {
	ctx := NewContext("page", "page", map[string]interface{}{"count": 0}, nil)

	notifications := 0
	ctx.AddListener(func() { notifications++ })

	results := ctx.SetValues(map[string]interface{}{"missing": 1})
	assert.Equal(t, map[string]bool{"missing": false}, results)
	assert.Equal(t, 0, notifications)
}

func TestAncestorReadThrough(t *testing.T) {
	root := NewContext("page", "page", map[string]interface{}{"title": "home"}, nil)
	child := NewContext("card", "card", map[string]interface{}{"expanded": false}, root)

	// reads fall through to the ancestor
	value, found := child.GetValue("title")
	assert.True(t, found)
	assert.Equal(t, "home", value)

	// writes stay strictly local: the ancestor key is not writable here
	assert.False(t, child.SetValue("title", "other"))
	value, _ = root.GetValue("title")
	assert.Equal(t, "home", value)

	assert.True(t, child.SetValue("expanded", true))

	// HasKey is local-only
	assert.False(t, child.HasKey("title"))
	assert.True(t, child.HasKey("expanded"))
}

func TestOriginContext(t *testing.T) {
	root := NewContext("page", "page", nil, nil)
	mid := NewContext("section", "section", nil, root)
	leaf := NewContext("item", "item", nil, mid)

	assert.Same(t, root, leaf.OriginContext())
	assert.Same(t, root, root.OriginContext())
}

func TestListenerRemoval(t *testing.T) {
	ctx := NewContext("page", "page", map[string]interface{}{"n": 0}, nil)

	calls := 0
	id := ctx.AddListener(func() { calls++ })
	ctx.SetValue("n", 1)
	assert.Equal(t, 1, calls)

	ctx.RemoveListener(id)
	ctx.SetValue("n", 2)
	assert.Equal(t, 1, calls)

	ctx.AddListener(func() { calls++ })
	ctx.Close()
	ctx.SetValue("n", 3)
	assert.Equal(t, 1, calls)
}
