package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShadowing(t *testing.T) {
	base := New(map[string]interface{}{"a": 1}, nil)
	child := base.CopyAndExtend(map[string]interface{}{"a": 2, "b": 3})

	value, found := child.GetValue("a")
	assert.True(t, found)
	assert.Equal(t, 2, value)

	value, found = child.GetValue("b")
	assert.True(t, found)
	assert.Equal(t, 3, value)

	// the original context is never mutated
	value, found = base.GetValue("a")
	assert.True(t, found)
	assert.Equal(t, 1, value)
	_, found = base.GetValue("b")
	assert.False(t, found)
}

func TestAncestorDelegation(t *testing.T) {
	root := New(map[string]interface{}{"page": "home"}, nil)
	inner := root.CopyAndExtend(map[string]interface{}{"index": 0}).
		CopyAndExtend(map[string]interface{}{"currentItem": "x"})

	value, found := inner.GetValue("page")
	assert.True(t, found)
	assert.Equal(t, "home", value)

	_, found = inner.GetValue("missing")
	assert.False(t, found)
}

func TestKeys(t *testing.T) {
	base := New(map[string]interface{}{"a": 1, "b": 2}, nil)
	child := base.CopyAndExtend(map[string]interface{}{"a": 9, "c": 3})

	keys := child.Keys()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, keys)

	// innermost wins for the shadowed key
	value, _ := child.GetValue("a")
	assert.Equal(t, 9, value)
}
