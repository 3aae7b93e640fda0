package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryKeys(t *testing.T) {
	data := map[string]interface{}{"category": "state", "nodeType": "legacy"}

	value, has := TryKeys(data, "category", "nodeType")
	assert.True(t, has)
	assert.Equal(t, "state", value)

	value, has = TryKeys(data, "missing", "nodeType")
	assert.True(t, has)
	assert.Equal(t, "legacy", value)

	_, has = TryKeys(data, "missing", "alsoMissing")
	assert.False(t, has)

	// a present key with a null value still wins
	value, has = TryKeys(map[string]interface{}{"dataRef": nil, "repeatData": "x"}, "dataRef", "repeatData")
	assert.True(t, has)
	assert.Nil(t, value)

	_, has = TryKeys(nil, "category")
	assert.False(t, has)
}

func TestTryKeysString(t *testing.T) {
	data := map[string]interface{}{"type": 42, "dataType": "number"}

	// non-string values are skipped, not coerced
	value, has := TryKeysString(data, "type", "dataType")
	assert.True(t, has)
	assert.Equal(t, "number", value)

	_, has = TryKeysString(data, "type")
	assert.False(t, has)
}

func TestProps(t *testing.T) {
	props := NewProps(map[string]interface{}{
		"text": "hello",
		"style": map[string]interface{}{
			"padding": map[string]interface{}{"top": float64(8)},
			"visible": true,
		},
		"items": []interface{}{"a", "b"},
	})

	text, ok := props.GetString("text")
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	top, ok := props.GetFloat("style.padding.top")
	assert.True(t, ok)
	assert.Equal(t, float64(8), top)

	visible, ok := props.GetBool("style.visible")
	assert.True(t, ok)
	assert.True(t, visible)

	items, ok := props.GetSlice("items")
	assert.True(t, ok)
	assert.Len(t, items, 2)

	// missing segment anywhere along the path is a clean miss
	_, ok = props.Get("style.border.width")
	assert.False(t, ok)

	// non-map intermediate is a miss, not a panic
	_, ok = props.Get("text.inner")
	assert.False(t, ok)

	empty := NewProps(nil)
	assert.True(t, empty.IsEmpty())
	_, ok = empty.Get("anything")
	assert.False(t, ok)
}
