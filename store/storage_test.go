package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duiengine/dui/store/memory"
)

func TestStringAdapter(t *testing.T) {
	adapter := NewStringAdapter(memory.New())

	_, has := adapter.GetString("missing")
	assert.False(t, has)

	assert.Nil(t, adapter.SetString("key1", "bar"))
	value, has := adapter.GetString("key1")
	assert.True(t, has)
	assert.Equal(t, "bar", value)

	assert.Nil(t, adapter.Remove("key1"))
	_, has = adapter.GetString("key1")
	assert.False(t, has)
}
