package variable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cases := []struct {
		typ  DataType
		want interface{}
	}{
		{TypeString, ""},
		{TypeNumber, float64(0)},
		{TypeBoolean, false},
		{TypeJSONArray, []interface{}{}},
		{TypeJSON, map[string]interface{}{}},
		{TypeScrollController, nil},
		{TypeTimerController, nil},
		{TypeStreamController, nil},
		{TypeAsyncController, nil},
		{TypeTextEditingController, nil},
		{TypePageController, nil},
		{TypeAPICancelToken, nil},
		{TypeAction, nil},
		{TypeFile, nil},
		{TypeStoryController, nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Create(Variable{Name: "v", Type: c.typ}), "type %s", c.typ)
	}
}

func TestCreateWithExplicitDefault(t *testing.T) {
	v := Variable{Name: "count", Type: TypeNumber, DefaultValue: float64(7)}
	assert.Equal(t, float64(7), Create(v))
}

func TestFromJson(t *testing.T) {
	v, err := FromJson("count", map[string]interface{}{"type": "number", "value": float64(3)})
	assert.Nil(t, err)
	assert.Equal(t, TypeNumber, v.Type)
	assert.Equal(t, float64(3), v.DefaultValue)

	// legacy key fallback
	v, err = FromJson("name", map[string]interface{}{"dataType": "string", "defaultValue": "x"})
	assert.Nil(t, err)
	assert.Equal(t, TypeString, v.Type)
	assert.Equal(t, "x", v.DefaultValue)

	_, err = FromJson("bad", map[string]interface{}{"type": "hologram"})
	assert.NotNil(t, err)

	_, err = FromJson("untyped", map[string]interface{}{"value": 1})
	assert.NotNil(t, err)
}
