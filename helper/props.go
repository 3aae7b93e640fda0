package helper

import (
	"github.com/yaoapp/kun/any"
	"github.com/yaoapp/kun/maps"
)

// Props a JSON-like property bag with dotted-path read access.
// Paths such as "style.padding.top" walk nested objects; any missing
// segment yields the zero result, never a panic.
type Props struct {
	data maps.MapStrAny
	dot  maps.MapStrAny
}

// NewProps create a props bag from a raw JSON object. A nil map yields an
// empty bag.
func NewProps(data map[string]interface{}) Props {
	if data == nil {
		data = map[string]interface{}{}
	}
	m := maps.Of(data)
	return Props{data: m, dot: m.Dot()}
}

// IsEmpty check if the bag has no keys
func (props Props) IsEmpty() bool {
	return len(props.data) == 0
}

// Map the underlying raw object
func (props Props) Map() map[string]interface{} {
	return props.data
}

// Get read a value by dotted path
func (props Props) Get(path string) (interface{}, bool) {
	if !props.dot.Has(path) {
		return nil, false
	}
	return props.dot.Get(path), true
}

// GetString read a string by dotted path; non-string values are not coerced
func (props Props) GetString(path string) (string, bool) {
	value, has := props.Get(path)
	if !has || value == nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// GetBool read a bool by dotted path
func (props Props) GetBool(path string) (bool, bool) {
	value, has := props.Get(path)
	if !has || value == nil {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// GetFloat read a number by dotted path, coercing any numeric
// representation (JSON numbers arrive as float64, YAML as int)
func (props Props) GetFloat(path string) (float64, bool) {
	value, has := props.Get(path)
	if !has || value == nil {
		return 0, false
	}
	v := any.Of(value)
	if !v.IsNumber() {
		return 0, false
	}
	return v.CFloat(), true
}

// GetInt read an integer by dotted path
func (props Props) GetInt(path string) (int, bool) {
	f, ok := props.GetFloat(path)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// GetMap read a nested object by dotted path
func (props Props) GetMap(path string) (map[string]interface{}, bool) {
	value, has := props.Get(path)
	if !has || value == nil {
		return nil, false
	}
	m, ok := value.(map[string]interface{})
	return m, ok
}

// GetSlice read an array by dotted path
func (props Props) GetSlice(path string) ([]interface{}, bool) {
	value, has := props.Get(path)
	if !has || value == nil {
		return nil, false
	}
	s, ok := value.([]interface{})
	return s, ok
}
