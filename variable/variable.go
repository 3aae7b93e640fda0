// Package variable defines the typed variable declarations carried by page,
// component and state definitions, and their default-value resolution.
package variable

import (
	"github.com/duiengine/dui/helper"
	"github.com/go-errors/errors"
)

// DataType the closed set of declared variable types
type DataType string

// Value types carry default-value semantics; controller types are opaque
// handles resolved by the host and always default to nil.
const (
	TypeString    DataType = "string"
	TypeNumber    DataType = "number"
	TypeBoolean   DataType = "boolean"
	TypeJSON      DataType = "json"
	TypeJSONArray DataType = "jsonArray"

	TypeScrollController      DataType = "scrollController"
	TypeTimerController       DataType = "timerController"
	TypeStreamController      DataType = "streamController"
	TypeAsyncController       DataType = "asyncController"
	TypeTextEditingController DataType = "textEditingController"
	TypePageController        DataType = "pageController"
	TypeAPICancelToken        DataType = "apiCancelToken"
	TypeAction                DataType = "action"
	TypeFile                  DataType = "file"
	TypeStoryController       DataType = "storyController"
)

var knownTypes = map[DataType]bool{
	TypeString: true, TypeNumber: true, TypeBoolean: true,
	TypeJSON: true, TypeJSONArray: true,
	TypeScrollController: true, TypeTimerController: true,
	TypeStreamController: true, TypeAsyncController: true,
	TypeTextEditingController: true, TypePageController: true,
	TypeAPICancelToken: true, TypeAction: true, TypeFile: true,
	TypeStoryController: true,
}

// Known check if the type string is a declared DataType
func Known(t DataType) bool {
	return knownTypes[t]
}

// Variable a typed variable declaration
type Variable struct {
	Name         string
	Type         DataType
	DefaultValue interface{}
}

// FromJson parse one variable declaration. The type is read through the
// ordered fallback ["type", "dataType"] and the default through
// ["value", "defaultValue"]. An unknown type string is fatal: there is no
// safe default behavior to approximate for an unrecognized declaration.
func FromJson(name string, data map[string]interface{}) (Variable, error) {
	v := Variable{Name: name}
	typ, has := helper.TryKeysString(data, "type", "dataType")
	if !has {
		return v, errors.Errorf("variable %s: missing type", name)
	}
	if !Known(DataType(typ)) {
		return v, errors.Errorf("variable %s: unknown type %s", name, typ)
	}
	v.Type = DataType(typ)
	v.DefaultValue, _ = helper.TryKeys(data, "value", "defaultValue")
	return v, nil
}

// Create resolve the variable to its initial value: the declared default if
// one was supplied, else the fixed per-type default.
func Create(v Variable) interface{} {
	if v.DefaultValue != nil {
		return v.DefaultValue
	}
	return Default(v.Type)
}

// Default the fixed type→default table
func Default(t DataType) interface{} {
	switch t {
	case TypeString:
		return ""
	case TypeNumber:
		return float64(0)
	case TypeBoolean:
		return false
	case TypeJSONArray:
		return []interface{}{}
	case TypeJSON:
		return map[string]interface{}{}
	default:
		return nil
	}
}
