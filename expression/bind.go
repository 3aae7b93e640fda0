package expression

import (
	"reflect"

	"github.com/duiengine/dui/scope"
)

// Bind recursively evaluates every expression-shaped leaf of v against the
// scope, rebuilding maps and slices so the input structure is preserved and
// never mutated. Leaves that are already literals pass through untouched.
// Action payloads and prop trees mix literals and expressions arbitrarily
// deep, so this is the workhorse behind DeepEvaluate.
func Bind(v interface{}, ev Evaluator, ctx scope.Context) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	value := reflect.Indirect(reflect.ValueOf(v))
	if value.Kind() == reflect.Interface {
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]interface{}, value.Len())
		for i := 0; i < value.Len(); i++ {
			item, err := Bind(value.Index(i).Interface(), ev, ctx)
			if err != nil {
				return nil, err
			}
			res[i] = item
		}
		return res, nil

	case reflect.Map:
		res := make(map[string]interface{}, value.Len())
		for _, key := range value.MapKeys() {
			item, err := Bind(value.MapIndex(key).Interface(), ev, ctx)
			if err != nil {
				return nil, err
			}
			res[key.String()] = item
		}
		return res, nil

	case reflect.String:
		return Eval(value.String(), ev, ctx)

	default:
		return v, nil
	}
}
