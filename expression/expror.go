package expression

import (
	jsoniter "github.com/json-iterator/go"
	kunany "github.com/yaoapp/kun/any"

	"github.com/duiengine/dui/scope"
)

// ExprOr a value that is either a literal T or a deferred expression
// string, resolved lazily against a scope. The zero value is "absent":
// Evaluate yields T's zero value and IsZero reports true.
type ExprOr[T any] struct {
	source  string
	literal interface{}
	isExpr  bool
	present bool
}

// Literal wrap a literal value
func Literal[T any](value T) ExprOr[T] {
	return ExprOr[T]{literal: value, present: true}
}

// Expr wrap an expression string (with or without the ${...} wrapper)
func Expr[T any](source string) ExprOr[T] {
	if !IsExpression(source) {
		source = "${" + source + "}"
	}
	return ExprOr[T]{source: source, isExpr: true, present: true}
}

// FromValue wrap a raw JSON value: a string containing "${...}" becomes an
// expression, anything else is kept as a literal
func FromValue[T any](raw interface{}) ExprOr[T] {
	if s, ok := raw.(string); ok && IsExpression(s) {
		return ExprOr[T]{source: s, isExpr: true, present: true}
	}
	return ExprOr[T]{literal: raw, present: true}
}

// IsZero check if the value was never set
func (e ExprOr[T]) IsZero() bool {
	return !e.present
}

// IsExpression check if the value is the deferred-expression form
func (e ExprOr[T]) IsExpression() bool {
	return e.isExpr
}

// Evaluate resolve to a T. Literals coerce directly; expressions are
// evaluated against ctx first. A nil result yields T's zero value.
func (e ExprOr[T]) Evaluate(ev Evaluator, ctx scope.Context) (T, error) {
	var zero T
	if !e.present {
		return zero, nil
	}

	raw := e.literal
	if e.isExpr {
		value, err := Eval(e.source, ev, ctx)
		if err != nil {
			return zero, err
		}
		raw = value
	}

	value, ok := coerce[T](raw)
	if !ok {
		return zero, nil
	}
	return value, nil
}

// EvaluateOr resolve to a T, falling back to def when absent or when the
// result cannot represent a T. Evaluation errors still surface.
func (e ExprOr[T]) EvaluateOr(ev Evaluator, ctx scope.Context, def T) (T, error) {
	if !e.present {
		return def, nil
	}

	raw := e.literal
	if e.isExpr {
		value, err := Eval(e.source, ev, ctx)
		if err != nil {
			return def, err
		}
		raw = value
	}

	value, ok := coerce[T](raw)
	if !ok {
		return def, nil
	}
	return value, nil
}

// DeepEvaluate recursively resolve the wrapped value: nested maps and
// arrays are walked and every expression-shaped leaf is evaluated while
// the structure is preserved
func (e ExprOr[T]) DeepEvaluate(ev Evaluator, ctx scope.Context) (interface{}, error) {
	if !e.present {
		return nil, nil
	}
	if e.isExpr {
		return Eval(e.source, ev, ctx)
	}
	return Bind(e.literal, ev, ctx)
}

// MarshalJSON round-trips the wrapped form: expressions serialize as their
// "${...}" string, literals as themselves
func (e ExprOr[T]) MarshalJSON() ([]byte, error) {
	if e.isExpr {
		return jsoniter.Marshal(e.source)
	}
	return jsoniter.Marshal(e.literal)
}

// UnmarshalJSON parse either form
func (e *ExprOr[T]) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = FromValue[T](raw)
	return nil
}

// coerce cast a raw evaluated value to T, using the permissive converters
// for the scalar types expressions produce. Conversion failures report
// false instead of panicking.
func coerce[T any](raw interface{}) (out T, ok bool) {
	var zero T
	if raw == nil {
		return zero, false
	}
	if value, is := raw.(T); is {
		return value, true
	}

	defer func() {
		if recover() != nil {
			out = zero
			ok = false
		}
	}()

	var converted interface{}
	switch interface{}(zero).(type) {
	case bool:
		converted = kunany.Of(raw).CBool()
	case string:
		converted = kunany.Of(raw).CString()
	case float64:
		v := kunany.Of(raw)
		if !v.IsNumber() {
			return zero, false
		}
		converted = v.CFloat()
	case int:
		v := kunany.Of(raw)
		if !v.IsNumber() {
			return zero, false
		}
		converted = v.CInt()
	default:
		return zero, false
	}

	value, is := converted.(T)
	return value, is
}
