package vwidget

import (
	"strings"

	"github.com/yaoapp/kun/any"

	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/helper"
)

// CommonProps the cross-cutting node decoration applied uniformly by the
// base render path: visibility gate, style wrap, alignment wrap, gesture
// wrap, margin wrap.
type CommonProps struct {
	Visibility expression.ExprOr[bool]
	Style      helper.Props
	Align      string
	OnClick    *action.Flow
}

// commonFromJson parse the containerProps block. Absent block yields nil,
// which short-circuits the whole wrapping sequence at render time.
func commonFromJson(data map[string]interface{}) (*CommonProps, error) {
	raw, has := helper.TryKeys(data, "containerProps", "commonProps")
	if !has {
		return nil, nil
	}
	block, ok := raw.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	common := &CommonProps{}
	if visibility, has := helper.TryKeys(block, "visibility"); has {
		common.Visibility = expression.FromValue[bool](visibility)
	}

	style, _ := block["style"].(map[string]interface{})
	common.Style = helper.NewProps(style)
	common.Align, _ = helper.TryKeysString(block, "align", "alignment")

	flow, err := actionFlowFromProps(block["onClick"])
	if err != nil {
		return nil, err
	}
	common.OnClick = flow
	return common, nil
}

// Margin per-side margin values resolved from any of the accepted
// representations
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// IsZero check if every side is zero. A zero margin in any representation
// skips the margin wrapper entirely.
func (m Margin) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// MarginOf read the style's margin, accepting a bare number (all sides),
// a shorthand string ("8" or "8,4,8,4", top right bottom left), or a
// per-side object {top, right, bottom, left}
func MarginOf(style helper.Props) Margin {
	raw, has := style.Get("margin")
	if !has || raw == nil {
		return Margin{}
	}

	switch value := raw.(type) {
	case map[string]interface{}:
		sides := helper.NewProps(value)
		m := Margin{}
		m.Top, _ = sides.GetFloat("top")
		m.Right, _ = sides.GetFloat("right")
		m.Bottom, _ = sides.GetFloat("bottom")
		m.Left, _ = sides.GetFloat("left")
		return m

	case string:
		parts := strings.Split(value, ",")
		values := make([]float64, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			values = append(values, numberOf(part))
		}
		switch len(values) {
		case 1:
			return Margin{Top: values[0], Right: values[0], Bottom: values[0], Left: values[0]}
		case 2:
			return Margin{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}
		case 4:
			return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}
		default:
			return Margin{}
		}

	default:
		v := any.Of(raw)
		if v.IsNumber() {
			all := v.CFloat()
			return Margin{Top: all, Right: all, Bottom: all, Left: all}
		}
		return Margin{}
	}
}

func numberOf(s string) (out float64) {
	defer func() {
		if recover() != nil {
			out = 0
		}
	}()
	return any.Of(s).CFloat()
}
