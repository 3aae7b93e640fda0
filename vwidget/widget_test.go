package vwidget

import (
	"testing"

	"github.com/go-errors/errors"
	"github.com/stretchr/testify/assert"

	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/scope"
)

func testPayload(vars map[string]interface{}) RenderPayload {
	return RenderPayload{
		Scope:     scope.New(vars, nil),
		Evaluator: expression.NewExprLang(),
	}
}

func innerWidget(kind string) func(RenderPayload) (*RenderNode, error) {
	return func(payload RenderPayload) (*RenderNode, error) {
		return &RenderNode{Kind: kind, Type: "Text", Hierarchy: payload.Hierarchy}, nil
	}
}

func TestBaseNilCommonRendersInnerDirectly(t *testing.T) {
	base := &Base{Inner: innerWidget(KindWidget)}
	node, err := base.Render(testPayload(nil))
	assert.Nil(t, err)
	assert.Equal(t, KindWidget, node.Kind)
}

func TestBaseVisibilityGate(t *testing.T) {
	base := &Base{
		Common: &CommonProps{Visibility: expression.Expr[bool]("${show}")},
		Inner:  innerWidget(KindWidget),
	}

	node, err := base.Render(testPayload(map[string]interface{}{"show": false}))
	assert.Nil(t, err)
	assert.Equal(t, KindEmpty, node.Kind)

	node, err = base.Render(testPayload(map[string]interface{}{"show": true}))
	assert.Nil(t, err)
	assert.Equal(t, KindWidget, node.Kind)

	// absent visibility defaults to visible
	base.Common = &CommonProps{}
	node, err = base.Render(testPayload(nil))
	assert.Nil(t, err)
	assert.Equal(t, KindWidget, node.Kind)
}

func TestBaseWrapOrderMarginLast(t *testing.T) {
	flow, err := action.FlowFromJson(map[string]interface{}{
		"steps": []interface{}{
			map[string]interface{}{"type": "Action.showToast"},
		},
	})
	assert.Nil(t, err)

	base := &Base{
		Common: &CommonProps{
			Style:   propsOf(map[string]interface{}{"color": "red", "margin": "8"}),
			Align:   "center",
			OnClick: flow,
		},
		Inner: innerWidget(KindWidget),
	}

	node, err := base.Render(testPayload(nil))
	assert.Nil(t, err)

	// margin outermost, then gesture, then align, then style, then inner
	assert.Equal(t, KindMargin, node.Kind)
	assert.Equal(t, float64(8), node.Props["top"])

	gesture := node.Children[0]
	assert.Equal(t, KindGesture, gesture.Kind)
	assert.NotNil(t, gesture.OnTap)
	assert.Equal(t, true, gesture.Props["inkwell"])

	align := gesture.Children[0]
	assert.Equal(t, KindAlign, align.Kind)
	assert.Equal(t, "center", align.Props["align"])

	style := align.Children[0]
	assert.Equal(t, KindStyle, style.Kind)
	assert.Equal(t, "red", style.Props["color"])
	_, hasMargin := style.Props["margin"]
	assert.False(t, hasMargin)

	assert.Equal(t, KindWidget, style.Children[0].Kind)
}

func TestBaseMarginOnlyStyle(t *testing.T) {
	base := &Base{
		Common: &CommonProps{
			Style: propsOf(map[string]interface{}{"margin": "4"}),
		},
		Inner: innerWidget(KindWidget),
	}

	node, err := base.Render(testPayload(nil))
	assert.Nil(t, err)

	// margin is the only style key: no style wrapper remains
	assert.Equal(t, KindMargin, node.Kind)
	assert.Equal(t, KindWidget, node.Children[0].Kind)
}

func TestBaseZeroMarginSkipsWrapper(t *testing.T) {
	for _, margin := range []interface{}{
		"0",
		float64(0),
		map[string]interface{}{"top": float64(0), "right": float64(0), "bottom": float64(0), "left": float64(0)},
	} {
		base := &Base{
			Common: &CommonProps{
				Style: propsOf(map[string]interface{}{"color": "red", "margin": margin}),
			},
			Inner: innerWidget(KindWidget),
		}
		node, err := base.Render(testPayload(nil))
		assert.Nil(t, err)
		assert.Equal(t, KindStyle, node.Kind)
	}
}

func TestBaseGestureSkippedForEmptyFlow(t *testing.T) {
	base := &Base{
		Common: &CommonProps{OnClick: &action.Flow{Inkwell: true}},
		Inner:  innerWidget(KindWidget),
	}
	node, err := base.Render(testPayload(nil))
	assert.Nil(t, err)
	assert.Equal(t, KindWidget, node.Kind)
}

func TestBaseErrorBoundary(t *testing.T) {
	failing := &Base{
		RefName: "broken",
		Inner: func(RenderPayload) (*RenderNode, error) {
			return nil, errors.Errorf("render failed")
		},
	}

	// non-debug: the error propagates
	_, err := failing.Render(testPayload(nil))
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "render failed")

	// debug: an inline error node tagged with the failing node
	payload := testPayload(nil)
	payload.DebugMode = true
	node, err := failing.Render(payload)
	assert.Nil(t, err)
	assert.Equal(t, KindError, node.Kind)
	assert.Equal(t, "broken", node.RefName)
	assert.NotNil(t, node.Err)
}

func TestBasePanicIsCaught(t *testing.T) {
	panicking := &Base{
		RefName: "boom",
		Inner: func(RenderPayload) (*RenderNode, error) {
			panic("widget blew up")
		},
	}

	_, err := panicking.Render(testPayload(nil))
	assert.NotNil(t, err)

	payload := testPayload(nil)
	payload.DebugMode = true
	node, err := panicking.Render(payload)
	assert.Nil(t, err)
	assert.Equal(t, KindError, node.Kind)
}

func TestHierarchyExtension(t *testing.T) {
	var seen []string
	base := &Base{
		RefName: "child",
		Inner: func(payload RenderPayload) (*RenderNode, error) {
			seen = payload.Hierarchy
			return Empty(), nil
		},
	}

	payload := testPayload(nil)
	payload.Hierarchy = []string{"page", "column"}
	_, err := base.Render(payload)
	assert.Nil(t, err)
	assert.Equal(t, []string{"page", "column", "child"}, seen)

	// deriving never mutates the original payload
	assert.Equal(t, []string{"page", "column"}, payload.Hierarchy)

	// unnamed nodes add nothing to the path
	anonymous := &Base{Inner: func(payload RenderPayload) (*RenderNode, error) {
		seen = payload.Hierarchy
		return Empty(), nil
	}}
	_, err = anonymous.Render(payload)
	assert.Nil(t, err)
	assert.Equal(t, []string{"page", "column"}, seen)
}
