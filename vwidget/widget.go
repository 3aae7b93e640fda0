package vwidget

import (
	"github.com/yaoapp/kun/exception"

	"github.com/duiengine/dui/helper"
)

// VirtualWidget a runtime node capable of producing render output. Widgets
// are stateless by default and rebuilt per render pass from their Data.
type VirtualWidget interface {
	Render(payload RenderPayload) (*RenderNode, error)
}

// Base the leaf-widget render path. Every leaf-style widget wraps its
// inner render in the fixed sequence: visibility gate, inner render, style
// wrap, alignment wrap, gesture wrap, margin wrap. Margin is strictly
// last. A nil Common skips the whole sequence and renders inner directly.
type Base struct {
	Common  *CommonProps
	RefName string
	Inner   func(payload RenderPayload) (*RenderNode, error)
}

// Render produce output for this node. The hierarchy path is extended
// before anything else so an error is always attributable to its exact
// node path. Errors (including panics out of the inner render) are caught
// here: debug mode renders an inline error node tagged with the failing
// node's refName, otherwise the error propagates to the nearest ancestor
// boundary or the root.
func (w *Base) Render(payload RenderPayload) (*RenderNode, error) {
	payload = payload.WithExtendedHierarchy(w.RefName)

	node, err := w.renderGuarded(payload)
	if err == nil {
		return node, nil
	}

	if payload.DebugMode {
		helper.DumpError("render error at "+hierarchyPath(payload.Hierarchy), err)
		return &RenderNode{
			Kind:      KindError,
			RefName:   w.RefName,
			Hierarchy: payload.Hierarchy,
			Err:       err,
		}, nil
	}
	return nil, err
}

func (w *Base) renderGuarded(payload RenderPayload) (node *RenderNode, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			node = nil
			err = exception.Catch(recovered)
		}
	}()
	return w.render(payload)
}

func (w *Base) render(payload RenderPayload) (*RenderNode, error) {
	if w.Common == nil {
		return w.Inner(payload)
	}

	visible, err := w.Common.Visibility.EvaluateOr(payload.Evaluator, payload.Scope, true)
	if err != nil {
		return nil, err
	}
	if !visible {
		return Empty(), nil
	}

	node, err := w.Inner(payload)
	if err != nil {
		return nil, err
	}

	if !w.Common.Style.IsEmpty() {
		// margin renders as its own wrapper below, so it never travels
		// with the style props
		styleProps := map[string]interface{}{}
		for key, value := range w.Common.Style.Map() {
			if key == "margin" {
				continue
			}
			styleProps[key] = value
		}
		if len(styleProps) > 0 {
			node = &RenderNode{Kind: KindStyle, Props: styleProps, Children: []*RenderNode{node}}
		}
	}

	if w.Common.Align != "" {
		node = &RenderNode{Kind: KindAlign, Props: map[string]interface{}{"align": w.Common.Align}, Children: []*RenderNode{node}}
	}

	if w.Common.OnClick != nil && len(w.Common.OnClick.Actions) > 0 {
		flow := w.Common.OnClick
		tapPayload := payload
		node = &RenderNode{
			Kind:     KindGesture,
			Props:    map[string]interface{}{"inkwell": flow.Inkwell},
			Children: []*RenderNode{node},
			OnTap: func() error {
				_, err := tapPayload.ExecuteAction(flow, map[string]interface{}{"triggerType": "onTap"})
				return err
			},
		}
	}

	if margin := MarginOf(w.Common.Style); !margin.IsZero() {
		node = &RenderNode{
			Kind: KindMargin,
			Props: map[string]interface{}{
				"top": margin.Top, "right": margin.Right,
				"bottom": margin.Bottom, "left": margin.Left,
			},
			Children: []*RenderNode{node},
		}
	}
	return node, nil
}

func hierarchyPath(hierarchy []string) string {
	path := ""
	for i, name := range hierarchy {
		if i > 0 {
			path += "/"
		}
		path += name
	}
	return path
}
