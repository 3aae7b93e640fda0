package vwidget

import (
	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/scope"
	"github.com/duiengine/dui/state"
)

// RenderNode kinds. The host rendering layer maps these onto its native
// primitives; the core never touches screen geometry.
const (
	KindWidget  = "widget"
	KindGroup   = "group"
	KindEmpty   = "empty"
	KindError   = "error"
	KindStyle   = "style"
	KindAlign   = "align"
	KindGesture = "gesture"
	KindMargin  = "margin"
	KindFlex    = "flex"
)

// RenderNode one node of the produced output tree
type RenderNode struct {
	Kind      string
	Type      string
	RefName   string
	Hierarchy []string
	Props     map[string]interface{}
	Children  []*RenderNode
	Slots     map[string][]*RenderNode

	// OnTap set on gesture nodes: invokes the action executor with the
	// trigger metadata already bound
	OnTap func() error

	// Err set on error nodes (debug mode only)
	Err error
}

// Empty the canonical "render nothing" output
func Empty() *RenderNode {
	return &RenderNode{Kind: KindEmpty}
}

// Host the narrow set of platform hooks threaded into action execution
type Host struct {
	Navigation action.Navigation
	OpenURL    func(url string) error
	CopyText   func(text string) error
	ShowToast  func(message string)
}

// RenderPayload the per-render bundle passed down the widget tree: the
// current scope, evaluation and dispatch helpers, and the node's hierarchy
// path for diagnostics. Payloads are passed by value; deriving one never
// mutates the original.
type RenderPayload struct {
	Scope     scope.Context
	Evaluator expression.Evaluator
	Executor  *action.Executor

	State          *state.Context
	AppState       *state.AppState
	Host           Host
	TriggerRebuild func(scopeName string)

	Hierarchy []string
	DebugMode bool

	// Resources resolves icons/fonts/assets by name; nil when the host
	// provides none
	Resources func(name string) (interface{}, bool)
}

// WithExtendedHierarchy derive a payload whose hierarchy path gains name.
// Empty names extend nothing. The slice is copied so sibling renders never
// share backing arrays.
func (payload RenderPayload) WithExtendedHierarchy(name string) RenderPayload {
	if name == "" {
		return payload
	}
	hierarchy := make([]string, len(payload.Hierarchy), len(payload.Hierarchy)+1)
	copy(hierarchy, payload.Hierarchy)
	payload.Hierarchy = append(hierarchy, name)
	return payload
}

// WithScope derive a payload evaluating against a different scope
func (payload RenderPayload) WithScope(s scope.Context) RenderPayload {
	payload.Scope = s
	return payload
}

// Eval evaluate a string that may contain ${...} segments against the
// payload scope
func (payload RenderPayload) Eval(s string) (interface{}, error) {
	return expression.Eval(s, payload.Evaluator, payload.Scope)
}

// EvalExpr resolve an expression-or-literal wrapper against the payload
// scope
func (payload RenderPayload) EvalExpr(e expression.ExprOr[interface{}]) (interface{}, error) {
	return e.DeepEvaluate(payload.Evaluator, payload.Scope)
}

// ExecuteAction run a flow with this payload's scope and state bound into
// the execution context
func (payload RenderPayload) ExecuteAction(flow *action.Flow, triggerMeta map[string]interface{}) ([]interface{}, error) {
	if flow == nil || payload.Executor == nil {
		return nil, nil
	}

	ctx := &action.ExecContext{
		Scope:          payload.Scope,
		Navigation:     payload.Host.Navigation,
		AppState:       payload.AppState,
		TriggerRebuild: payload.TriggerRebuild,
		OpenURL:        payload.Host.OpenURL,
		CopyText:       payload.Host.CopyText,
		ShowToast:      payload.Host.ShowToast,
		TriggerMeta:    triggerMeta,
	}
	if payload.State != nil {
		stateCtx := payload.State
		ctx.SetPageState = func(key string, value interface{}) bool {
			return stateCtx.SetValue(key, value)
		}
	}
	return payload.Executor.ExecuteFlow(flow, ctx)
}
