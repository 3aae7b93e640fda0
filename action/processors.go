package action

import (
	"net/url"
	"time"

	"github.com/go-errors/errors"
	"github.com/yaoapp/kun/any"
	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/scope"
)

// Wire names of the built-in action types
const (
	TypeNavigateToPage  = "Action.navigateToPage"
	TypeNavigateBack    = "Action.navigateBack"
	TypeSetState        = "Action.setState"
	TypeSetAppState     = "Action.setAppState"
	TypeRebuildState    = "Action.rebuildState"
	TypeOpenURL         = "Action.openUrl"
	TypeDelay           = "Action.delay"
	TypeCopyToClipboard = "Action.copyToClipBoard"
	TypeShowToast       = "Action.showToast"
)

// RegisterDefaults wire every built-in processor into the registry
func RegisterDefaults(registry *Registry, ev expression.Evaluator) {
	registry.Register(TypeNavigateToPage, &NavigateToPage{Evaluator: ev})
	registry.Register(TypeNavigateBack, &NavigateBack{Evaluator: ev})
	registry.Register(TypeSetState, &SetState{Evaluator: ev})
	registry.Register(TypeSetAppState, &SetAppState{Evaluator: ev})
	registry.Register(TypeRebuildState, &RebuildState{Evaluator: ev})
	registry.Register(TypeOpenURL, &OpenURL{Evaluator: ev})
	registry.Register(TypeDelay, &Delay{Evaluator: ev})
	registry.Register(TypeCopyToClipboard, &CopyToClipboard{Evaluator: ev})
	registry.Register(TypeShowToast, &ShowToast{Evaluator: ev})
}

// NavigateToPage push or replace a page on the host navigation stack, or
// restart the stack at it. data: { pageData: {id, args}, replace?: bool,
// reset?: bool }
type NavigateToPage struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *NavigateToPage) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	if ctx.Navigation == nil {
		return nil, errors.Errorf("%s: no navigation context", a.Type)
	}

	raw, _ := a.Data.Get("pageData")
	evaluated, err := expression.Bind(raw, p.Evaluator, s)
	if err != nil {
		return nil, err
	}
	pageData, ok := evaluated.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("%s: pageData is not an object", a.Type)
	}

	id, _ := pageData["id"].(string)
	if id == "" {
		return nil, errors.Errorf("%s: pageData.id is missing", a.Type)
	}
	args, _ := pageData["args"].(map[string]interface{})

	if reset, _ := a.Data.GetBool("reset"); reset {
		return nil, ctx.Navigation.Reset(id, args)
	}
	replace, _ := a.Data.GetBool("replace")
	return nil, ctx.Navigation.Navigate(id, args, replace)
}

// NavigateBack pop the current page. data: { maybe?: bool, result?: any }.
// The soft variant (maybe) checks can-go-back first and returns the
// boolean outcome; the hard variant force-pops and returns nil.
type NavigateBack struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *NavigateBack) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	if ctx.Navigation == nil {
		return nil, errors.Errorf("%s: no navigation context", a.Type)
	}

	var result interface{}
	if raw, has := a.Data.Get("result"); has {
		evaluated, err := expression.Bind(raw, p.Evaluator, s)
		if err != nil {
			return nil, err
		}
		result = evaluated
	}

	maybe, _ := a.Data.GetBool("maybe")
	if maybe {
		if !ctx.Navigation.CanGoBack() {
			return false, nil
		}
		if err := ctx.Navigation.GoBack(result); err != nil {
			return nil, err
		}
		return true, nil
	}

	return nil, ctx.Navigation.GoBack(result)
}

// SetState write evaluated values into the current page state.
// data: { updates: {key: value-or-expression, ...} }. Each key is
// individually evaluated and individually applied, in no particular key
// order; there is no batching at this layer.
type SetState struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *SetState) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	if ctx.SetPageState == nil {
		return nil, errors.Errorf("%s: no setPageState in execution context", a.Type)
	}

	updates, has := a.Data.GetMap("updates")
	if !has {
		return nil, nil
	}

	for key, raw := range updates {
		value, err := expression.Bind(raw, p.Evaluator, s)
		if err != nil {
			return nil, err
		}
		if !ctx.SetPageState(key, value) {
			log.Warn("%s: state key %s is not declared, ignored", a.Type, key)
		}
	}
	return nil, nil
}

// SetAppState write evaluated values into the global reactive state.
// Same per-key evaluate-then-apply pattern as SetState.
type SetAppState struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *SetAppState) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	if ctx.AppState == nil {
		return nil, errors.Errorf("%s: no app state in execution context", a.Type)
	}

	updates, has := a.Data.GetMap("updates")
	if !has {
		return nil, nil
	}

	for key, raw := range updates {
		value, err := expression.Bind(raw, p.Evaluator, s)
		if err != nil {
			return nil, err
		}
		if _, err := ctx.AppState.Update(key, value); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// RebuildState trigger a re-render, optionally scoped to a named state
// context. data: { stateName?: string }. Missing trigger is a logged
// no-op, not an error.
type RebuildState struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *RebuildState) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	if ctx.TriggerRebuild == nil {
		log.Warn("%s: no rebuild trigger wired, ignored", a.Type)
		return nil, nil
	}

	stateName := ""
	if raw, has := a.Data.Get("stateName"); has {
		evaluated, err := expression.Bind(raw, p.Evaluator, s)
		if err != nil {
			return nil, err
		}
		if name, ok := evaluated.(string); ok {
			stateName = name
		}
	}

	ctx.TriggerRebuild(stateName)
	return nil, nil
}

// OpenURL open an external URL through the host. data: { url: string }.
// The URL must be syntactically valid before the host is asked; failure to
// open is an error, not a silent no-op.
type OpenURL struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *OpenURL) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	raw, _ := a.Data.Get("url")
	evaluated, err := expression.Bind(raw, p.Evaluator, s)
	if err != nil {
		return nil, err
	}
	target, _ := evaluated.(string)
	if target == "" {
		return nil, errors.Errorf("%s: url is missing", a.Type)
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" {
		return nil, errors.Errorf("%s: invalid url %q", a.Type, target)
	}

	if ctx.OpenURL == nil {
		return nil, errors.Errorf("%s: no url opener in execution context", a.Type)
	}
	return nil, ctx.OpenURL(target)
}

// Delay wait an evaluated number of milliseconds before the next action.
// data: { duration: number }. Honors context cancellation.
type Delay struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *Delay) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	raw, _ := a.Data.Get("duration")
	evaluated, err := expression.Bind(raw, p.Evaluator, s)
	if err != nil {
		return nil, err
	}

	v := any.Of(evaluated)
	if !v.IsNumber() {
		return nil, errors.Errorf("%s: duration is not a number", a.Type)
	}
	duration := time.Duration(v.CFloat() * float64(time.Millisecond))

	if ctx.Context == nil {
		time.Sleep(duration)
		return nil, nil
	}
	select {
	case <-time.After(duration):
		return nil, nil
	case <-ctx.Context.Done():
		return nil, ctx.Context.Err()
	}
}

// CopyToClipboard hand evaluated text to the host clipboard.
// data: { text: string }
type CopyToClipboard struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *CopyToClipboard) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	if ctx.CopyText == nil {
		return nil, errors.Errorf("%s: no clipboard in execution context", a.Type)
	}

	raw, _ := a.Data.Get("text")
	evaluated, err := expression.Bind(raw, p.Evaluator, s)
	if err != nil {
		return nil, err
	}
	text, _ := evaluated.(string)
	return nil, ctx.CopyText(text)
}

// ShowToast show a transient host message. data: { message: string }.
// Missing hook is a logged no-op.
type ShowToast struct {
	Evaluator expression.Evaluator
}

// Execute run the action
func (p *ShowToast) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	raw, _ := a.Data.Get("message")
	evaluated, err := expression.Bind(raw, p.Evaluator, s)
	if err != nil {
		return nil, err
	}
	message, _ := evaluated.(string)

	if ctx.ShowToast == nil {
		log.Warn("%s: no toast hook wired, ignored", a.Type)
		return nil, nil
	}
	ctx.ShowToast(message)
	return nil, nil
}
