package action

import (
	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/expression"
)

// Executor dispatches actions to their registered processors. Flows run
// strictly in order: action N+1 does not begin until action N settles.
type Executor struct {
	registry  *Registry
	evaluator expression.Evaluator
}

// NewExecutor create an executor over a registry and an evaluator
func NewExecutor(registry *Registry, evaluator expression.Evaluator) *Executor {
	return &Executor{registry: registry, evaluator: evaluator}
}

// Registry the registry dispatch reads from
func (ex *Executor) Registry() *Registry {
	return ex.registry
}

// ExecuteFlow run every action of the flow in array order. A disabled
// action is skipped silently; a missing processor is a logged no-op; a
// processor error aborts the remaining actions and propagates to the
// caller. Results are positional, nil for skipped steps.
//
// The abort-on-first-error behavior is deliberate and pinned by tests:
// actions are otherwise treated independently, but one failing step stops
// the rest of its flow.
func (ex *Executor) ExecuteFlow(flow *Flow, ctx *ExecContext) ([]interface{}, error) {
	if flow == nil {
		return nil, nil
	}

	results := make([]interface{}, len(flow.Actions))
	for i, a := range flow.Actions {
		value, err := ex.ExecuteAction(a, ctx)
		if err != nil {
			return results, err
		}
		results[i] = value
	}
	return results, nil
}

// ExecuteAction run one action. Evaluates disableActionIf (default false)
// against the context scope; a disabled action returns nil without
// touching its processor. An unregistered action type logs a warning and
// returns nil; anything the processor throws propagates unmodified.
func (ex *Executor) ExecuteAction(a *Action, ctx *ExecContext) (interface{}, error) {
	if a == nil {
		return nil, nil
	}

	disabled, err := a.DisableIf.EvaluateOr(ex.evaluator, ctx.evalScope(), false)
	if err != nil {
		// executing is safer than silently dropping a step the author wrote
		log.Warn("action %s: disableActionIf evaluation failed, executing anyway: %s", a.Type, err.Error())
		disabled = false
	}
	if disabled {
		return nil, nil
	}

	processor, has := ex.registry.Get(a.Type)
	if !has {
		log.Warn("action %s: no processor registered", a.Type)
		return nil, nil
	}

	return processor.Execute(ctx, a, ctx.evalScope())
}
