package expression

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-errors/errors"

	"github.com/duiengine/dui/scope"
)

// ExprLang the default Evaluator, backed by expr-lang. Compiled programs
// are cached by source text; the cache is shared across renders so hot
// expressions compile once.
type ExprLang struct {
	mutex    sync.RWMutex
	programs map[string]*vm.Program
}

// NewExprLang create the default evaluator
func NewExprLang() *ExprLang {
	return &ExprLang{programs: map[string]*vm.Program{}}
}

// Evaluate compile (or reuse) and run one expression body against the env
// flattened from the scope chain
func (ev *ExprLang) Evaluate(source string, ctx scope.Context) (interface{}, error) {
	program, err := ev.compile(source)
	if err != nil {
		return nil, errors.Errorf("expression %q: %s", source, err.Error())
	}

	value, err := vm.Run(program, envOf(ctx))
	if err != nil {
		return nil, errors.Errorf("expression %q: %s", source, err.Error())
	}
	return value, nil
}

func (ev *ExprLang) compile(source string) (*vm.Program, error) {
	ev.mutex.RLock()
	program, has := ev.programs[source]
	ev.mutex.RUnlock()
	if has {
		return program, nil
	}

	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	ev.mutex.Lock()
	ev.programs[source] = program
	ev.mutex.Unlock()
	return program, nil
}

// envOf flattens the scope chain into the evaluation env. Inner keys win,
// matching the chain's shadowing rules.
func envOf(ctx scope.Context) map[string]interface{} {
	env := map[string]interface{}{}
	if ctx == nil {
		return env
	}
	for _, key := range ctx.Keys() {
		if _, has := env[key]; has {
			continue
		}
		if value, found := ctx.GetValue(key); found {
			env[key] = value
		}
	}
	return env
}
