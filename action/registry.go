package action

import (
	"context"
	"sync"

	"github.com/duiengine/dui/scope"
	"github.com/duiengine/dui/state"
)

// Processor executes one action type. Processors are stateless strategy
// objects; everything request-scoped arrives through the ExecContext and
// the scope.
type Processor interface {
	Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error)
}

// ProcessorFunc adapt a function to the Processor interface
type ProcessorFunc func(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error)

// Execute run the function
func (fn ProcessorFunc) Execute(ctx *ExecContext, a *Action, s scope.Context) (interface{}, error) {
	return fn(ctx, a, s)
}

// Navigation the host's navigation stack, consumed by the navigate
// processors. Any method may legitimately be unsupported by a host; a nil
// Navigation on the context is the common case in tests.
type Navigation interface {
	Navigate(pageID string, args map[string]interface{}, replace bool) error
	GoBack(result interface{}) error
	CanGoBack() bool

	// Reset clears the stack and restarts it at pageID
	Reset(pageID string, args map[string]interface{}) error
}

// ExecContext the host-supplied execution context for one flow
// invocation. Any field may be absent; processors fail with a clear typed
// error when a required field is missing.
type ExecContext struct {
	Context context.Context
	Scope   scope.Context

	Navigation     Navigation
	AppState       *state.AppState
	SetPageState   func(key string, value interface{}) bool
	TriggerRebuild func(scopeName string)
	OpenURL        func(url string) error
	CopyText       func(text string) error
	ShowToast      func(message string)

	// TriggerMeta describes what fired the flow, e.g.
	// {"triggerType": "onTap"}. Diagnostic only.
	TriggerMeta map[string]interface{}
}

// Registry the mutable type→processor map. Dispatch reads it on every
// action, registration happens at engine setup and occasionally at
// runtime, so it is guarded read-mostly.
type Registry struct {
	mutex      sync.RWMutex
	processors map[string]Processor
}

// NewRegistry create an empty registry
func NewRegistry() *Registry {
	return &Registry{processors: map[string]Processor{}}
}

// Register add or replace the processor for an action type
func (registry *Registry) Register(actionType string, processor Processor) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.processors[actionType] = processor
}

// Unregister remove a processor. Returns true if one was registered.
func (registry *Registry) Unregister(actionType string) bool {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if _, has := registry.processors[actionType]; has {
		delete(registry.processors, actionType)
		return true
	}
	return false
}

// Exists check if a processor is registered for the type
func (registry *Registry) Exists(actionType string) bool {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	return registry.processors[actionType] != nil
}

// Get the processor for a type
func (registry *Registry) Get(actionType string) (Processor, bool) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	processor, has := registry.processors[actionType]
	return processor, has && processor != nil
}

// evalScope the scope used for expression evaluation during execution
func (ctx *ExecContext) evalScope() scope.Context {
	if ctx.Scope != nil {
		return ctx.Scope
	}
	return scope.New(nil, nil)
}
