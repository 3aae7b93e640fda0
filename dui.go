// Package dui is a server-driven UI engine: a backend emits a JSON
// document describing pages as widget trees, state variables and action
// flows; this library interprets the document at runtime, evaluates
// embedded expressions against a layered scope, and produces render output
// the host maps onto native primitives.
package dui

import (
	"github.com/go-errors/errors"

	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/config"
	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/state"
	"github.com/duiengine/dui/store"
	"github.com/duiengine/dui/store/memory"
	"github.com/duiengine/dui/vwidget"
)

// Options the engine construction knobs. Everything optional has a
// sensible default; only Source is required.
type Options struct {
	Source    config.Source
	Storage   state.Storage
	Host      vwidget.Host
	Evaluator expression.Evaluator
	Debug     bool

	// Resources resolves icons/fonts/assets by name
	Resources func(name string) (interface{}, bool)

	// Observer the app-state debugging hook
	Observer state.Observer
}

// Engine one running app session. Constructed explicitly and passed to
// whatever needs it; there are no package-level singletons, so tests can
// run engines side by side and a full app-state reset is an explicit call.
type Engine struct {
	Registry  *config.Registry
	AppState  *state.AppState
	Actions   *action.Registry
	Widgets   *vwidget.Registry
	Executor  *action.Executor
	Evaluator expression.Evaluator

	host      vwidget.Host
	debug     bool
	resources func(name string) (interface{}, bool)
}

// New load the document and build an engine over it
func New(options Options) (*Engine, error) {
	if options.Source == nil {
		return nil, errors.Errorf("dui: a config source is required")
	}
	cfg, err := options.Source.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, options)
}

// NewWithConfig build an engine over an already-parsed document
func NewWithConfig(cfg *config.DUIConfig, options Options) (*Engine, error) {
	storage := options.Storage
	if storage == nil {
		storage = memoryStorage()
	}

	evaluator := options.Evaluator
	if evaluator == nil {
		evaluator = expression.NewExprLang()
	}

	appState := state.NewAppState(cfg.ProjectID, storage)
	if options.Observer != nil {
		appState.SetObserver(options.Observer)
	}
	if err := appState.Init(cfg.AppState); err != nil {
		return nil, err
	}

	registry, err := config.NewRegistry(cfg)
	if err != nil {
		return nil, err
	}

	actions := action.NewRegistry()
	action.RegisterDefaults(actions, evaluator)

	engine := &Engine{
		Registry:  registry,
		AppState:  appState,
		Actions:   actions,
		Widgets:   vwidget.NewRegistry(),
		Executor:  action.NewExecutor(actions, evaluator),
		Evaluator: evaluator,
		host:      options.Host,
		debug:     options.Debug,
		resources: options.Resources,
	}
	return engine, nil
}

// ApplyConfig swap in a freshly-loaded document (hot reload). The
// app-state store is fully reset: transient values do not survive, which
// is the same contract as re-initializing the store directly.
func (engine *Engine) ApplyConfig(cfg *config.DUIConfig) error {
	registry, err := config.NewRegistry(cfg)
	if err != nil {
		return err
	}
	if err := engine.AppState.Init(cfg.AppState); err != nil {
		return err
	}
	engine.Registry = registry
	return nil
}

// Dispose tear the session down
func (engine *Engine) Dispose() {
	engine.AppState.Dispose()
}

func memoryStorage() state.Storage {
	return store.NewStringAdapter(memory.New())
}
