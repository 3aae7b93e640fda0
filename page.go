package dui

import (
	"context"
	"sync"

	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/config"
	"github.com/duiengine/dui/scope"
	"github.com/duiengine/dui/state"
	"github.com/duiengine/dui/variable"
	"github.com/duiengine/dui/vwidget"
)

// Page one open page: its parsed definition, its root state context, and
// the builder holding every nested state realized inside it. Owned by the
// host navigation entry that opened it; Close when it leaves the stack.
type Page struct {
	Def     *config.PageDef
	State   *state.Context
	Builder *vwidget.Builder

	engine *Engine
	args   map[string]interface{}

	mutex    sync.Mutex
	rebuilds map[int]func(scopeName string)
	nextID   int
}

// OpenPage resolve a page definition and build its root state from the
// declared state defs. args become visible to expressions as ${args.x}.
func (engine *Engine) OpenPage(id string, args map[string]interface{}) (*Page, error) {
	def, err := engine.Registry.Page(id)
	if err != nil {
		return nil, err
	}

	initial := make(map[string]interface{}, len(def.StateDefs))
	for _, stateDef := range def.StateDefs {
		initial[stateDef.Name] = variable.Create(stateDef)
	}

	// the caller keeps ownership of its map; defaults land on a copy
	pageArgs := make(map[string]interface{}, len(args)+len(def.ArgDefs))
	for name, value := range args {
		pageArgs[name] = value
	}
	for _, argDef := range def.ArgDefs {
		if _, has := pageArgs[argDef.Name]; !has {
			pageArgs[argDef.Name] = variable.Create(argDef)
		}
	}

	return &Page{
		Def:      def,
		State:    state.NewContext(id, id, initial, nil),
		Builder:  vwidget.NewBuilder(engine.Widgets, engine.Registry),
		engine:   engine,
		args:     pageArgs,
		rebuilds: map[int]func(string){},
	}, nil
}

// Scope the page's full lookup chain: page state over app state over the
// page args
func (page *Page) Scope() scope.Context {
	base := scope.New(map[string]interface{}{"args": page.args}, nil)
	app := state.NewAppScope(page.engine.AppState, base)
	return state.NewScope(page.State, app)
}

// Payload the render bundle bound to this page's current scope
func (page *Page) Payload() vwidget.RenderPayload {
	return vwidget.RenderPayload{
		Scope:          page.Scope(),
		Evaluator:      page.engine.Evaluator,
		Executor:       page.engine.Executor,
		State:          page.State,
		AppState:       page.engine.AppState,
		Host:           page.engine.host,
		TriggerRebuild: page.triggerRebuild,
		Hierarchy:      []string{page.Def.ID},
		DebugMode:      page.engine.debug,
		Resources:      page.engine.resources,
	}
}

// Render produce the page's output tree against its current state
func (page *Page) Render() (*vwidget.RenderNode, error) {
	return page.Builder.Render(page.Def.Layout, page.Payload())
}

// Load run the page's on-load flow, if any
func (page *Page) Load(ctx context.Context) error {
	if page.Def.OnLoad == nil {
		return nil
	}
	payload := page.Payload()
	execCtx := &action.ExecContext{
		Context:        ctx,
		Scope:          payload.Scope,
		Navigation:     page.engine.host.Navigation,
		AppState:       page.engine.AppState,
		TriggerRebuild: page.triggerRebuild,
		OpenURL:        page.engine.host.OpenURL,
		CopyText:       page.engine.host.CopyText,
		ShowToast:      page.engine.host.ShowToast,
		SetPageState:   page.State.SetValue,
		TriggerMeta:    map[string]interface{}{"triggerType": "onPageLoad"},
	}
	_, err := page.engine.Executor.ExecuteFlow(page.Def.OnLoad, execCtx)
	return err
}

// OnRebuild register a host callback fired when a rebuild-state action
// runs. The empty scope name means the whole page.
func (page *Page) OnRebuild(fn func(scopeName string)) int {
	page.mutex.Lock()
	defer page.mutex.Unlock()
	id := page.nextID
	page.nextID++
	page.rebuilds[id] = fn
	return id
}

// RemoveOnRebuild drop one rebuild callback
func (page *Page) RemoveOnRebuild(id int) {
	page.mutex.Lock()
	defer page.mutex.Unlock()
	delete(page.rebuilds, id)
}

func (page *Page) triggerRebuild(scopeName string) {
	page.mutex.Lock()
	fns := make([]func(string), 0, len(page.rebuilds))
	for _, fn := range page.rebuilds {
		fns = append(fns, fn)
	}
	page.mutex.Unlock()
	for _, fn := range fns {
		fn(scopeName)
	}
}

// Close drop the page's state listeners and every nested state the
// builder realized
func (page *Page) Close() {
	page.State.Close()
	page.Builder.Reset()
}
