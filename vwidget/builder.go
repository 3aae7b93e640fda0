package vwidget

import (
	"sort"
	"sync"

	"github.com/go-errors/errors"
	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/state"
	"github.com/duiengine/dui/variable"
)

// Factory the inner render of one registered widget type. The base render
// path (visibility, style, gesture, margin) is applied around it.
type Factory func(node *Node, payload RenderPayload, b *Builder) (*RenderNode, error)

// Registry the mutable widget-type→factory map
type Registry struct {
	mutex     sync.RWMutex
	factories map[string]Factory
}

// NewRegistry create an empty widget registry
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register add or replace the factory for a widget type
func (registry *Registry) Register(widgetType string, factory Factory) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.factories[widgetType] = factory
}

// Get the factory for a widget type
func (registry *Registry) Get(widgetType string) (Factory, bool) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	factory, has := registry.factories[widgetType]
	return factory, has && factory != nil
}

// ComponentDef a separately-defined component tree, resolvable by id
type ComponentDef struct {
	ID        string
	ArgDefs   []variable.Variable
	StateDefs []variable.Variable
	Layout    Data
}

// ComponentSource resolves component references. The config registry is
// the usual implementation.
type ComponentSource interface {
	Component(id string) (*ComponentDef, bool)
}

// Builder turns parsed Data trees into render output. State contexts
// realized for State nodes and components are cached by hierarchy path so
// their values survive re-renders; they are dropped on Reset when the
// owning page unmounts.
type Builder struct {
	Widgets    *Registry
	Components ComponentSource

	mutex  sync.Mutex
	states map[string]*state.Context
}

// NewBuilder create a builder
func NewBuilder(widgets *Registry, components ComponentSource) *Builder {
	return &Builder{
		Widgets:    widgets,
		Components: components,
		states:     map[string]*state.Context{},
	}
}

// Render produce output for one node against the payload
func (b *Builder) Render(data Data, payload RenderPayload) (*RenderNode, error) {
	switch node := data.(type) {
	case *Node:
		if node.Repeat != nil {
			return b.renderRepeat(node, payload)
		}
		return b.renderNode(node, payload)
	case *Component:
		return b.renderComponent(node, payload)
	case *State:
		return b.renderState(node, payload)
	case nil:
		return Empty(), nil
	default:
		return nil, errors.Errorf("vwidget: unknown node variant %T", data)
	}
}

// Reset drop every cached state context, closing their listeners. Called
// when the owning page unmounts.
func (b *Builder) Reset() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, ctx := range b.states {
		ctx.Close()
	}
	b.states = map[string]*state.Context{}
}

// StateAt the cached state context realized at a hierarchy path, for
// host-side rebuild scoping
func (b *Builder) StateAt(path string, namespace string) (*state.Context, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	ctx, has := b.states[path+":"+namespace]
	return ctx, has
}

func (b *Builder) renderNode(node *Node, payload RenderPayload) (*RenderNode, error) {
	base := &Base{
		Common:  node.Common,
		RefName: node.RefName,
		Inner: func(inner RenderPayload) (*RenderNode, error) {
			if factory, has := b.Widgets.Get(node.Type); has {
				return factory(node, inner, b)
			}
			return b.renderGeneric(node, inner)
		},
	}
	return base.Render(payload)
}

// renderGeneric the default inner render for unregistered widget types:
// props deep-evaluated, child slots rendered in order
func (b *Builder) renderGeneric(node *Node, payload RenderPayload) (*RenderNode, error) {
	props, err := expression.Bind(node.Props.Map(), payload.Evaluator, payload.Scope)
	if err != nil {
		return nil, err
	}

	rendered := &RenderNode{
		Kind:      KindWidget,
		Type:      node.Type,
		RefName:   node.RefName,
		Hierarchy: payload.Hierarchy,
	}
	if propMap, ok := props.(map[string]interface{}); ok {
		rendered.Props = propMap
	}

	if len(node.ChildGroups) > 0 {
		rendered.Slots = make(map[string][]*RenderNode, len(node.ChildGroups))
		for _, slot := range slotOrder(node.ChildGroups) {
			children := make([]*RenderNode, 0, len(node.ChildGroups[slot]))
			for _, child := range node.ChildGroups[slot] {
				childNode, err := b.Render(child, payload)
				if err != nil {
					return nil, err
				}
				children = append(children, childNode)
			}
			rendered.Slots[slot] = children
		}
	}
	return rendered, nil
}

// renderRepeat render the node once, with its template child expanded
// once per element of the evaluated data source, each copy against an
// iteration scope exposing currentItem and index. Policy: the first child
// of the child slot is the template, extras are ignored, zero children
// renders nothing. The node's own common props still apply around the
// expanded list.
func (b *Builder) renderRepeat(node *Node, payload RenderPayload) (*RenderNode, error) {
	base := &Base{
		Common:  node.Common,
		RefName: node.RefName,
		Inner: func(inner RenderPayload) (*RenderNode, error) {
			return b.renderRepeatInner(node, inner)
		},
	}
	return base.Render(payload)
}

func (b *Builder) renderRepeatInner(node *Node, payload RenderPayload) (*RenderNode, error) {
	items, err := b.repeatItems(node.Repeat, payload)
	if err != nil {
		return nil, err
	}

	props, err := expression.Bind(node.Props.Map(), payload.Evaluator, payload.Scope)
	if err != nil {
		return nil, err
	}
	rendered := &RenderNode{
		Kind:      KindWidget,
		Type:      node.Type,
		RefName:   node.RefName,
		Hierarchy: payload.Hierarchy,
	}
	if propMap, ok := props.(map[string]interface{}); ok {
		rendered.Props = propMap
	}

	template := templateChild(node.ChildGroups)
	if template == nil {
		return rendered, nil
	}

	for index, item := range items {
		derived := payload.Scope.CopyAndExtend(map[string]interface{}{
			"currentItem": item,
			"index":       index,
		})
		itemPayload := payload.WithScope(derived)

		childNode, err := b.Render(template, itemPayload)
		if err != nil {
			return nil, err
		}

		// expansion is computed fresh per item: the flex value itself may
		// be expression-driven
		childNode, err = wrapFlex(template, childNode, itemPayload)
		if err != nil {
			return nil, err
		}
		rendered.Children = append(rendered.Children, childNode)
	}
	return rendered, nil
}

func (b *Builder) repeatItems(repeat *RepeatData, payload RenderPayload) ([]interface{}, error) {
	var raw interface{}
	var err error

	switch repeat.Type {
	case "object_path":
		path, _ := repeat.Datum.(string)
		if path == "" {
			return nil, nil
		}
		raw, err = payload.Evaluator.Evaluate(expression.Body(path), payload.Scope)
	default: // "json"
		raw, err = expression.Bind(repeat.Datum, payload.Evaluator, payload.Scope)
	}
	if err != nil {
		return nil, err
	}

	items, ok := raw.([]interface{})
	if !ok {
		if raw != nil {
			log.Warn("vwidget: repeat data source is not a list (%T), rendering nothing", raw)
		}
		return nil, nil
	}
	return items, nil
}

func (b *Builder) renderComponent(c *Component, payload RenderPayload) (*RenderNode, error) {
	base := &Base{
		Common:  c.Common,
		RefName: c.RefName,
		Inner: func(inner RenderPayload) (*RenderNode, error) {
			return b.renderComponentInner(c, inner)
		},
	}
	return base.Render(payload)
}

func (b *Builder) renderComponentInner(c *Component, payload RenderPayload) (*RenderNode, error) {
	if b.Components == nil {
		return nil, errors.Errorf("vwidget: component %s referenced but no component source wired", c.ID)
	}
	def, has := b.Components.Component(c.ID)
	if !has {
		return nil, errors.Errorf("vwidget: component %s is not defined", c.ID)
	}

	// defaults first, then the caller's evaluated args over them
	args := make(map[string]interface{}, len(def.ArgDefs)+len(c.Args))
	for _, argDef := range def.ArgDefs {
		args[argDef.Name] = variable.Create(argDef)
	}
	for name, arg := range c.Args {
		value, err := arg.DeepEvaluate(payload.Evaluator, payload.Scope)
		if err != nil {
			return nil, err
		}
		args[name] = value
	}

	inner := payload.WithScope(payload.Scope.CopyAndExtend(args))

	if len(def.StateDefs) > 0 {
		initial := make(map[string]interface{}, len(def.StateDefs))
		for _, stateDef := range def.StateDefs {
			initial[stateDef.Name] = variable.Create(stateDef)
		}
		ctx := b.stateFor(hierarchyPath(inner.Hierarchy), def.ID, initial, payload.State)
		inner.State = ctx
		inner = inner.WithScope(state.NewScope(ctx, inner.Scope))
	}

	return b.Render(def.Layout, inner)
}

func (b *Builder) renderState(s *State, payload RenderPayload) (*RenderNode, error) {
	payload = payload.WithExtendedHierarchy(s.RefName)

	initial := make(map[string]interface{}, len(s.InitDefs))
	for _, def := range s.InitDefs {
		value := variable.Create(def)
		// declared defaults may themselves be expressions over the
		// enclosing scope
		bound, err := expression.Bind(value, payload.Evaluator, payload.Scope)
		if err != nil {
			return nil, err
		}
		initial[def.Name] = bound
	}

	ctx := b.stateFor(hierarchyPath(payload.Hierarchy), s.Namespace, initial, payload.State)
	payload.State = ctx
	payload = payload.WithScope(state.NewScope(ctx, payload.Scope))

	group := &RenderNode{Kind: KindGroup, RefName: s.RefName, Hierarchy: payload.Hierarchy}
	for _, slot := range []string{"child", "children"} {
		children, has := s.ChildGroups[slot]
		if !has {
			continue
		}
		for _, child := range children {
			childNode, err := b.Render(child, payload)
			if err != nil {
				return nil, err
			}
			group.Children = append(group.Children, childNode)
		}
		break
	}
	return group, nil
}

// stateFor reuse or create the state context realized at a hierarchy
// path. Reuse keeps state alive across re-renders; creation happens on
// first render only.
func (b *Builder) stateFor(path string, namespace string, initial map[string]interface{}, ancestor *state.Context) *state.Context {
	key := path + ":" + namespace
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if ctx, has := b.states[key]; has {
		return ctx
	}
	ctx := state.NewContext(namespace, key, initial, ancestor)
	b.states[key] = ctx
	return ctx
}

// wrapFlex wrap a rendered child in a flex node when its parent-props
// declare expansion. The flex value is evaluated against the given scope.
func wrapFlex(child Data, node *RenderNode, payload RenderPayload) (*RenderNode, error) {
	parent := child.Parent()
	raw, has := parent.Get("flex")
	if !has {
		if expanded, ok := parent.GetBool("expanded"); !ok || !expanded {
			return node, nil
		}
		raw = float64(1)
	}

	value, err := expression.Bind(raw, payload.Evaluator, payload.Scope)
	if err != nil {
		return nil, err
	}
	return &RenderNode{
		Kind:     KindFlex,
		Props:    map[string]interface{}{"flex": value},
		Children: []*RenderNode{node},
	}, nil
}

// templateChild the designated repeat template: the first child of the
// "children" slot, falling back to the "child" slot, else the first child
// of the lexically-first slot
func templateChild(groups map[string][]Data) Data {
	for _, slot := range []string{"children", "child"} {
		if children, has := groups[slot]; has && len(children) > 0 {
			return children[0]
		}
	}
	for _, slot := range slotOrder(groups) {
		if children := groups[slot]; len(children) > 0 {
			return children[0]
		}
	}
	return nil
}

func slotOrder(groups map[string][]Data) []string {
	slots := make([]string, 0, len(groups))
	for slot := range groups {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}
