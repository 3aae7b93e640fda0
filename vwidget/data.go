// Package vwidget implements the virtual-widget layer: the parsed,
// language-agnostic description of one page-tree node, and the runtime
// widgets that turn descriptions into render output.
package vwidget

import (
	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/helper"
	"github.com/duiengine/dui/variable"
)

// Data one parsed node of the page tree: a plain widget node, a reference
// to a separately-defined component, or a state wrapper introducing a new
// named scope around its children
type Data interface {
	// Ref the node's optional debug/address name
	Ref() string
	// Parent layout hints from the parent's perspective (flex expansion
	// and the like). Carried separately from the node's own props.
	Parent() helper.Props
}

// Node a plain widget node
type Node struct {
	Type        string
	Props       helper.Props
	Common      *CommonProps
	ParentProps helper.Props
	ChildGroups map[string][]Data
	Repeat      *RepeatData
	RefName     string
}

// Ref the node's debug name
func (node *Node) Ref() string { return node.RefName }

// Parent the parent-perspective layout props
func (node *Node) Parent() helper.Props { return node.ParentProps }

// Component a reference to a separately-defined component tree
type Component struct {
	ID          string
	Args        map[string]expression.ExprOr[interface{}]
	Common      *CommonProps
	ParentProps helper.Props
	RefName     string
}

// Ref the node's debug name
func (c *Component) Ref() string { return c.RefName }

// Parent the parent-perspective layout props
func (c *Component) Parent() helper.Props { return c.ParentProps }

// State a wrapper introducing a named state scope around its children
type State struct {
	Namespace   string
	InitDefs    []variable.Variable
	ChildGroups map[string][]Data
	ParentProps helper.Props
	RefName     string
}

// Ref the node's debug name
func (s *State) Ref() string { return s.RefName }

// Parent the parent-perspective layout props
func (s *State) Parent() helper.Props { return s.ParentProps }

// RepeatData the iteration descriptor of a list-bound node
type RepeatData struct {
	Type  string // "json" | "object_path"
	Datum interface{}
}

// FromJson parse one node of the page tree. The discriminator is read
// through the ordered fallback ["category", "nodeType"]; an absent or
// unrecognized discriminator parses as a plain Node, since most historical
// documents omit it. Returns nil for nil input.
func FromJson(data map[string]interface{}) (Data, error) {
	if data == nil {
		return nil, nil
	}

	category, _ := helper.TryKeysString(data, "category", "nodeType")
	switch category {
	case "component":
		return componentFromJson(data)
	case "state":
		return stateFromJson(data)
	default:
		return nodeFromJson(data)
	}
}

func nodeFromJson(data map[string]interface{}) (*Node, error) {
	node := &Node{}
	node.Type, _ = helper.TryKeysString(data, "type")
	node.RefName, _ = helper.TryKeysString(data, "varName", "refName")

	props, _ := data["props"].(map[string]interface{})
	node.Props = helper.NewProps(props)

	parentProps, _ := data["parentProps"].(map[string]interface{})
	node.ParentProps = helper.NewProps(parentProps)

	common, err := commonFromJson(data)
	if err != nil {
		return nil, err
	}
	node.Common = common

	groups, err := childGroupsFromJson(data)
	if err != nil {
		return nil, err
	}
	node.ChildGroups = groups

	node.Repeat = repeatFromJson(data, node.Props)
	return node, nil
}

func componentFromJson(data map[string]interface{}) (*Component, error) {
	c := &Component{}
	c.ID, _ = helper.TryKeysString(data, "id", "componentId")
	c.RefName, _ = helper.TryKeysString(data, "varName", "refName")

	parentProps, _ := data["parentProps"].(map[string]interface{})
	c.ParentProps = helper.NewProps(parentProps)

	common, err := commonFromJson(data)
	if err != nil {
		return nil, err
	}
	c.Common = common

	if args, ok := data["args"].(map[string]interface{}); ok {
		c.Args = make(map[string]expression.ExprOr[interface{}], len(args))
		for name, raw := range args {
			c.Args[name] = expression.FromValue[interface{}](raw)
		}
	}
	return c, nil
}

func stateFromJson(data map[string]interface{}) (*State, error) {
	s := &State{}
	s.RefName, _ = helper.TryKeysString(data, "varName", "refName")
	s.Namespace, _ = helper.TryKeysString(data, "namespace", "stateId")
	if s.Namespace == "" {
		s.Namespace = s.RefName
	}

	parentProps, _ := data["parentProps"].(map[string]interface{})
	s.ParentProps = helper.NewProps(parentProps)

	if defs, ok := data["initStateDefs"].(map[string]interface{}); ok {
		for name, rawDef := range defs {
			def, ok := rawDef.(map[string]interface{})
			if !ok {
				// shorthand: a bare value declares an untyped default
				def = map[string]interface{}{"type": "json", "value": rawDef}
			}
			v, err := variable.FromJson(name, def)
			if err != nil {
				return nil, err
			}
			s.InitDefs = append(s.InitDefs, v)
		}
	}

	groups, err := childGroupsFromJson(data)
	if err != nil {
		return nil, err
	}
	s.ChildGroups = groups
	return s, nil
}

// childGroupsFromJson parse the slot→children map through the ordered
// fallback ["children", "composites", "childGroups"]. Keys are slot names,
// each holding an ordered child list; list order is render order.
// Malformed entries are dropped, not fatal.
func childGroupsFromJson(data map[string]interface{}) (map[string][]Data, error) {
	raw, has := helper.TryKeys(data, "children", "composites", "childGroups")
	if !has || raw == nil {
		return nil, nil
	}

	slots, ok := raw.(map[string]interface{})
	if !ok {
		// legacy shape: a bare array is the "children" slot
		if list, isList := raw.([]interface{}); isList {
			slots = map[string]interface{}{"children": list}
		} else {
			log.Trace("vwidget: child groups are neither an object nor an array, dropped")
			return nil, nil
		}
	}

	groups := make(map[string][]Data, len(slots))
	for slot, rawList := range slots {
		list, ok := rawList.([]interface{})
		if !ok {
			log.Trace("vwidget: child slot %s is not an array, dropped", slot)
			continue
		}
		children := make([]Data, 0, len(list))
		for i, rawChild := range list {
			childData, ok := rawChild.(map[string]interface{})
			if !ok {
				log.Trace("vwidget: child %d of slot %s is not an object, dropped", i, slot)
				continue
			}
			child, err := FromJson(childData)
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			}
		}
		groups[slot] = children
	}
	return groups, nil
}

// repeatFromJson resolve the iteration descriptor. Two locations must be
// supported because the format evolved: the top-level dataRef/repeatData
// keys first, then props.dataSource.
func repeatFromJson(data map[string]interface{}, props helper.Props) *RepeatData {
	raw, has := helper.TryKeys(data, "dataRef", "repeatData")
	if !has || raw == nil {
		if v, ok := props.Get("dataSource"); ok && v != nil {
			raw = v
		} else {
			return nil
		}
	}

	if descriptor, ok := raw.(map[string]interface{}); ok {
		repeat := &RepeatData{Type: "json"}
		if typ, ok := descriptor["type"].(string); ok && typ != "" {
			repeat.Type = typ
		}
		repeat.Datum, _ = helper.TryKeys(descriptor, "datum", "data", "value")
		return repeat
	}
	return &RepeatData{Type: "json", Datum: raw}
}

// actionFlowFromProps read an action flow from a raw map value
func actionFlowFromProps(raw interface{}) (*action.Flow, error) {
	data, ok := raw.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return action.FlowFromJson(data)
}
