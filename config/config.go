// Package config models the root document a backend serves: app-level
// metadata, app-state declarations, and the raw page/component
// definitions. Parsed definitions are produced on demand through the
// registry so cold pages never pay parse cost.
package config

import (
	"github.com/go-errors/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/any"
	"gopkg.in/yaml.v3"

	"github.com/duiengine/dui/action"
	"github.com/duiengine/dui/helper"
	"github.com/duiengine/dui/state"
	"github.com/duiengine/dui/variable"
	"github.com/duiengine/dui/vwidget"
)

// DUIConfig the root document. AppState descriptors are parsed eagerly
// (declaration mistakes must surface at init); page and component bodies
// stay raw until first use.
type DUIConfig struct {
	ProjectID string
	Version   int
	AppState  []state.Descriptor

	pages      map[string]map[string]interface{}
	components map[string]map[string]interface{}
}

// PageDef one parsed page definition
type PageDef struct {
	ID        string
	ArgDefs   []variable.Variable
	StateDefs []variable.Variable
	Layout    vwidget.Data
	OnLoad    *action.Flow
}

// FromJson parse a root document from JSON bytes
func FromJson(data []byte) (*DUIConfig, error) {
	var raw map[string]interface{}
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("config: invalid JSON document: %s", err.Error())
	}
	return FromMap(raw)
}

// FromYaml parse a root document from YAML bytes (dev workflow)
func FromYaml(data []byte) (*DUIConfig, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("config: invalid YAML document: %s", err.Error())
	}
	return FromMap(raw)
}

// FromMap parse a root document from a decoded object
func FromMap(raw map[string]interface{}) (*DUIConfig, error) {
	config := &DUIConfig{
		pages:      map[string]map[string]interface{}{},
		components: map[string]map[string]interface{}{},
	}
	config.ProjectID, _ = helper.TryKeysString(raw, "projectId", "projectID")

	if version, has := helper.TryKeys(raw, "version"); has {
		v := any.Of(version)
		if v.IsNumber() {
			config.Version = v.CInt()
		}
	}

	if appState, ok := raw["appState"].(map[string]interface{}); ok {
		for name, rawDef := range appState {
			def, ok := rawDef.(map[string]interface{})
			if !ok {
				return nil, errors.Errorf("config: appState entry %s is not an object", name)
			}
			descriptor, err := state.DescriptorFromJson(name, def)
			if err != nil {
				return nil, err
			}
			config.AppState = append(config.AppState, descriptor)
		}
	}

	if pages, ok := raw["pages"].(map[string]interface{}); ok {
		for id, rawPage := range pages {
			if page, ok := rawPage.(map[string]interface{}); ok {
				config.pages[id] = page
			}
		}
	}
	if components, ok := raw["components"].(map[string]interface{}); ok {
		for id, rawComponent := range components {
			if component, ok := rawComponent.(map[string]interface{}); ok {
				config.components[id] = component
			}
		}
	}
	return config, nil
}

// PageIDs the declared page ids
func (config *DUIConfig) PageIDs() []string {
	ids := make([]string, 0, len(config.pages))
	for id := range config.pages {
		ids = append(ids, id)
	}
	return ids
}

// HasPage check if a page is declared
func (config *DUIConfig) HasPage(id string) bool {
	_, has := config.pages[id]
	return has
}

// parsePage parse one raw page body
func (config *DUIConfig) parsePage(id string) (*PageDef, error) {
	raw, has := config.pages[id]
	if !has {
		return nil, errors.Errorf("config: page %s is not defined", id)
	}

	page := &PageDef{ID: id}

	argDefs, err := variableDefs(raw, "argDefs")
	if err != nil {
		return nil, err
	}
	page.ArgDefs = argDefs

	stateDefs, err := variableDefs(raw, "initStateDefs", "stateDefs")
	if err != nil {
		return nil, err
	}
	page.StateDefs = stateDefs

	if layout, ok := raw["layout"].(map[string]interface{}); ok {
		data, err := vwidget.FromJson(layout)
		if err != nil {
			return nil, err
		}
		page.Layout = data
	}

	if rawFlow, has := helper.TryKeys(raw, "onPageLoadAction", "onLoad"); has {
		if flowData, ok := rawFlow.(map[string]interface{}); ok {
			flow, err := action.FlowFromJson(flowData)
			if err != nil {
				return nil, err
			}
			page.OnLoad = flow
		}
	}
	return page, nil
}

// parseComponent parse one raw component body
func (config *DUIConfig) parseComponent(id string) (*vwidget.ComponentDef, error) {
	raw, has := config.components[id]
	if !has {
		return nil, errors.Errorf("config: component %s is not defined", id)
	}

	def := &vwidget.ComponentDef{ID: id}

	argDefs, err := variableDefs(raw, "argDefs")
	if err != nil {
		return nil, err
	}
	def.ArgDefs = argDefs

	stateDefs, err := variableDefs(raw, "initStateDefs", "stateDefs")
	if err != nil {
		return nil, err
	}
	def.StateDefs = stateDefs

	if layout, ok := raw["layout"].(map[string]interface{}); ok {
		data, err := vwidget.FromJson(layout)
		if err != nil {
			return nil, err
		}
		def.Layout = data
	}
	return def, nil
}

func variableDefs(raw map[string]interface{}, keys ...string) ([]variable.Variable, error) {
	block, has := helper.TryKeys(raw, keys...)
	if !has {
		return nil, nil
	}
	defs, ok := block.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	variables := make([]variable.Variable, 0, len(defs))
	for name, rawDef := range defs {
		def, ok := rawDef.(map[string]interface{})
		if !ok {
			def = map[string]interface{}{"type": "json", "value": rawDef}
		}
		v, err := variable.FromJson(name, def)
		if err != nil {
			return nil, err
		}
		variables = append(variables, v)
	}
	return variables, nil
}
