// Package action implements the typed, serializable user-triggered
// operations of the page document: the action model, the processor
// registry, and the sequential flow executor.
package action

import (
	"github.com/go-errors/errors"
	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/expression"
	"github.com/duiengine/dui/helper"
)

// Action one step of a flow. Constructed from JSON at config-parse time
// and immutable afterwards; evaluated and executed possibly many times
// against different scopes.
type Action struct {
	Type      string
	ID        string
	DisableIf expression.ExprOr[bool]
	Data      helper.Props
}

// FromJson parse one action. A missing type is fatal: there is no safe
// behavior to approximate for an untyped step. An unrecognized type string
// parses fine; dispatch failures are a runtime concern.
func FromJson(data map[string]interface{}) (*Action, error) {
	typ, has := helper.TryKeysString(data, "type", "actionType")
	if !has || typ == "" {
		return nil, errors.Errorf("action: missing type")
	}

	a := &Action{Type: typ}
	a.ID, _ = helper.TryKeysString(data, "actionId", "id")

	if raw, has := helper.TryKeys(data, "disableActionIf"); has {
		a.DisableIf = expression.FromValue[bool](raw)
	}

	payload, _ := data["data"].(map[string]interface{})
	a.Data = helper.NewProps(payload)
	return a, nil
}

// Flow an ordered sequence of actions attached to one trigger
type Flow struct {
	Actions       []*Action
	Inkwell       bool
	AnalyticsData []map[string]interface{}
}

// FlowFromJson parse a flow. Returns nil, not an empty flow, when both the
// steps and the analytics data are empty: callers skip attaching gesture
// handlers entirely on nil, so the distinction is load-bearing.
func FlowFromJson(data map[string]interface{}) (*Flow, error) {
	if data == nil {
		return nil, nil
	}

	flow := &Flow{Inkwell: true}
	if inkwell, ok := data["inkWell"].(bool); ok {
		flow.Inkwell = inkwell
	}

	rawSteps, _ := helper.TryKeys(data, "steps", "actions")
	if steps, ok := rawSteps.([]interface{}); ok {
		for i, rawStep := range steps {
			step, ok := rawStep.(map[string]interface{})
			if !ok {
				log.Trace("action flow: step %d is not an object, dropped", i)
				continue
			}
			a, err := FromJson(step)
			if err != nil {
				return nil, err
			}
			flow.Actions = append(flow.Actions, a)
		}
	}

	if rawAnalytics, ok := data["analyticsData"].([]interface{}); ok {
		for _, rawItem := range rawAnalytics {
			if item, ok := rawItem.(map[string]interface{}); ok {
				flow.AnalyticsData = append(flow.AnalyticsData, item)
			}
		}
	}

	if len(flow.Actions) == 0 && len(flow.AnalyticsData) == 0 {
		return nil, nil
	}
	return flow, nil
}
