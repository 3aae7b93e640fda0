package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/variable"
	"github.com/duiengine/dui/vwidget"
)

const sampleDocument = `{
	"projectId": "shop",
	"version": 3,
	"appState": {
		"theme": {"type": "string", "value": "light", "persist": true},
		"cartCount": {"type": "number"}
	},
	"pages": {
		"home": {
			"argDefs": {
				"campaign": {"type": "string", "value": "none"}
			},
			"initStateDefs": {
				"count": {"type": "number"}
			},
			"layout": {
				"type": "Column",
				"children": [
					{"type": "Text", "props": {"value": "${state.count}"}}
				]
			},
			"onPageLoadAction": {
				"steps": [{"type": "Action.setState", "data": {"updates": {"count": 1}}}]
			}
		},
		"broken": {
			"initStateDefs": {
				"oops": {"type": "hologram"}
			}
		}
	},
	"components": {
		"bad-badge": {
			"argDefs": {
				"oops": {"type": "hologram"}
			}
		},
		"price-tag": {
			"argDefs": {
				"label": {"type": "string", "value": "Price"}
			},
			"layout": {"type": "Text", "props": {"value": "${label}"}}
		}
	}
}`

func TestFromJson(t *testing.T) {
	config, err := FromJson([]byte(sampleDocument))
	assert.Nil(t, err)
	assert.Equal(t, "shop", config.ProjectID)
	assert.Equal(t, 3, config.Version)

	// app-state declarations parse eagerly
	assert.Len(t, config.AppState, 2)
	byKey := map[string]int{}
	for i, d := range config.AppState {
		byKey[d.Key] = i
	}
	theme := config.AppState[byKey["theme"]]
	assert.Equal(t, variable.TypeString, theme.Type)
	assert.Equal(t, "light", theme.Default)
	assert.True(t, theme.Persist)
	assert.Equal(t, "themeStream", theme.StreamName)

	assert.True(t, config.HasPage("home"))
	assert.False(t, config.HasPage("ghost"))
	assert.Len(t, config.PageIDs(), 2)
}

func TestFromJsonMalformed(t *testing.T) {
	_, err := FromJson([]byte("{not json"))
	assert.NotNil(t, err)

	// a malformed app-state declaration fails the whole document
	_, err = FromJson([]byte(`{"appState": {"theme": "light"}}`))
	assert.NotNil(t, err)
}

func TestFromYaml(t *testing.T) {
	config, err := FromYaml([]byte(`
projectId: shop
version: 2
pages:
  home:
    layout:
      type: Text
`))
	assert.Nil(t, err)
	assert.Equal(t, "shop", config.ProjectID)
	assert.Equal(t, 2, config.Version)
	assert.True(t, config.HasPage("home"))
}

func TestRegistryPage(t *testing.T) {
	config, err := FromJson([]byte(sampleDocument))
	assert.Nil(t, err)
	registry, err := NewRegistry(config)
	assert.Nil(t, err)

	page, err := registry.Page("home")
	assert.Nil(t, err)
	assert.Equal(t, "home", page.ID)
	assert.Len(t, page.ArgDefs, 1)
	assert.Equal(t, "campaign", page.ArgDefs[0].Name)
	assert.Len(t, page.StateDefs, 1)
	assert.NotNil(t, page.OnLoad)
	assert.Len(t, page.OnLoad.Actions, 1)

	layout, ok := page.Layout.(*vwidget.Node)
	assert.True(t, ok)
	assert.Equal(t, "Column", layout.Type)

	// second lookup returns the cached parse
	again, err := registry.Page("home")
	assert.Nil(t, err)
	assert.Same(t, page, again)

	_, err = registry.Page("ghost")
	assert.NotNil(t, err)

	// the bad declaration surfaces only when its page is touched
	_, err = registry.Page("broken")
	assert.NotNil(t, err)
}

func TestRegistryComponent(t *testing.T) {
	config, err := FromJson([]byte(sampleDocument))
	assert.Nil(t, err)
	registry, err := NewRegistry(config)
	assert.Nil(t, err)

	def, has := registry.Component("price-tag")
	assert.True(t, has)
	assert.Equal(t, "price-tag", def.ID)
	assert.Len(t, def.ArgDefs, 1)
	assert.NotNil(t, def.Layout)

	again, has := registry.Component("price-tag")
	assert.True(t, has)
	assert.Same(t, def, again)

	_, has = registry.Component("ghost")
	assert.False(t, has)
}

func TestRegistryComponentParseFailureIsLogged(t *testing.T) {
	var sink bytes.Buffer
	log.SetOutput(&sink)
	log.SetLevel(log.TraceLevel)
	defer log.SetLevel(log.ErrorLevel)

	config, err := FromJson([]byte(sampleDocument))
	assert.Nil(t, err)
	registry, err := NewRegistry(config)
	assert.Nil(t, err)

	def, has := registry.Component("bad-badge")
	assert.False(t, has)
	assert.Nil(t, def)
	assert.Contains(t, sink.String(), "bad-badge")
	assert.Contains(t, sink.String(), "hologram")
}

func TestMemorySource(t *testing.T) {
	source := &MemorySource{Data: []byte(sampleDocument)}
	config, err := source.Load()
	assert.Nil(t, err)
	assert.Equal(t, "shop", config.ProjectID)

	source = &MemorySource{Format: "yaml", Data: []byte("projectId: shop")}
	config, err = source.Load()
	assert.Nil(t, err)
	assert.Equal(t, "shop", config.ProjectID)
}

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	assert.Nil(t, os.WriteFile(path, []byte(sampleDocument), 0644))

	source := NewFileSource(path)
	config, err := source.Load()
	assert.Nil(t, err)
	assert.Equal(t, "shop", config.ProjectID)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Load()
	assert.NotNil(t, err)
}

func TestFileSourceWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	assert.Nil(t, os.WriteFile(path, []byte(`{"projectId": "shop", "version": 1}`), 0644))

	source := NewFileSource(path)
	defer source.Close()

	reloaded := make(chan *DUIConfig, 8)
	err := source.Watch(func(config *DUIConfig) {
		reloaded <- config
	})
	assert.Nil(t, err)

	// a bad intermediate save is logged and skipped, the watch stays alive
	assert.Nil(t, os.WriteFile(path, []byte(`{broken`), 0644))
	assert.Nil(t, os.WriteFile(path, []byte(`{"projectId": "shop", "version": 2}`), 0644))

	select {
	case config := <-reloaded:
		assert.Equal(t, 2, config.Version)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not deliver the reloaded document")
	}
}
