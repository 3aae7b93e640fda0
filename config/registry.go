package config

import (
	"fmt"

	"github.com/yaoapp/kun/log"

	"github.com/duiengine/dui/store"
	"github.com/duiengine/dui/store/lru"
	"github.com/duiengine/dui/vwidget"
)

// cacheSize parsed definitions kept hot. Live apps rarely exceed a few
// hundred pages and components combined.
const cacheSize = 512

// Registry the parsed-definition front of a config document. Definitions
// parse on first use and are cached by id and document version; trees
// handed out are read-only after parse and shared between renders.
type Registry struct {
	config *DUIConfig
	cache  store.Store
}

// NewRegistry create a registry over a parsed document
func NewRegistry(config *DUIConfig) (*Registry, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{config: config, cache: cache}, nil
}

// Config the underlying document
func (registry *Registry) Config() *DUIConfig {
	return registry.config
}

// Page the parsed definition of a page
func (registry *Registry) Page(id string) (*PageDef, error) {
	key := registry.cacheKey("page", id)
	if cached, has := registry.cache.Get(key); has {
		return cached.(*PageDef), nil
	}

	page, err := registry.config.parsePage(id)
	if err != nil {
		return nil, err
	}
	registry.cache.Set(key, page)
	return page, nil
}

// Component the parsed definition of a component. Implements
// vwidget.ComponentSource for the builder.
func (registry *Registry) Component(id string) (*vwidget.ComponentDef, bool) {
	key := registry.cacheKey("component", id)
	if cached, has := registry.cache.Get(key); has {
		return cached.(*vwidget.ComponentDef), true
	}

	def, err := registry.config.parseComponent(id)
	if err != nil {
		// the builder only sees the boolean, so the parse failure has to
		// surface here
		log.Error("component %s: %s", id, err.Error())
		return nil, false
	}
	registry.cache.Set(key, def)
	return def, true
}

func (registry *Registry) cacheKey(kind string, id string) string {
	return fmt.Sprintf("%s:%d:%s", kind, registry.config.Version, id)
}

var _ vwidget.ComponentSource = (*Registry)(nil)
