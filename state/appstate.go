package state

import (
	"sync"

	"github.com/go-errors/errors"

	"github.com/duiengine/dui/variable"
)

// Descriptor one app-state entry as declared in the config document
type Descriptor struct {
	Key        string
	Type       variable.DataType
	Default    interface{}
	Persist    bool
	StreamName string
}

// DescriptorFromJson parse one app-state descriptor. An unknown type
// string is fatal here: there is no safe behavior to approximate for a
// declaration we do not understand.
func DescriptorFromJson(name string, data map[string]interface{}) (Descriptor, error) {
	v, err := variable.FromJson(name, data)
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{
		Key:        name,
		Type:       v.Type,
		Default:    variable.Create(v),
		StreamName: name + "Stream",
	}
	if persist, ok := data["persist"].(bool); ok {
		d.Persist = persist
	}
	if stream, ok := data["streamName"].(string); ok && stream != "" {
		d.StreamName = stream
	}
	return d, nil
}

// AppState the process-wide registry of reactive values, exposed into the
// expression scope under the reserved "appState" namespace. Constructed
// explicitly and passed to whatever needs it; one instance per running app
// session.
type AppState struct {
	ProjectID string

	mutex       sync.RWMutex
	storage     Storage
	values      map[string]*ReactiveValue
	observer    Observer
	initialized bool
}

// NewAppState create an empty, uninitialized registry. storage may be nil
// when no descriptor asks for persistence.
func NewAppState(projectID string, storage Storage) *AppState {
	return &AppState{ProjectID: projectID, storage: storage}
}

// SetObserver attach a debugging observer applied to every value,
// including values created by later Init calls
func (app *AppState) SetObserver(observer Observer) {
	app.mutex.Lock()
	defer app.mutex.Unlock()
	app.observer = observer
	for _, rv := range app.values {
		rv.SetObserver(observer)
	}
}

// Init build the store from the descriptor list. Not idempotent and not
// additive: any existing store is disposed first, so re-initialization
// wipes transient values. Duplicate keys abort the whole call.
func (app *AppState) Init(descriptors []Descriptor) error {
	app.mutex.Lock()
	defer app.mutex.Unlock()

	for _, rv := range app.values {
		rv.Dispose()
	}

	values := make(map[string]*ReactiveValue, len(descriptors))
	for _, d := range descriptors {
		if _, has := values[d.Key]; has {
			return errors.Errorf("appstate: duplicate key %s", d.Key)
		}

		var rv *ReactiveValue
		if d.Persist && app.storage != nil {
			rv = NewPersistedReactiveValue(d.Default, d.StreamName, d.Key, "appState", app.ProjectID, d.Key, app.storage)
		} else {
			rv = NewReactiveValue(d.Default, d.StreamName, d.Key, "appState")
		}
		rv.SetObserver(app.observer)
		values[d.Key] = rv
	}

	app.values = values
	app.initialized = true
	return nil
}

// Get the reactive value for a key. Errors when the store was never
// initialized or the key is unknown; defaults were resolved at
// descriptor-parse time, there is no silent-default path here.
func (app *AppState) Get(key string) (*ReactiveValue, error) {
	app.mutex.RLock()
	defer app.mutex.RUnlock()
	if !app.initialized {
		return nil, errors.Errorf("appstate: not initialized")
	}
	rv, has := app.values[key]
	if !has {
		return nil, errors.Errorf("appstate: unknown key %s", key)
	}
	return rv, nil
}

// Value the current value for a key
func (app *AppState) Value(key string) (interface{}, error) {
	rv, err := app.Get(key)
	if err != nil {
		return nil, err
	}
	return rv.Value(), nil
}

// Update apply a new value for a key, reporting whether it changed
func (app *AppState) Update(key string, value interface{}) (bool, error) {
	rv, err := app.Get(key)
	if err != nil {
		return false, err
	}
	return rv.Update(value), nil
}

// All a snapshot of the registry, keyed by descriptor key
func (app *AppState) All() map[string]*ReactiveValue {
	app.mutex.RLock()
	defer app.mutex.RUnlock()
	values := make(map[string]*ReactiveValue, len(app.values))
	for key, rv := range app.values {
		values[key] = rv
	}
	return values
}

// Initialized check if Init has run
func (app *AppState) Initialized() bool {
	app.mutex.RLock()
	defer app.mutex.RUnlock()
	return app.initialized
}

// Dispose tear the store down, dropping all stream subscribers
func (app *AppState) Dispose() {
	app.mutex.Lock()
	defer app.mutex.Unlock()
	for _, rv := range app.values {
		rv.Dispose()
	}
	app.values = nil
	app.initialized = false
}
