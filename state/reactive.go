package state

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/log"
)

// Storage synchronous key/value persistence consumed by persisted reactive
// values. The core assumes nothing about the backing beyond these three
// operations.
type Storage interface {
	GetString(key string) (string, bool)
	SetString(key string, value string) error
	Remove(key string) error
}

// Signal an explicit observer list: the change-stream primitive exposed
// into the expression scope under a value's stream name
type Signal struct {
	Name string

	mutex       sync.Mutex
	subscribers map[int]func(interface{})
	nextID      int
}

// NewSignal create a signal
func NewSignal(name string) *Signal {
	return &Signal{Name: name, subscribers: map[int]func(interface{}){}}
}

// Subscribe register a handler, returning a handle for Unsubscribe
func (signal *Signal) Subscribe(fn func(interface{})) int {
	signal.mutex.Lock()
	defer signal.mutex.Unlock()
	id := signal.nextID
	signal.nextID++
	signal.subscribers[id] = fn
	return id
}

// Unsubscribe drop one handler
func (signal *Signal) Unsubscribe(id int) {
	signal.mutex.Lock()
	defer signal.mutex.Unlock()
	delete(signal.subscribers, id)
}

// Emit hand value to every subscriber
func (signal *Signal) Emit(value interface{}) {
	signal.mutex.Lock()
	fns := make([]func(interface{}), 0, len(signal.subscribers))
	for _, fn := range signal.subscribers {
		fns = append(fns, fn)
	}
	signal.mutex.Unlock()
	for _, fn := range fns {
		fn(value)
	}
}

// Close drop all subscribers
func (signal *Signal) Close() {
	signal.mutex.Lock()
	defer signal.mutex.Unlock()
	signal.subscribers = map[int]func(interface{}){}
}

// Observer a process-wide debugging hook fired on every applied update
type Observer func(streamName string, oldValue interface{}, newValue interface{})

// ReactiveValue one observable keyed value in the global app state
type ReactiveValue struct {
	StreamName string
	StateID    string
	Namespace  string

	mutex    sync.Mutex
	value    interface{}
	signal   *Signal
	observer Observer
	persist  func(interface{})
}

// NewReactiveValue create a reactive value
func NewReactiveValue(value interface{}, streamName string, stateID string, namespace string) *ReactiveValue {
	return &ReactiveValue{
		StreamName: streamName,
		StateID:    stateID,
		Namespace:  namespace,
		value:      value,
		signal:     NewSignal(streamName),
	}
}

// Value the current value
func (rv *ReactiveValue) Value() interface{} {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	return rv.value
}

// Stream the change-stream handle
func (rv *ReactiveValue) Stream() *Signal {
	return rv.signal
}

// SetObserver attach the debugging observer
func (rv *ReactiveValue) SetObserver(observer Observer) {
	rv.mutex.Lock()
	defer rv.mutex.Unlock()
	rv.observer = observer
}

// Update apply a new value. Equal values (strict comparison, no deep
// equality) are a no-op returning false; uncomparable values such as maps
// always count as changed. Subscribers are notified after the value is
// assigned.
func (rv *ReactiveValue) Update(value interface{}) bool {
	rv.mutex.Lock()
	if strictEqual(rv.value, value) {
		rv.mutex.Unlock()
		return false
	}
	old := rv.value
	rv.value = value
	observer := rv.observer
	persist := rv.persist
	rv.mutex.Unlock()

	if persist != nil {
		persist(value)
	}
	if observer != nil {
		observer(rv.StreamName, old, value)
	}
	rv.signal.Emit(value)
	return true
}

// Dispose drop all stream subscribers
func (rv *ReactiveValue) Dispose() {
	rv.signal.Close()
}

// NewPersistedReactiveValue create a reactive value backed by storage under
// projectID + "_app_state_" + key. A stored value overrides the initial
// one at construction; every applied update writes through.
func NewPersistedReactiveValue(value interface{}, streamName string, stateID string, namespace string, projectID string, key string, storage Storage) *ReactiveValue {
	storageKey := projectID + "_app_state_" + key

	if stored, has := storage.GetString(storageKey); has {
		var decoded interface{}
		if err := jsoniter.UnmarshalFromString(stored, &decoded); err != nil {
			log.Warn("appstate: stored value for %s is not valid JSON, using default: %s", key, err.Error())
		} else {
			value = decoded
		}
	}

	rv := NewReactiveValue(value, streamName, stateID, namespace)
	rv.persist = func(v interface{}) {
		encoded, err := jsoniter.MarshalToString(v)
		if err != nil {
			log.Error("appstate: cannot serialize %s for persistence: %s", key, err.Error())
			return
		}
		if err := storage.SetString(storageKey, encoded); err != nil {
			log.Error("appstate: cannot persist %s: %s", key, err.Error())
		}
	}
	return rv
}

// strictEqual reference/primitive equality only. Uncomparable kinds report
// false so the update always applies.
func strictEqual(a interface{}, b interface{}) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
