// Package memory a map-backed Store. The default persistence backing when
// the host supplies nothing platform-specific.
package memory

import "sync"

// Store the in-memory key-value store
type Store struct {
	mutex  sync.RWMutex
	values map[string]interface{}
}

// New create a store
func New() *Store {
	return &Store{values: map[string]interface{}{}}
}

// Get looks up a key's value
func (store *Store) Get(key string) (interface{}, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	value, ok := store.values[key]
	return value, ok
}

// Set adds a value to the store
func (store *Store) Set(key string, value interface{}) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.values[key] = value
}

// Del removes a key
func (store *Store) Del(key string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	delete(store.values, key)
}

// Has check if the key exists
func (store *Store) Has(key string) bool {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	_, has := store.values[key]
	return has
}

// Len returns the number of entries
func (store *Store) Len() int {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return len(store.values)
}

// Keys returns all keys
func (store *Store) Keys() []string {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	keys := make([]string, 0, len(store.values))
	for key := range store.values {
		keys = append(keys, key)
	}
	return keys
}

// Clear removes all entries
func (store *Store) Clear() {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.values = map[string]interface{}{}
}
