package store

import "github.com/duiengine/dui/state"

// StringAdapter exposes a Store as the string-keyed persistence consumed
// by persisted app-state values
type StringAdapter struct {
	store Store
}

// NewStringAdapter wrap a store
func NewStringAdapter(s Store) *StringAdapter {
	return &StringAdapter{store: s}
}

// GetString read a stored string
func (adapter *StringAdapter) GetString(key string) (string, bool) {
	value, has := adapter.store.Get(key)
	if !has {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// SetString write a string
func (adapter *StringAdapter) SetString(key string, value string) error {
	adapter.store.Set(key, value)
	return nil
}

// Remove delete a key
func (adapter *StringAdapter) Remove(key string) error {
	adapter.store.Del(key)
	return nil
}

var _ state.Storage = (*StringAdapter)(nil)
