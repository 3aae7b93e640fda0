// Package store provides the key-value backings used by the engine: an
// in-memory store for page-session data and tests, and an LRU store for
// the parsed-definition cache.
package store

// Store The interface of a key-value store
type Store interface {
	Get(key string) (value interface{}, ok bool)
	Set(key string, value interface{})
	Del(key string)
	Has(key string) bool
	Len() int
	Keys() []string
	Clear()
}
