// Package lru an ARC-backed Store for the parsed-definition cache.
package lru

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Cache the LRU store
type Cache struct {
	lru *lru.ARCCache
}

// New create a new LRU cache
func New(size int) (*Cache, error) {
	arc, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: arc}, nil
}

// Get looks up a key's value from the cache
func (cache *Cache) Get(key string) (interface{}, bool) {
	return cache.lru.Get(key)
}

// Set adds a value to the cache
func (cache *Cache) Set(key string, value interface{}) {
	cache.lru.Add(key, value)
}

// Del purges a key from the cache
func (cache *Cache) Del(key string) {
	cache.lru.Remove(key)
}

// Has check if the key exists ( without updating recency or frequency )
func (cache *Cache) Has(key string) bool {
	_, has := cache.lru.Peek(key)
	return has
}

// Len returns the number of cached entries
func (cache *Cache) Len() int {
	return cache.lru.Len()
}

// Keys returns all the cached keys
func (cache *Cache) Keys() []string {
	keys := cache.lru.Keys()
	res := make([]string, 0, len(keys))
	for _, key := range keys {
		keystr, ok := key.(string)
		if !ok {
			keystr = fmt.Sprintf("%v", key)
		}
		res = append(res, keystr)
	}
	return res
}

// Clear purges all cached entries
func (cache *Cache) Clear() {
	cache.lru.Purge()
}
