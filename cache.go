// cache.go
//
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf

// This file implements the LRU cache that sits in front of
// the Store of a word index.

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package skrafl

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
)

// lookupCache encapsulates a simple LRU cached map of
// canonical keys to the (sorted) dictionary words sharing them.
// Keys without any words are cached too, as empty slices.
// A lookupCache with a size of zero or less caches nothing.
type lookupCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

// Init initializes an empty lookupCache
func (lc *lookupCache) Init(size int) {
	lc.mux.Lock()
	defer lc.mux.Unlock()
	if size <= 0 {
		lc.lru = nil
		return
	}
	lc.lru, _ = simplelru.NewLRU(size, nil)
}

// Get returns the cached words for a key, if present
func (lc *lookupCache) Get(key Key) ([]string, bool) {
	lc.mux.Lock()
	defer lc.mux.Unlock()
	if lc.lru == nil {
		return nil, false
	}
	if words, ok := lc.lru.Get(key); ok {
		return words.([]string), true
	}
	return nil, false
}

// Add stores the words for a key, evicting the
// least recently used key if the cache is full
func (lc *lookupCache) Add(key Key, words []string) {
	lc.mux.Lock()
	defer lc.mux.Unlock()
	if lc.lru != nil {
		lc.lru.Add(key, words)
	}
}

// Purge empties the cache
func (lc *lookupCache) Purge() {
	lc.mux.Lock()
	defer lc.mux.Unlock()
	if lc.lru != nil {
		lc.lru.Purge()
	}
}

// Len returns the number of cached keys
func (lc *lookupCache) Len() int {
	lc.mux.Lock()
	defer lc.mux.Unlock()
	if lc.lru == nil {
		return 0
	}
	return lc.lru.Len()
}
