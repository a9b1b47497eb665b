// store.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file defines the Store interface, i.e. the persistence
// service behind the word index, and an in-memory implementation.

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
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
)

// Bucket holds all dictionary words that share a canonical key,
// i.e. that are anagrams of each other
type Bucket struct {
	Key   Key
	Words []string
}

// Store is a persisted mapping from canonical keys to words.
// A Store is written once, by Index.Build(), and read thereafter.
// Building the same Store from two processes at once is not supported.
type Store interface {
	// Built returns true if a completed index is present in the Store
	Built(ctx context.Context) (bool, error)
	// Put adds the words of the buckets to the Store;
	// words that are already present are ignored
	Put(ctx context.Context, buckets []Bucket) error
	// MarkBuilt records that the index has been completely built
	MarkBuilt(ctx context.Context) error
	// Lookup returns the words stored under any of the keys,
	// sorted lexicographically
	Lookup(ctx context.Context, keys []Key) ([]string, error)
	// Close releases the resources held by the Store
	Close() error
}

// Namespace derives a short, stable identifier from the location
// of a wordlist, for stores that are not themselves located
// next to the wordlist (such as Redis and Datastore)
func Namespace(source string) string {
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(source))
}

// MemoryStore is a Store that keeps the index in memory only.
// It is useful for tests and for short-lived indexes.
type MemoryStore struct {
	mux   sync.Mutex
	words map[Key][]string
	built bool
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{words: make(map[Key][]string)}
}

func (ms *MemoryStore) Built(ctx context.Context) (bool, error) {
	ms.mux.Lock()
	defer ms.mux.Unlock()
	return ms.built, nil
}

func (ms *MemoryStore) Put(ctx context.Context, buckets []Bucket) error {
	ms.mux.Lock()
	defer ms.mux.Unlock()
	for _, b := range buckets {
		merged := lo.Uniq(append(ms.words[b.Key], b.Words...))
		sort.Strings(merged)
		ms.words[b.Key] = merged
	}
	return nil
}

func (ms *MemoryStore) MarkBuilt(ctx context.Context) error {
	ms.mux.Lock()
	defer ms.mux.Unlock()
	ms.built = true
	return nil
}

func (ms *MemoryStore) Lookup(ctx context.Context, keys []Key) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms.mux.Lock()
	defer ms.mux.Unlock()
	result := make([]string, 0)
	for _, k := range lo.Uniq(keys) {
		result = append(result, ms.words[k]...)
	}
	sort.Strings(result)
	return result, nil
}

func (ms *MemoryStore) Close() error {
	return nil
}

// Len returns the number of words in the MemoryStore
func (ms *MemoryStore) Len() int {
	ms.mux.Lock()
	defer ms.mux.Unlock()
	count := 0
	for _, words := range ms.words {
		count += len(words)
	}
	return count
}
