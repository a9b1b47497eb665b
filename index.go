// index.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the word index, which maps canonical
// anagram keys to the dictionary words that share them.
// The index is built once from a wordlist and persisted in a
// Store, after which it is only queried.

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
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	// BatchSize is the number of keys written to the Store at a time
	BatchSize = 1000
	// DefaultCacheSize is the default number of keys held
	// in the lookup cache of an Index
	DefaultCacheSize = 4096
	// maxLineLength bounds a single wordlist line
	maxLineLength = 1024 * 1024
	// ctxCheckInterval is the number of wildcard expansions
	// between checks for a cancelled context
	ctxCheckInterval = 1024
)

// BuildStats summarizes the building of an Index from a wordlist
type BuildStats struct {
	// Lines is the number of lines read from the wordlist
	Lines int
	// Accepted is the number of distinct words indexed
	Accepted int
	// Skipped is the number of lines that were not valid words
	Skipped int
	// Duplicates is the number of valid lines repeating an earlier word
	Duplicates int
	// Keys is the number of distinct canonical keys
	Keys int
}

// Index is a handle to a word index held in a Store.
// An Index is safe for concurrent queries.
type Index struct {
	store   Store
	cache   lookupCache
	metrics *Metrics
	decoder *encoding.Decoder
}

// IndexOption configures an Index
type IndexOption func(*Index)

// WithCacheSize sets the number of canonical keys held in the
// lookup cache; zero or less disables the cache
func WithCacheSize(size int) IndexOption {
	return func(index *Index) {
		index.cache.Init(size)
	}
}

// WithMetrics makes the Index record its activity in m
func WithMetrics(m *Metrics) IndexOption {
	return func(index *Index) {
		index.metrics = m
	}
}

// WithEncoding sets the character encoding of wordlists read by
// Build(); enc is "utf-8" (the default) or "latin1"
func WithEncoding(enc string) IndexOption {
	return func(index *Index) {
		if isLatin1(enc) {
			index.decoder = charmap.ISO8859_1.NewDecoder()
		} else {
			index.decoder = nil
		}
	}
}

func isLatin1(enc string) bool {
	switch strings.ToLower(enc) {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return true
	}
	return false
}

// NewIndex returns an Index on top of the given Store,
// which may or may not have been built
func NewIndex(store Store, opts ...IndexOption) *Index {
	index := &Index{store: store}
	index.cache.Init(DefaultCacheSize)
	for _, opt := range opts {
		opt(index)
	}
	return index
}

// OpenIndex returns an Index on top of the given Store. If the Store
// does not already hold a completely built index, it is built from
// the wordlist file at wordlistPath. An existing index is reused
// as-is, without checking it against the wordlist contents.
func OpenIndex(ctx context.Context, store Store, wordlistPath string, opts ...IndexOption) (*Index, error) {
	index := NewIndex(store, opts...)
	built, err := store.Built(ctx)
	if err != nil {
		return nil, err
	}
	if built {
		log.Debug().Str("wordlist", wordlistPath).Msg("reusing existing word index")
		return index, nil
	}
	f, err := os.Open(wordlistPath)
	if err != nil {
		return nil, newError(ErrNotFound, "cannot open wordlist: %v", err)
	}
	defer f.Close()
	if _, err := index.Build(ctx, f); err != nil {
		return nil, err
	}
	return index, nil
}

// Store returns the Store behind the Index
func (index *Index) Store() Store {
	return index.store
}

// Build reads a wordlist, one word per line, and writes its valid
// words to the Store. Lines are normalized with NormalizeWord();
// lines that are then not valid words are skipped, as are duplicates.
// A batch that cannot be written is logged and the build continues,
// but the index is then not marked as built and an ErrStorage error
// is returned along with the statistics.
func (index *Index) Build(ctx context.Context, r io.Reader) (BuildStats, error) {
	var stats BuildStats
	if index.decoder != nil {
		r = transform.NewReader(r, index.decoder)
	}
	start := time.Now()
	log.Info().Msg("building word index")
	buckets := make(map[Key][]string)
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		stats.Lines++
		word := NormalizeWord(scanner.Text())
		if !ValidWord(word) {
			if word != "" {
				log.Debug().Int("line", stats.Lines).Str("word", word).Msg("skipping invalid word")
			}
			stats.Skipped++
			continue
		}
		if _, ok := seen[word]; ok {
			stats.Duplicates++
			continue
		}
		key, err := KeyOf(word)
		if err != nil {
			stats.Skipped++
			continue
		}
		seen[word] = struct{}{}
		buckets[key] = append(buckets[key], word)
		stats.Accepted++
	}
	if err := scanner.Err(); err != nil {
		return stats, storageError("reading wordlist", err)
	}
	stats.Keys = len(buckets)

	keys := lo.Keys(buckets)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var failed []error
	for _, chunk := range lo.Chunk(keys, BatchSize) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		batch := make([]Bucket, len(chunk))
		for i, k := range chunk {
			words := buckets[k]
			sort.Strings(words)
			batch[i] = Bucket{Key: k, Words: words}
		}
		if err := index.store.Put(ctx, batch); err != nil {
			log.Error().Err(err).Int("keys", len(batch)).Msg("failed to write index batch")
			failed = append(failed, err)
		}
	}
	index.cache.Purge()
	index.metrics.indexed(stats.Accepted, stats.Skipped)
	if len(failed) > 0 {
		return stats, storageError("building index", errors.Join(failed...))
	}
	if err := index.store.MarkBuilt(ctx); err != nil {
		return stats, err
	}
	log.Info().
		Int("lines", stats.Lines).
		Int("accepted", stats.Accepted).
		Int("skipped", stats.Skipped).
		Int("duplicates", stats.Duplicates).
		Int("keys", stats.Keys).
		Dur("elapsed", time.Since(start)).
		Msg("word index built")
	return stats, nil
}

// Lookup returns every indexed word whose canonical key is among
// the given keys, sorted lexicographically
func (index *Index) Lookup(ctx context.Context, keys []Key) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	keys = lo.Uniq(keys)
	result := make([]string, 0)
	misses := make([]Key, 0, len(keys))
	for _, k := range keys {
		if words, ok := index.cache.Get(k); ok {
			result = append(result, words...)
		} else {
			misses = append(misses, k)
		}
	}
	if len(misses) > 0 {
		words, err := index.store.Lookup(ctx, misses)
		if err != nil {
			return nil, err
		}
		// Regroup the fetched words by key, so that each
		// requested key can be cached, even if it has no words
		found := make(map[Key][]string, len(misses))
		for _, k := range misses {
			found[k] = []string{}
		}
		for _, word := range words {
			k, err := KeyOf(word)
			if err != nil {
				return nil, storageError("index holds invalid word '"+word+"'", err)
			}
			found[k] = append(found[k], word)
		}
		for k, ws := range found {
			index.cache.Add(k, ws)
		}
		result = append(result, words...)
	}
	sort.Strings(result)
	log.Debug().
		Int("keys", len(keys)).
		Int("cached", len(keys)-len(misses)).
		Int("words", len(result)).
		Msg("index lookup")
	index.metrics.lookup(start, len(keys)-len(misses), len(misses))
	return result, nil
}

// Anagrams returns every indexed word that is a permutation of one of
// the given surface strings, sorted lexicographically. A surface
// string consists of letters A-Z and wildcards, each of which can
// stand for any letter. All surface strings are validated before
// the index is accessed; a single invalid one fails the whole call.
// The expansion of wildcards stops with the context's error as soon
// as the context is done.
func (index *Index) Anagrams(ctx context.Context, surfaces []string) ([]string, error) {
	for _, s := range surfaces {
		if !validSurface(s) {
			return nil, newError(ErrInvalidInput,
				"'%v' is not a valid combination of 2 to %v letters or wildcards", s, BoardSize)
		}
	}
	keys := make([]Key, 0, len(surfaces))
	seen := make(map[Key]struct{})
	var err error
	visited := 0
	for _, s := range surfaces {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		visitExpansions(s, func(letters string) bool {
			visited++
			if visited%ctxCheckInterval == 0 {
				if err = ctx.Err(); err != nil {
					return false
				}
			}
			var k Key
			if k, err = KeyOf(letters); err != nil {
				return false
			}
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return index.Lookup(ctx, keys)
}
