// store_datastore.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements a Store on top of Google Cloud Datastore,
// for use by the App Engine service. Each canonical key is an
// entity holding the list of words that share it.

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
	"errors"
	"sort"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/avast/retry-go/v4"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	anagramKeyKind   = "AnagramKey"
	anagramIndexKind = "AnagramIndex"
	// Datastore limits on the number of entities per call
	datastorePutLimit = 500
	datastoreGetLimit = 1000
	// Number of concurrent PutMulti calls while building
	datastoreWriters = 4
)

// keyEntity is the Datastore entity stored for each canonical key
type keyEntity struct {
	Words []string `datastore:"words,noindex"`
}

// indexEntity marks a completely built index
type indexEntity struct {
	Built time.Time `datastore:"built"`
}

// DatastoreStore is a Store kept in Google Cloud Datastore,
// within a namespace derived from the wordlist
type DatastoreStore struct {
	client    *datastore.Client
	namespace string
}

// OpenDatastoreStore creates a Datastore client for the given project.
// If the DATASTORE_EMULATOR_HOST environment variable is set, the
// client connects to the emulator.
func OpenDatastoreStore(ctx context.Context, projectID, namespace string) (*DatastoreStore, error) {
	var client *datastore.Client
	err := retry.Do(
		func() error {
			var err error
			client, err = datastore.NewClient(ctx, projectID)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, storageError("creating datastore client", err)
	}
	return &DatastoreStore{client: client, namespace: namespace}, nil
}

func (s *DatastoreStore) entityKey(k Key) *datastore.Key {
	key := datastore.NameKey(anagramKeyKind, string(k), nil)
	key.Namespace = s.namespace
	return key
}

func (s *DatastoreStore) markerKey() *datastore.Key {
	key := datastore.NameKey(anagramIndexKind, "built", nil)
	key.Namespace = s.namespace
	return key
}

func (s *DatastoreStore) Built(ctx context.Context) (bool, error) {
	var marker indexEntity
	err := s.client.Get(ctx, s.markerKey(), &marker)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return false, nil
	}
	if err != nil {
		return false, storageError("reading build marker", err)
	}
	return true, nil
}

// Put writes the buckets in parallel chunks. Each bucket replaces
// the entity of its key, so every key must occur in one bucket only,
// which is how Index.Build() groups them.
func (s *DatastoreStore) Put(ctx context.Context, buckets []Bucket) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(datastoreWriters)
	for _, chunk := range lo.Chunk(buckets, datastorePutLimit) {
		keys := make([]*datastore.Key, len(chunk))
		entities := make([]*keyEntity, len(chunk))
		for i, b := range chunk {
			keys[i] = s.entityKey(b.Key)
			entities[i] = &keyEntity{Words: b.Words}
		}
		g.Go(func() error {
			_, err := s.client.PutMulti(gctx, keys, entities)
			return err
		})
	}
	return storageError("writing batch", g.Wait())
}

func (s *DatastoreStore) MarkBuilt(ctx context.Context) error {
	_, err := s.client.Put(ctx, s.markerKey(), &indexEntity{Built: time.Now().UTC()})
	return storageError("writing build marker", err)
}

func (s *DatastoreStore) Lookup(ctx context.Context, keys []Key) ([]string, error) {
	result := make([]string, 0)
	for _, chunk := range lo.Chunk(lo.Uniq(keys), datastoreGetLimit) {
		dsKeys := lo.Map(chunk, func(k Key, _ int) *datastore.Key { return s.entityKey(k) })
		entities := make([]keyEntity, len(chunk))
		err := s.client.GetMulti(ctx, dsKeys, entities)
		if err != nil {
			var multiErr datastore.MultiError
			if !errors.As(err, &multiErr) {
				return nil, storageError("looking up keys", err)
			}
			for i, e := range multiErr {
				if e == nil {
					result = append(result, entities[i].Words...)
				} else if !errors.Is(e, datastore.ErrNoSuchEntity) {
					return nil, storageError("looking up key "+string(chunk[i]), e)
				}
			}
			continue
		}
		for _, entity := range entities {
			result = append(result, entity.Words...)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (s *DatastoreStore) Close() error {
	return storageError("closing datastore client", s.client.Close())
}
