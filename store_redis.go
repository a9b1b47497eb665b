// store_redis.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements a Store on top of Redis, keeping one
// set of words per canonical key.

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
	"sort"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// RedisOptions holds the connection parameters of a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore is a Store kept in Redis. All keys of an index share
// the prefix skrafl:<namespace>, so several wordlists can be
// indexed in the same Redis database.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// OpenRedisStore connects to Redis, retrying a few times
// before giving up
func OpenRedisStore(ctx context.Context, opts RedisOptions, namespace string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	err := retry.Do(
		func() error {
			return rdb.Ping(ctx).Err()
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Uint("attempt", n).Err(err).Str("addr", opts.Addr).Msg("redis ping failed")
		}),
	)
	if err != nil {
		rdb.Close()
		return nil, storageError("connecting to redis at "+opts.Addr, err)
	}
	return &RedisStore{rdb: rdb, prefix: "skrafl:" + namespace}, nil
}

func (s *RedisStore) builtKey() string {
	return s.prefix + ":built"
}

func (s *RedisStore) wordsKey(k Key) string {
	return s.prefix + ":k:" + string(k)
}

func (s *RedisStore) Built(ctx context.Context) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.builtKey()).Result()
	if err != nil {
		return false, storageError("reading build marker", err)
	}
	return n == 1, nil
}

func (s *RedisStore) Put(ctx context.Context, buckets []Bucket) error {
	pipe := s.rdb.Pipeline()
	for _, b := range buckets {
		if len(b.Words) == 0 {
			continue
		}
		members := lo.Map(b.Words, func(w string, _ int) any { return w })
		pipe.SAdd(ctx, s.wordsKey(b.Key), members...)
	}
	_, err := pipe.Exec(ctx)
	return storageError("writing batch", err)
}

func (s *RedisStore) MarkBuilt(ctx context.Context) error {
	err := s.rdb.Set(ctx, s.builtKey(), time.Now().UTC().Format(time.RFC3339), 0).Err()
	return storageError("writing build marker", err)
}

func (s *RedisStore) Lookup(ctx context.Context, keys []Key) ([]string, error) {
	keys = lo.Uniq(keys)
	result := make([]string, 0)
	if len(keys) == 0 {
		return result, nil
	}
	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.SMembers(ctx, s.wordsKey(k))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, storageError("looking up keys", err)
	}
	for _, cmd := range cmds {
		result = append(result, cmd.Val()...)
	}
	sort.Strings(result)
	return result, nil
}

func (s *RedisStore) Close() error {
	return storageError("closing redis client", s.rdb.Close())
}
