// store_sqlite.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements a Store on top of an SQLite database file,
// which is the default persistence for the word index.

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
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	_ "modernc.org/sqlite"
)

// SQLiteFileName is the name of the index database,
// located in the same folder as the wordlist
const SQLiteFileName = "dictionary.sqlite"

// maxLookupParams caps the number of bound parameters
// in a single lookup query
const maxLookupParams = 500

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word VARCHAR(15) NOT NULL UNIQUE,
	key TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS words_key_index ON words (key);
CREATE TABLE IF NOT EXISTS meta (
	name TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStore is a Store kept in an SQLite database file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens the SQLite index at the given path,
// creating the file and its schema if they do not exist
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageError("creating index folder", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageError("opening "+path, err)
	}
	// SQLite serializes writers anyway; a single connection keeps
	// the pragmas below in effect for every statement
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, storageError("setting pragmas", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, storageError("creating schema", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the location of the database file
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Built(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE name = 'built'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storageError("reading build marker", err)
	}
	return true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, buckets []Bucket) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("beginning transaction", err)
	}
	defer tx.Rollback()
	// Wordlists may contain the same word in different cases;
	// such duplicates are ignored
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO words (word, key) VALUES (?, ?)`)
	if err != nil {
		return storageError("preparing insert", err)
	}
	defer stmt.Close()
	for _, b := range buckets {
		for _, word := range b.Words {
			if _, err := stmt.ExecContext(ctx, word, string(b.Key)); err != nil {
				return storageError("inserting "+word, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return storageError("committing batch", err)
	}
	return nil
}

func (s *SQLiteStore) MarkBuilt(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (name, value) VALUES ('built', ?)`,
		time.Now().UTC().Format(time.RFC3339))
	return storageError("writing build marker", err)
}

func (s *SQLiteStore) Lookup(ctx context.Context, keys []Key) ([]string, error) {
	result := make([]string, 0)
	for _, chunk := range lo.Chunk(lo.Uniq(keys), maxLookupParams) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		args := lo.Map(chunk, func(k Key, _ int) any { return string(k) })
		rows, err := s.db.QueryContext(ctx,
			`SELECT word FROM words WHERE key IN (`+placeholders+`) ORDER BY word`, args...)
		if err != nil {
			return nil, storageError("looking up keys", err)
		}
		for rows.Next() {
			var word string
			if err := rows.Scan(&word); err != nil {
				rows.Close()
				return nil, storageError("reading word", err)
			}
			result = append(result, word)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, storageError("reading words", err)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (s *SQLiteStore) Close() error {
	return storageError("closing "+s.path, s.db.Close())
}
