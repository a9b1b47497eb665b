// config.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the configuration of the command line
// tool and the HTTP service: an optional .env file, an optional
// YAML file and SKRAFL_* environment variables, in that order.

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
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendDatastore = "datastore"
	BackendMemory    = "memory"
)

// WordlistFileName and LetterPointsFileName are the names of
// the required files in a data folder
const (
	WordlistFileName     = "wordlist.txt"
	LetterPointsFileName = "letterpoints.txt"
	CurrentBoardFileName = "current.board"
)

// StoreConfig selects and configures the Store of the word index
type StoreConfig struct {
	Backend          string `yaml:"backend"`
	RedisAddr        string `yaml:"redis_addr"`
	RedisPassword    string `yaml:"redis_password"`
	RedisDB          int    `yaml:"redis_db"`
	DatastoreProject string `yaml:"datastore_project"`
}

// Config holds the settings of the command line tool and the service
type Config struct {
	DataFolder     string      `yaml:"data_folder"`
	LogLevel       string      `yaml:"log_level"`
	Port           string      `yaml:"port"`
	AccessKey      string      `yaml:"access_key"`
	AllowedOrigins string      `yaml:"allowed_origins"`
	CacheSize      int         `yaml:"cache_size"`
	MaxWildcards   int         `yaml:"max_wildcards"`
	Encoding       string      `yaml:"encoding"`
	Store          StoreConfig `yaml:"store"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		DataFolder:     "data",
		LogLevel:       "info",
		Port:           "8080",
		AllowedOrigins: "*",
		CacheSize:      DefaultCacheSize,
		MaxWildcards:   DefaultMaxWildcards,
		Encoding:       "utf-8",
		Store: StoreConfig{
			Backend:   BackendSQLite,
			RedisAddr: "localhost:6379",
		},
	}
}

// LoadConfig loads a .env file from the working directory, if
// present, then the YAML file at path (or at $SKRAFL_CONFIG if
// path is empty), if any, and finally applies SKRAFL_* environment
// variables. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	// A missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, newError(ErrInvalidInput, "cannot load .env file: %v", err)
	}
	if path == "" {
		path = os.Getenv("SKRAFL_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, newError(ErrNotFound, "cannot read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, newError(ErrInvalidInput, "cannot parse config file %v: %v", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	strs := map[string]*string{
		"SKRAFL_DATA_FOLDER":       &cfg.DataFolder,
		"SKRAFL_LOG_LEVEL":         &cfg.LogLevel,
		"SKRAFL_PORT":              &cfg.Port,
		"SKRAFL_ACCESS_KEY":        &cfg.AccessKey,
		"SKRAFL_ALLOWED_ORIGINS":   &cfg.AllowedOrigins,
		"SKRAFL_ENCODING":          &cfg.Encoding,
		"SKRAFL_STORE":             &cfg.Store.Backend,
		"SKRAFL_REDIS_ADDR":        &cfg.Store.RedisAddr,
		"SKRAFL_REDIS_PASSWORD":    &cfg.Store.RedisPassword,
		"SKRAFL_DATASTORE_PROJECT": &cfg.Store.DatastoreProject,
	}
	for name, field := range strs {
		if value, ok := os.LookupEnv(name); ok {
			*field = value
		}
	}
	ints := map[string]*int{
		"SKRAFL_CACHE_SIZE":    &cfg.CacheSize,
		"SKRAFL_MAX_WILDCARDS": &cfg.MaxWildcards,
		"SKRAFL_REDIS_DB":      &cfg.Store.RedisDB,
	}
	for name, field := range ints {
		if value, ok := os.LookupEnv(name); ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return newError(ErrInvalidInput, "%v must be an integer, got '%v'", name, value)
			}
			*field = n
		}
	}
	return nil
}

// Validate checks that the configuration is usable
func (cfg Config) Validate() error {
	switch cfg.Store.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	case BackendDatastore:
		if cfg.Store.DatastoreProject == "" {
			return newError(ErrInvalidInput, "the datastore backend requires a project id")
		}
	default:
		return newError(ErrInvalidInput, "unknown store backend '%v'", cfg.Store.Backend)
	}
	switch strings.ToLower(cfg.Encoding) {
	case "", "utf-8", "utf8":
	default:
		if !isLatin1(cfg.Encoding) {
			return newError(ErrInvalidInput, "unknown wordlist encoding '%v'", cfg.Encoding)
		}
	}
	if cfg.CacheSize < 0 {
		return newError(ErrInvalidInput, "cache size must not be negative")
	}
	if cfg.MaxWildcards < 0 || cfg.MaxWildcards > BoardSize {
		return newError(ErrInvalidInput,
			"max wildcards must be between 0 and %v, got %v", BoardSize, cfg.MaxWildcards)
	}
	return nil
}

// WordlistPath returns the location of the wordlist in the data folder
func (cfg Config) WordlistPath() string {
	return filepath.Join(cfg.DataFolder, WordlistFileName)
}

// LetterPointsPath returns the location of the letter points
// in the data folder
func (cfg Config) LetterPointsPath() string {
	return filepath.Join(cfg.DataFolder, LetterPointsFileName)
}

// IndexOptions returns the Index options implied by the configuration
func (cfg Config) IndexOptions() []IndexOption {
	return []IndexOption{WithCacheSize(cfg.CacheSize), WithEncoding(cfg.Encoding)}
}

// FinderOptions returns the Finder options implied by the configuration
func (cfg Config) FinderOptions() []FinderOption {
	return []FinderOption{WithMaxWildcards(cfg.MaxWildcards)}
}

// OpenBoard reads a Board from the data folder. The layout is read
// from layout.<name>.board in the data folder or, if there is no such
// file, from the embedded layout of that name; an empty name selects
// the default layout. The tiles laid down so far are read from
// current.board, if present.
func (cfg Config) OpenBoard(layoutName string) (*Board, error) {
	var layout io.Reader
	if layoutName == "" {
		layout = DefaultLayout()
	} else {
		data, err := os.ReadFile(filepath.Join(cfg.DataFolder, "layout."+layoutName+".board"))
		if errors.Is(err, fs.ErrNotExist) {
			data, err = EmbeddedLayout(layoutName)
		} else if err != nil {
			err = newError(ErrNotFound, "cannot read layout: %v", err)
		}
		if err != nil {
			return nil, err
		}
		layout = bytes.NewReader(data)
	}
	current, err := os.Open(filepath.Join(cfg.DataFolder, CurrentBoardFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return ParseBoard(layout, nil)
	}
	if err != nil {
		return nil, newError(ErrNotFound, "cannot read current board: %v", err)
	}
	defer current.Close()
	return ParseBoard(layout, current)
}

// OpenStore opens the configured Store for the wordlist of
// the data folder. The SQLite database is kept next to the
// wordlist; the other backends use a namespace derived
// from the wordlist location.
func (cfg Config) OpenStore(ctx context.Context) (Store, error) {
	wordlist := cfg.WordlistPath()
	var store Store
	var err error
	switch cfg.Store.Backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendRedis:
		store, err = OpenRedisStore(ctx, RedisOptions{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		}, Namespace(wordlist))
	case BackendDatastore:
		store, err = OpenDatastoreStore(ctx, cfg.Store.DatastoreProject, Namespace(wordlist))
	case BackendSQLite, "":
		store, err = OpenSQLiteStore(filepath.Join(cfg.DataFolder, SQLiteFileName))
	default:
		err = newError(ErrInvalidInput, "unknown store backend '%v'", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// OpenIndex opens the configured Store and the word index in it,
// building the index from the wordlist if required
func (cfg Config) OpenIndex(ctx context.Context, opts ...IndexOption) (*Index, error) {
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	index, err := OpenIndex(ctx, store, cfg.WordlistPath(), append(cfg.IndexOptions(), opts...)...)
	if err != nil {
		store.Close()
		return nil, err
	}
	return index, nil
}
