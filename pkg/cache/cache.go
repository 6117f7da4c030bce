/*
Package cache provides a keyed byte store with per-entry TTL, persisted to
a single JSON file so fresh API responses survive process restarts.
*/
package cache

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

var version = "v1"

// Store is the minimal cache capability the gateway depends on.
type Store interface {
	// Get returns the value for key if present and not expired.
	Get(key string) ([]byte, bool)
	// Set stores value under key for the given ttl.
	Set(key string, value []byte, ttl time.Duration) error
}

// Noop is a Store that never caches anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(string) ([]byte, bool) { return nil, false }

// Set discards the value.
func (Noop) Set(string, []byte, time.Duration) error { return nil }

type collection struct {
	Version string
	Items   map[string]item
}

type item struct {
	Value      []byte
	Expiration int64
}

// FileStore keeps entries in memory and mirrors them to a JSON file after
// every write. Entries loaded from an older format version are dropped.
type FileStore struct {
	mu       sync.Mutex
	cache    *gocache.Cache
	filePath string
}

// NewFileStore opens (or creates) the cache file at filePath and loads any
// still-valid entries from it.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		return nil, errors.New("cache file path is empty")
	}

	data := collection{Version: version, Items: make(map[string]item)}

	raw, err := os.ReadFile(filePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to read cache file %s", filePath)
	}
	if len(raw) != 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, errors.Wrapf(err, "failed to decode cache file %s", filePath)
		}
	}

	items := make(map[string]gocache.Item, len(data.Items))
	if data.Version == version {
		for key, it := range data.Items {
			items[key] = gocache.Item{
				Object:     it.Value,
				Expiration: it.Expiration,
			}
		}
	}

	return &FileStore{
		cache:    gocache.NewFrom(gocache.NoExpiration, 10*time.Minute, items),
		filePath: filePath,
	}, nil
}

// Get returns the cached value for key, missing on expired entries.
func (s *FileStore) Get(key string) ([]byte, bool) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	value, ok := v.([]byte)
	return value, ok
}

// Set stores the value and rewrites the backing file.
func (s *FileStore) Set(key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Set(key, value, ttl)
	return s.save()
}

func (s *FileStore) save() error {
	items := s.cache.Items()
	data := collection{Version: version, Items: make(map[string]item, len(items))}
	for key, it := range items {
		value, ok := it.Object.([]byte)
		if !ok {
			continue
		}
		data.Items[key] = item{Value: value, Expiration: it.Expiration}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to encode cache file")
	}
	if err := os.WriteFile(s.filePath, raw, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write cache file %s", s.filePath)
	}
	return nil
}
