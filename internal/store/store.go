// Package store persists zoneclock's cache as a string-keyed map of
// JSON-encoded values.
//
// Open probes the sqlite backend first and silently falls back to a plain
// JSON file with identical semantics when sqlite is unavailable, trading
// durability without surfacing an error. A failed or corrupt read reports
// absent rather than failing the caller.
package store

import (
	"log"
	"os"
	"path/filepath"
)

// Store is the key-value contract the rest of the application depends on.
// Values are arbitrary JSON-serializable structures.
type Store interface {
	// Get decodes the value stored under key into dest and reports whether
	// a usable value was present. Corrupt entries read as absent.
	Get(key string, dest any) bool

	// Put stores value under key, replacing any previous entry.
	Put(key string, value any) error

	// Close releases the underlying backend.
	Close() error
}

// Open selects a backend for the given data directory: sqlite when it can
// be initialized, otherwise the JSON file fallback.
func Open(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s, err := openSQLite(filepath.Join(dir, "cache.db"))
	if err == nil {
		return s, nil
	}
	log.Printf("sqlite store unavailable, using file store: %v", err)

	return openFile(filepath.Join(dir, "cache.json"))
}
