package store

import (
	"encoding/json"
	"os"
	"sync"
)

// fileStore is the fallback backend: the whole map lives in one JSON file
// that is rewritten on every Put. Durability is best-effort.
type fileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]json.RawMessage
}

func openFile(path string) (*fileStore, error) {
	s := &fileStore{
		path:    path,
		entries: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		// A corrupt file reads as an empty store rather than an error.
		_ = json.Unmarshal(raw, &s.entries)
		if s.entries == nil {
			s.entries = make(map[string]json.RawMessage)
		}
	}

	return s, nil
}

func (s *fileStore) Get(key string, dest any) bool {
	s.mu.Lock()
	raw, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (s *fileStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = raw
	return s.flushLocked()
}

func (s *fileStore) flushLocked() error {
	blob, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, blob, 0o644)
}

func (s *fileStore) Close() error {
	return nil
}
