package store

import (
	"os"
	"path/filepath"
	"testing"
)

type payload struct {
	Name  string   `json:"name"`
	Zones []string `json:"zones"`
}

func TestOpen_PrefersSQLite(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if _, ok := s.(*sqliteStore); !ok {
		t.Fatalf("Open returned %T, want *sqliteStore", s)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store {
			s, err := openSQLite(filepath.Join(t.TempDir(), "cache.db"))
			if err != nil {
				t.Fatalf("openSQLite: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"file": func(t *testing.T) Store {
			s, err := openFile(filepath.Join(t.TempDir(), "cache.json"))
			if err != nil {
				t.Fatalf("openFile: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			var missing payload
			if s.Get("absent", &missing) {
				t.Fatalf("Get(absent) = true, want false")
			}

			want := payload{Name: "selection", Zones: []string{"Europe/London", "Asia/Tokyo"}}
			if err := s.Put("selectedZones", want); err != nil {
				t.Fatalf("Put returned error: %v", err)
			}

			var got payload
			if !s.Get("selectedZones", &got) {
				t.Fatalf("Get(selectedZones) = false, want true")
			}
			if got.Name != want.Name || len(got.Zones) != 2 || got.Zones[1] != "Asia/Tokyo" {
				t.Fatalf("Get = %#v, want %#v", got, want)
			}

			// Overwrite replaces, never appends.
			want.Zones = []string{"UTC"}
			if err := s.Put("selectedZones", want); err != nil {
				t.Fatalf("Put (overwrite) returned error: %v", err)
			}
			got = payload{}
			if !s.Get("selectedZones", &got) {
				t.Fatalf("Get after overwrite = false, want true")
			}
			if len(got.Zones) != 1 || got.Zones[0] != "UTC" {
				t.Fatalf("Get after overwrite = %#v, want single UTC entry", got)
			}
		})
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Put("lastFetchTimestamp", "2026-08-25T12:00:00Z"); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	var got string
	if !s.Get("lastFetchTimestamp", &got) {
		t.Fatalf("Get after reopen = false, want true")
	}
	if got != "2026-08-25T12:00:00Z" {
		t.Fatalf("Get after reopen = %q, want the stored timestamp", got)
	}
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not-json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := openFile(path)
	if err != nil {
		t.Fatalf("openFile returned error: %v", err)
	}

	var dest string
	if s.Get("anything", &dest) {
		t.Fatalf("Get on corrupt store = true, want false")
	}
	if err := s.Put("k", "v"); err != nil {
		t.Fatalf("Put after corruption returned error: %v", err)
	}
}

func TestFileStore_CorruptEntryReadsAsAbsent(t *testing.T) {
	s, err := openFile(filepath.Join(t.TempDir(), "cache.json"))
	if err != nil {
		t.Fatalf("openFile: %v", err)
	}
	if err := s.Put("zoneData", map[string]int{"x": 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Typed mismatch: a string cannot decode into the stored object.
	var dest []string
	if s.Get("zoneData", &dest) {
		t.Fatalf("Get with mismatched type = true, want false")
	}
}
