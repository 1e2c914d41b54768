package db

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"002_directory.sql": {Data: []byte("CREATE TABLE directory_users ();")},
		"001_cases.sql":     {Data: []byte("CREATE TABLE cases ();")},
		"010_indexes.sql":   {Data: []byte("CREATE INDEX idx ON cases (id);")},
	}

	m := NewMigrator(nil, fsys)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}
	wantOrder := []int{1, 2, 10}
	for i, mig := range migrations {
		if mig.Version != wantOrder[i] {
			t.Errorf("position %d: expected version %d, got %d", i, wantOrder[i], mig.Version)
		}
	}
	if migrations[0].SQL != "CREATE TABLE cases ();" {
		t.Errorf("unexpected SQL for first migration: %q", migrations[0].SQL)
	}
}

func TestLoadMigrations_SkipsUnversionedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"001_cases.sql": {Data: []byte("CREATE TABLE cases ();")},
		"notes.sql":     {Data: []byte("-- scratch")},
		"README.md":     {Data: []byte("docs")},
	}

	m := NewMigrator(nil, fsys)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(migrations) != 1 || migrations[0].Name != "001_cases.sql" {
		t.Fatalf("expected only the versioned file, got %+v", migrations)
	}
}
