package db

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "0002_add_indexes.sql", "CREATE INDEX x ON t (a);")
	writeMigration(t, dir, "0001_init.sql", "CREATE TABLE t (a INT);")
	writeMigration(t, dir, "0010_later.sql", "ALTER TABLE t ADD b INT;")
	writeMigration(t, dir, "README.md", "not a migration")
	writeMigration(t, dir, "notes.sql", "no numeric prefix")

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("load: %v", err)
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
	if migrations[0].SQL != "CREATE TABLE t (a INT);" {
		t.Errorf("unexpected SQL for first migration: %q", migrations[0].SQL)
	}
}

func TestLoadMigrations_MissingDir(t *testing.T) {
	m := NewMigrator(nil, "/nonexistent/migrations")
	if _, err := m.LoadMigrations(); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
