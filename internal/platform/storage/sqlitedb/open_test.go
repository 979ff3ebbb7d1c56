package sqlitedb

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOpenCreatesDirectoryAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "arena.db")
	migrations := fstest.MapFS{
		"001_init.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id TEXT PRIMARY KEY);")},
	}

	db, err := Open(context.Background(), path, migrations)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("INSERT INTO things(id) VALUES ('a')"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
}

func TestOpenRejectsMissingInputs(t *testing.T) {
	if _, err := Open(context.Background(), " ", fstest.MapFS{}); err == nil {
		t.Fatal("expected empty path error")
	}
	if _, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"), nil); err == nil {
		t.Fatal("expected missing migrations error")
	}
}

func TestOpenAppliesConnectionPragmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.db")
	db, err := Open(context.Background(), path, fstest.MapFS{
		"001_init.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE things(id TEXT PRIMARY KEY);")},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", journalMode)
	}

	var foreignKeys, busyTimeout int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("read foreign_keys: %v", err)
	}
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatalf("read busy_timeout: %v", err)
	}
	if foreignKeys != 1 || busyTimeout != 5000 {
		t.Fatalf("foreign_keys = %d, busy_timeout = %d, want 1 and 5000", foreignKeys, busyTimeout)
	}
}
