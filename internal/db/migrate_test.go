package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations, migrationsDir)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one migration")
	}

	data, err := fs.ReadFile(migrations, migrationsDir+"/00001_create_users.sql")
	if err != nil {
		t.Fatalf("read users migration: %v", err)
	}
	sql := string(data)
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "UNIQUE (email)"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("expected migration to contain %q", want)
		}
	}
}
