package sqlite

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestRunMigrations(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	migrationsFS := fstest.MapFS{
		"0001_init.sql": &fstest.MapFile{
			Data: []byte(`CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`),
		},
		"0002_colors.sql": &fstest.MapFile{
			Data: []byte(`ALTER TABLE widgets ADD COLUMN color TEXT;`),
		},
		"notes.txt": &fstest.MapFile{
			Data: []byte(`ignored`),
		},
	}

	if err := RunMigrations(db, migrationsFS); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	// Both migrations applied in order
	if _, err := db.Exec(`INSERT INTO widgets (name, color) VALUES ('a', 'red')`); err != nil {
		t.Fatalf("schema incomplete after migrations: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("schema_migrations rows = %d, want 2", count)
	}

	// Re-running is a no-op
	if err := RunMigrations(db, migrationsFS); err != nil {
		t.Fatalf("RunMigrations() rerun error = %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("Failed to query schema_migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("schema_migrations rows after rerun = %d, want 2", count)
	}
}
