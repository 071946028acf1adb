package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Create schema
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email VARCHAR(255) NOT NULL UNIQUE,
		username VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'viewer',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS incidents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		incident_id VARCHAR(64) NOT NULL UNIQUE,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		severity VARCHAR(20) NOT NULL,
		type VARCHAR(100) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'open',
		assignee_id INTEGER,
		risk_score REAL DEFAULT 0,
		metadata TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS threats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		threat_id VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		type VARCHAR(100) NOT NULL,
		severity VARCHAR(20) NOT NULL,
		description TEXT,
		source_ip VARCHAR(45),
		target_ip VARCHAR(45),
		confidence REAL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		metadata TEXT,
		detected_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS system_metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		metric_type VARCHAR(20) NOT NULL,
		component VARCHAR(100) NOT NULL,
		value REAL NOT NULL,
		unit VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'normal',
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS ai_insights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type VARCHAR(100) NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		severity VARCHAR(20) NOT NULL,
		confidence REAL DEFAULT 0,
		data TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS attack_paths (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(255) NOT NULL,
		severity VARCHAR(20) NOT NULL,
		nodes TEXT NOT NULL,
		edges TEXT NOT NULL,
		likelihood REAL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
