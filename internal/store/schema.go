package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the SQLite store.
const schemaV1 = `
-- Gene catalog (write-once after catalog load)
CREATE TABLE IF NOT EXISTS genes (
    id TEXT PRIMARY KEY,
    name TEXT,
    resistance REAL NOT NULL,
    requires TEXT,  -- JSON array of prerequisite gene IDs, definition order
    position INTEGER NOT NULL,  -- catalog insertion order
    created_at TEXT NOT NULL
);

-- Strain state
CREATE TABLE IF NOT EXISTS strains (
    id TEXT PRIMARY KEY,
    resistance REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Acquired genes per strain, in acquisition order
CREATE TABLE IF NOT EXISTS strain_genome (
    strain_id TEXT NOT NULL REFERENCES strains(id) ON DELETE CASCADE,
    gene_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    acquired_at TEXT NOT NULL,
    PRIMARY KEY (strain_id, gene_id)
);
CREATE INDEX IF NOT EXISTS idx_genome_strain ON strain_genome(strain_id, position);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates the database schema if it does not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_info (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}
