// ABOUTME: SQLite database schema for the vector index
// ABOUTME: Creates the entries table and indexes for local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Index entries: content-addressed chunks with their embedding vectors.
-- rowid records insertion order and survives upserts, which gives the
-- stable tie-breaking order required by similarity queries.
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    source_id TEXT NOT NULL,
    chunk_index INTEGER NOT NULL,
    chunk_size INTEGER NOT NULL,
    text TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_entries_source ON entries(source_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
