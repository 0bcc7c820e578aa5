// ABOUTME: Index entry persistence for SQLite
// ABOUTME: Stores vectors as BLOBs with idempotent upsert by content hash
package sqlite

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/harper/docvector/internal/models"
)

// Entry is a persisted (id, vector, text, metadata) tuple
type Entry struct {
	ID       string
	Text     string
	Vector   []float64
	Metadata models.ChunkMetadata
}

// EntryStore handles index entry persistence
type EntryStore struct {
	db *DB
}

// NewEntryStore creates a new EntryStore
func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

// Upsert writes or overwrites one entry by id. The single statement makes
// each entry atomic: no partial tuple state is ever visible. Re-upserting
// an id keeps its original rowid, preserving insertion order.
func (s *EntryStore) Upsert(e Entry) error {
	if len(e.Vector) == 0 {
		return fmt.Errorf("entry %s has no vector", e.ID)
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (id, source_id, chunk_index, chunk_size, text, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_id = excluded.source_id,
			chunk_index = excluded.chunk_index,
			chunk_size = excluded.chunk_size,
			text = excluded.text,
			vector = excluded.vector
	`, e.ID, e.Metadata.SourceID, e.Metadata.ChunkIndex, e.Metadata.ChunkSize,
		e.Text, vectorToBlob(e.Vector), time.Now())

	return err
}

// All returns every stored entry in insertion (rowid) order
func (s *EntryStore) All() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, source_id, chunk_index, chunk_size, text, vector
		FROM entries
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			blob []byte
		)
		if err := rows.Scan(&e.ID, &e.Metadata.SourceID, &e.Metadata.ChunkIndex,
			&e.Metadata.ChunkSize, &e.Text, &blob); err != nil {
			return nil, err
		}
		e.Vector = blobToVector(blob)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries
func (s *EntryStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count)
	return count, err
}

// CountBySource returns the number of entries ingested from one source
func (s *EntryStore) CountBySource(sourceID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE source_id = ?`, sourceID).Scan(&count)
	return count, err
}

// SourceCount pairs a source identifier with its stored entry count
type SourceCount struct {
	SourceID string
	Count    int
}

// SourceCounts returns entry counts grouped by source, ordered by source id
func (s *EntryStore) SourceCounts() ([]SourceCount, error) {
	rows, err := s.db.Query(`SELECT source_id, COUNT(*) FROM entries GROUP BY source_id ORDER BY source_id`)
	if err != nil {
		return nil, fmt.Errorf("querying source counts: %w", err)
	}
	defer rows.Close()

	var counts []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.SourceID, &sc.Count); err != nil {
			return nil, fmt.Errorf("scanning source count: %w", err)
		}
		counts = append(counts, sc)
	}

	return counts, rows.Err()
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
