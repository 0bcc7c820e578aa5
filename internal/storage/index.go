// ABOUTME: VectorIndex stores embedded chunks and answers top-k queries
// ABOUTME: Content-addressed upserts with brute-force cosine similarity search
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/harper/docvector/internal/embedding"
	"github.com/harper/docvector/internal/models"
	"github.com/harper/docvector/internal/storage/sqlite"
)

// DefaultTopK is the number of results returned when the caller asks for
// zero or fewer
const DefaultTopK = 5

// VectorIndex persists (id, vector, text, metadata) tuples and serves
// nearest-neighbor queries by cosine similarity
type VectorIndex struct {
	entries *sqlite.EntryStore
	db      *sqlite.DB
	logger  *zap.Logger
}

// Open creates a VectorIndex backed by a SQLite database inside storeDir,
// creating the directory if absent
func Open(storeDir string, logger *zap.Logger) (*VectorIndex, error) {
	db, err := sqlite.Open(storeDir)
	if err != nil {
		return nil, err
	}
	return newIndex(db, logger), nil
}

// OpenInMemory creates a transient VectorIndex (for testing)
func OpenInMemory(logger *zap.Logger) (*VectorIndex, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newIndex(db, logger), nil
}

func newIndex(db *sqlite.DB, logger *zap.Logger) *VectorIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VectorIndex{
		entries: sqlite.NewEntryStore(db),
		db:      db,
		logger:  logger,
	}
}

// Close releases the underlying database
func (vi *VectorIndex) Close() error {
	return vi.db.Close()
}

// Count returns the number of stored entries
func (vi *VectorIndex) Count() (int, error) {
	return vi.entries.Count()
}

// SourceCounts returns per-source entry counts, ordered by source id
func (vi *VectorIndex) SourceCounts() ([]sqlite.SourceCount, error) {
	return vi.entries.SourceCounts()
}

// Path returns the database file path, or ":memory:" for transient indexes
func (vi *VectorIndex) Path() string {
	return vi.db.Path()
}

// ExportToYAML writes the indexed chunks, grouped by source, to a YAML file
func (vi *VectorIndex) ExportToYAML(outputPath string) error {
	return vi.entries.ExportToYAML(outputPath)
}

// ExportToMarkdown writes the indexed chunks to a readable Markdown file
func (vi *VectorIndex) ExportToMarkdown(outputPath string) error {
	return vi.entries.ExportToMarkdown(outputPath)
}

// ExportVectorsToJSON writes the stored vectors to a separate JSON file
func (vi *VectorIndex) ExportVectorsToJSON(outputPath string) error {
	return vi.entries.ExportVectorsToJSON(outputPath)
}

// ContentAddress derives the stable identifier for a chunk from its text
// and position metadata. It is a pure function: identical inputs always
// yield the identical id, which makes storage idempotent.
func ContentAddress(text, sourceID string, chunkIndex int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", text, sourceID, chunkIndex)))
	return hex.EncodeToString(sum[:])
}

// Upsert embeds the chunks as one batch, content-addresses each, and
// writes every (id, vector, text, metadata) tuple. Each entry is written
// atomically; a failure aborts the remaining batch and surfaces to the
// caller. Re-ingesting identical input overwrites the prior entries
// (last-write-wins, no explicit delete).
func (vi *VectorIndex) Upsert(ctx context.Context, chunks []models.Chunk, provider embedding.Embedder) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := provider.EmbedMany(ctx, texts)
	if err != nil {
		vi.logger.Error("failed to embed chunk batch",
			zap.String("source_id", chunks[0].Metadata.SourceID),
			zap.Int("chunks", len(chunks)),
			zap.Error(err))
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedded %d vectors for %d chunks", len(vectors), len(chunks))
	}

	for i, chunk := range chunks {
		entry := sqlite.Entry{
			ID:       ContentAddress(chunk.Text, chunk.Metadata.SourceID, chunk.Metadata.ChunkIndex),
			Text:     chunk.Text,
			Vector:   vectors[i],
			Metadata: chunk.Metadata,
		}
		if err := vi.entries.Upsert(entry); err != nil {
			vi.logger.Error("failed to store entry",
				zap.String("source_id", chunk.Metadata.SourceID),
				zap.Int("chunk_index", chunk.Metadata.ChunkIndex),
				zap.Error(err))
			return fmt.Errorf("storing chunk %d of %s: %w", chunk.Metadata.ChunkIndex, chunk.Metadata.SourceID, err)
		}
	}

	vi.logger.Info("stored chunks",
		zap.String("source_id", chunks[0].Metadata.SourceID),
		zap.Int("count", len(chunks)))
	return nil
}

// Query embeds the question and returns the top k entries by descending
// cosine similarity, ties stable in insertion order. k <= 0 falls back to
// DefaultTopK; fewer stored entries than k returns all of them. An empty
// index yields an empty result, not an error.
func (vi *VectorIndex) Query(ctx context.Context, question string, provider embedding.Embedder, k int) ([]models.QueryResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	queryVector, err := provider.EmbedOne(ctx, question)
	if err != nil {
		vi.logger.Error("failed to embed question", zap.Error(err))
		return nil, err
	}

	entries, err := vi.entries.All()
	if err != nil {
		vi.logger.Error("failed to load index entries", zap.Error(err))
		return nil, fmt.Errorf("loading index entries: %w", err)
	}

	results := make([]models.QueryResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, models.QueryResult{
			Text:       entry.Text,
			Metadata:   entry.Metadata,
			Similarity: CosineSimilarity(queryVector, entry.Vector),
		})
	}

	// Stable sort keeps insertion order on equal similarity
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Stored vectors are expected to be unit-normalized already, but this does
// not assume it and normalizes defensively at comparison time.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
