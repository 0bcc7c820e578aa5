// ABOUTME: Document and Chunk models for the ingestion pipeline
// ABOUTME: Chunks carry source, position, and size metadata for retrieval
package models

// Document is a unit of ingestion: a source identifier plus the raw
// extracted text. Documents are transient and never persisted directly.
type Document struct {
	SourceID string `json:"source_id"`
	Text     string `json:"text"`
}

// ChunkMetadata describes where a chunk came from inside its document
type ChunkMetadata struct {
	SourceID   string `json:"source_id"`
	ChunkIndex int    `json:"chunk_index"`
	ChunkSize  int    `json:"chunk_size"`
}

// Chunk is a bounded span of document text, the unit of retrieval.
// Chunks are immutable once created by a chunker.
type Chunk struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}
