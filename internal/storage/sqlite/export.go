// ABOUTME: Export functionality for the vector index
// ABOUTME: Supports YAML, Markdown, and JSON vector export formats
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable index structure. Vectors are
// kept out of the main document and exported separately; they are bulky and
// re-derivable by re-embedding the text.
type ExportData struct {
	Version    string         `yaml:"version" json:"version"`
	ExportedAt string         `yaml:"exported_at" json:"exported_at"`
	Tool       string         `yaml:"tool" json:"tool"`
	Sources    []ExportSource `yaml:"sources,omitempty" json:"sources,omitempty"`
}

// ExportSource groups the exported chunks of one ingested document
type ExportSource struct {
	SourceID string        `yaml:"source_id" json:"source_id"`
	Chunks   []ExportChunk `yaml:"chunks" json:"chunks"`
}

// ExportChunk represents one stored chunk for export
type ExportChunk struct {
	ID         string `yaml:"id" json:"id"`
	ChunkIndex int    `yaml:"chunk_index" json:"chunk_index"`
	ChunkSize  int    `yaml:"chunk_size" json:"chunk_size"`
	Text       string `yaml:"text" json:"text"`
	CreatedAt  string `yaml:"created_at" json:"created_at"`
}

// Export collects all stored entries grouped by source
func (s *EntryStore) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "docvector",
	}

	rows, err := s.db.Query(`
		SELECT id, source_id, chunk_index, chunk_size, text, created_at
		FROM entries
		ORDER BY source_id, chunk_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var current *ExportSource
	for rows.Next() {
		var (
			chunk     ExportChunk
			sourceID  string
			createdAt time.Time
		)
		if err := rows.Scan(&chunk.ID, &sourceID, &chunk.ChunkIndex, &chunk.ChunkSize, &chunk.Text, &createdAt); err != nil {
			continue
		}
		chunk.CreatedAt = createdAt.Format(time.RFC3339)

		if current == nil || current.SourceID != sourceID {
			data.Sources = append(data.Sources, ExportSource{SourceID: sourceID})
			current = &data.Sources[len(data.Sources)-1]
		}
		current.Chunks = append(current.Chunks, chunk)
	}

	return data, rows.Err()
}

// ExportToYAML exports the index to a YAML file
func (s *EntryStore) ExportToYAML(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	file, err := createExportFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// ExportToMarkdown exports the index to a Markdown file
func (s *EntryStore) ExportToMarkdown(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	file, err := createExportFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	// Write header
	_, _ = fmt.Fprintf(file, "# Index Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", data.ExportedAt)

	for _, source := range data.Sources {
		_, _ = fmt.Fprintf(file, "## %s\n\n", source.SourceID)
		for _, chunk := range source.Chunks {
			_, _ = fmt.Fprintf(file, "### Chunk %d (%d chars)\n\n", chunk.ChunkIndex, chunk.ChunkSize)
			_, _ = fmt.Fprintf(file, "%s\n\n", chunk.Text)
		}
		_, _ = fmt.Fprintln(file, "---")
		_, _ = fmt.Fprintln(file)
	}

	return nil
}

// ExportVectorsToJSON exports the stored vectors to a separate JSON file
func (s *EntryStore) ExportVectorsToJSON(outputPath string) error {
	rows, err := s.db.Query(`
		SELECT id, source_id, chunk_index, vector, created_at
		FROM entries
		ORDER BY source_id, chunk_index
	`)
	if err != nil {
		return fmt.Errorf("failed to query vectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type VectorExport struct {
		ID         string    `json:"id"`
		SourceID   string    `json:"source_id"`
		ChunkIndex int       `json:"chunk_index"`
		Vector     []float64 `json:"vector"`
		CreatedAt  string    `json:"created_at"`
	}

	var vectors []VectorExport
	for rows.Next() {
		var (
			ve        VectorExport
			blob      []byte
			createdAt time.Time
		)
		if err := rows.Scan(&ve.ID, &ve.SourceID, &ve.ChunkIndex, &blob, &createdAt); err != nil {
			continue
		}
		ve.Vector = blobToVector(blob)
		ve.CreatedAt = createdAt.Format(time.RFC3339)
		vectors = append(vectors, ve)
	}

	file, err := createExportFile(outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(vectors); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// createExportFile creates the output file, making parent directories first
func createExportFile(outputPath string) (*os.File, error) {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
