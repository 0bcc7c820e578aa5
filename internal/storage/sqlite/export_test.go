// ABOUTME: Tests for index export functionality
// ABOUTME: Verifies grouping by source and YAML/Markdown/JSON output files
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func seedExportEntries(t *testing.T) *EntryStore {
	t.Helper()
	store := newTestStore(t)

	entries := []Entry{
		testEntry("id-1", "guide.md", 0, "installation steps"),
		testEntry("id-2", "guide.md", 1, "configuration options"),
		testEntry("id-3", "api.md", 0, "endpoint reference"),
	}
	for _, e := range entries {
		if err := store.Upsert(e); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}
	return store
}

func TestExport_GroupsBySource(t *testing.T) {
	store := seedExportEntries(t)

	data, err := store.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if data.Tool != "docvector" {
		t.Errorf("Tool = %q", data.Tool)
	}
	if data.ExportedAt == "" {
		t.Error("ExportedAt should be set")
	}
	if len(data.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(data.Sources))
	}

	// Sources come back in id order: api.md before guide.md
	if data.Sources[0].SourceID != "api.md" || len(data.Sources[0].Chunks) != 1 {
		t.Errorf("first source = %+v", data.Sources[0])
	}
	if data.Sources[1].SourceID != "guide.md" || len(data.Sources[1].Chunks) != 2 {
		t.Errorf("second source = %+v", data.Sources[1])
	}
	if data.Sources[1].Chunks[0].ChunkIndex != 0 || data.Sources[1].Chunks[1].ChunkIndex != 1 {
		t.Error("chunks should be ordered by chunk index")
	}
}

func TestExport_EmptyIndex(t *testing.T) {
	store := newTestStore(t)

	data, err := store.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data.Sources) != 0 {
		t.Errorf("empty index should export no sources, got %d", len(data.Sources))
	}
}

func TestExportToYAML(t *testing.T) {
	store := seedExportEntries(t)

	outputPath := filepath.Join(t.TempDir(), "export", "index.yaml")
	if err := store.ExportToYAML(outputPath); err != nil {
		t.Fatalf("ExportToYAML failed: %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(data.Sources) != 2 {
		t.Errorf("got %d sources in YAML, want 2", len(data.Sources))
	}
}

func TestExportToMarkdown(t *testing.T) {
	store := seedExportEntries(t)

	outputPath := filepath.Join(t.TempDir(), "index.md")
	if err := store.ExportToMarkdown(outputPath); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	content := string(raw)

	for _, want := range []string{"## guide.md", "## api.md", "installation steps", "### Chunk 1"} {
		if !strings.Contains(content, want) {
			t.Errorf("Markdown export missing %q", want)
		}
	}
}

func TestExportVectorsToJSON(t *testing.T) {
	store := seedExportEntries(t)

	outputPath := filepath.Join(t.TempDir(), "vectors.json")
	if err := store.ExportVectorsToJSON(outputPath); err != nil {
		t.Fatalf("ExportVectorsToJSON failed: %v", err)
	}

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var vectors []struct {
		ID       string    `json:"id"`
		SourceID string    `json:"source_id"`
		Vector   []float64 `json:"vector"`
	}
	if err := json.Unmarshal(raw, &vectors); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	if len(vectors[0].Vector) != 3 {
		t.Errorf("vector length = %d, want 3", len(vectors[0].Vector))
	}
}
