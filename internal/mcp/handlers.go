// ABOUTME: MCP tool handler implementations for the docvector server
// ABOUTME: Wraps the ingestion pipeline and vector index with JSON responses
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/harper/docvector/internal/core"
	"github.com/harper/docvector/internal/embedding"
	"github.com/harper/docvector/internal/extract"
	"github.com/harper/docvector/internal/models"
	"github.com/harper/docvector/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	extractor *extract.Extractor
	pipeline  *core.Pipeline
	index     *storage.VectorIndex
	provider  embedding.Embedder
	logger    *zap.Logger
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	text, err := h.extractor.Extract(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}

	sourceID := filepath.Base(path)
	count, err := h.pipeline.Ingest(ctx, models.Document{SourceID: sourceID, Text: text})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	h.logger.Info("document ingested via mcp",
		zap.String("source_id", sourceID),
		zap.Int("chunks", count))

	return marshalResult(map[string]interface{}{
		"source_id":     sourceID,
		"chunks_stored": count,
	})
}

// QueryDocuments handles the query_documents tool
func (h *Handlers) QueryDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", storage.DefaultTopK)

	results, err := h.index.Query(ctx, query, h.provider, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	formatted := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		formatted = append(formatted, map[string]interface{}{
			"source_id":   r.Metadata.SourceID,
			"chunk_index": r.Metadata.ChunkIndex,
			"similarity":  r.Similarity,
			"text":        r.Text,
		})
	}

	return marshalResult(map[string]interface{}{
		"results": formatted,
	})
}

// IndexStats handles the index_stats tool
func (h *Handlers) IndexStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total, err := h.index.Count()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count entries: %v", err)), nil
	}

	counts, err := h.index.SourceCounts()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count sources: %v", err)), nil
	}

	sources := make([]map[string]interface{}, 0, len(counts))
	for _, sc := range counts {
		sources = append(sources, map[string]interface{}{
			"source_id": sc.SourceID,
			"chunks":    sc.Count,
		})
	}

	return marshalResult(map[string]interface{}{
		"total_chunks": total,
		"sources":      sources,
		"path":         h.index.Path(),
	})
}

// marshalResult serializes a tool response to a JSON text result
func marshalResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
