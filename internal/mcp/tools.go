// ABOUTME: MCP tool definitions and registration for the docvector server
// ABOUTME: Exposes document ingestion, retrieval, and index stats over stdio
package mcp

import (
	"go.uber.org/zap"

	"github.com/harper/docvector/internal/core"
	"github.com/harper/docvector/internal/embedding"
	"github.com/harper/docvector/internal/extract"
	"github.com/harper/docvector/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, index *storage.VectorIndex, provider embedding.Embedder, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	handlers := &Handlers{
		extractor: extract.NewExtractor(),
		pipeline:  pipeline,
		index:     index,
		provider:  provider,
		logger:    logger,
	}

	// 1. ingest_document - Convert a file and store its chunks in the index
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Convert a document file (PDF, markdown, or plain text) into chunks, embed them, and store them in the vector index. Re-ingesting the same file is idempotent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the document file to ingest",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestDocument)

	// 2. query_documents - Retrieve the most similar chunks for a query
	server.AddTool(mcp.Tool{
		Name:        "query_documents",
		Description: "Search the vector index for the chunks most similar to a query, ranked by cosine similarity.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.QueryDocuments)

	// 3. index_stats - Report entry counts for the index
	server.AddTool(mcp.Tool{
		Name:        "index_stats",
		Description: "Report the total number of indexed chunks and a per-document breakdown.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.IndexStats)

	return handlers
}
