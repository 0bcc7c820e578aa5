// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes ingestion and retrieval tools to LLM agents via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/docvector/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

var mcpEmbedder string

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs docvector as an MCP (Model Context Protocol) server over stdio,
exposing document ingestion and retrieval as tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  docvector mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "docvector": {
  #       "command": "docvector",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().StringVar(&mcpEmbedder, "embedder", "auto", "Embedding provider (auto, openai, hash)")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	pipeline, index, embedder, err := openPipeline(cfg, logger, mcpEmbedder, "markdown")
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"docvector",
		"0.1.0",
	)

	mcp.RegisterTools(server, pipeline, index, embedder, logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := index.Close(); err != nil {
			logger.Warn("error closing index", zap.Error(err))
		}
	case err := <-serverErr:
		_ = index.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
