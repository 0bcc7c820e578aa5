// ABOUTME: CLI command to convert a document and store its chunks
// ABOUTME: Extracts text, chunks it, embeds the chunks, and upserts the index
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harper/docvector/internal/extract"
	"github.com/harper/docvector/internal/models"
	"github.com/joho/godotenv"
)

var (
	processEmbedder string
	processChunker  string
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Convert a document and store its chunks in the index",
		Long: `Convert a document into embedded chunks and store them.

Supports PDF, markdown, and plain text files. Re-processing the same
file replaces its chunks in place rather than duplicating them.

Examples:
  docvector process manual.pdf
  docvector process --chunker window transcript.txt
  docvector process --embedder hash notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: runProcess,
	}

	cmd.Flags().StringVar(&processEmbedder, "embedder", "auto", "Embedding provider (auto, openai, hash)")
	cmd.Flags().StringVar(&processChunker, "chunker", "markdown", "Chunking strategy (markdown, window)")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	path := args[0]
	text, err := extract.NewExtractor().Extract(path)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}

	pipeline, index, _, err := openPipeline(cfg, logger, processEmbedder, processChunker)
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	sourceID := filepath.Base(path)
	count, err := pipeline.Ingest(cmd.Context(), models.Document{SourceID: sourceID, Text: text})
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Stored %d chunk(s) from %s\n", count, sourceID)
	}
	return nil
}
