// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Logger construction, embedder selection, and pipeline wiring
package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/harper/docvector/internal/config"
	"github.com/harper/docvector/internal/core"
	"github.com/harper/docvector/internal/embedding"
	"github.com/harper/docvector/internal/llm"
	"github.com/harper/docvector/internal/storage"
)

// newLogger builds the command logger honoring the global flags: quiet
// silences it, verbose switches to the human-readable development config
func newLogger() *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig reads configuration from the environment, letting the --store
// flag override the storage directory
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storeFlag != "" {
		cfg.StoreDir = storeFlag
	}
	return cfg, nil
}

// buildEmbedder selects the embedding provider. "auto" uses the remote
// provider when an API key is configured and the deterministic local one
// otherwise; "openai" fails without a key.
func buildEmbedder(cfg *config.Config, logger *zap.Logger, choice string) (embedding.Embedder, error) {
	switch choice {
	case "hash":
		return embedding.NewHashEmbedder(), nil
	case "openai":
		return embedding.NewOpenAIEmbedder(cfg, logger)
	case "auto", "":
		if cfg.OpenAIKey != "" {
			return embedding.NewOpenAIEmbedder(cfg, logger)
		}
		return embedding.NewHashEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedder %q (want auto, openai, or hash)", choice)
	}
}

// buildChunker selects the chunking strategy
func buildChunker(cfg *config.Config, choice string) (core.Chunker, error) {
	switch choice {
	case "markdown", "":
		return core.NewMarkdownChunker(cfg.MinChunkSize, cfg.MaxChunkSize), nil
	case "window":
		return core.NewWindowChunker(cfg.WindowSize, cfg.WindowOverlap), nil
	default:
		return nil, fmt.Errorf("unknown chunker %q (want markdown or window)", choice)
	}
}

// buildAnswerer wires the chat answer client when an API key is configured,
// nil otherwise so the pipeline falls back to listing retrieved passages
func buildAnswerer(cfg *config.Config, logger *zap.Logger) (core.Answerer, error) {
	if cfg.OpenAIKey == "" {
		return nil, nil
	}
	return llm.NewAnswerClient(cfg, logger)
}

// openPipeline wires the full pipeline for a command. The caller must Close
// the returned index.
func openPipeline(cfg *config.Config, logger *zap.Logger, embedderChoice, chunkerChoice string) (*core.Pipeline, *storage.VectorIndex, embedding.Embedder, error) {
	embedder, err := buildEmbedder(cfg, logger, embedderChoice)
	if err != nil {
		return nil, nil, nil, err
	}

	chunker, err := buildChunker(cfg, chunkerChoice)
	if err != nil {
		return nil, nil, nil, err
	}

	answerer, err := buildAnswerer(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	index, err := storage.Open(cfg.StoreDir, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening index: %w", err)
	}

	pipeline := core.NewPipeline(chunker, embedder, index, answerer, cfg.TopK, logger)
	return pipeline, index, embedder, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
