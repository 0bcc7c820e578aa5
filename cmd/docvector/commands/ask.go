// ABOUTME: CLI command for one-shot questions against the index
// ABOUTME: Retrieves top-k chunks and prints the answer with its sources
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	askEmbedder string
	askTopK     int
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question over the indexed documents",
		Long: `Ask a one-shot question over the indexed documents.

Retrieves the most relevant chunks and composes an answer. Without an
OpenAI API key the relevant passages are listed instead of a generated
answer.

Examples:
  docvector ask "how do I configure the server?"
  docvector ask --top-k 10 "what ports are used?"
  docvector ask --format json "summarize the install steps"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askEmbedder, "embedder", "auto", "Embedding provider (auto, openai, hash)")
	cmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of chunks to retrieve (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if askTopK != 0 {
		if err := validatePositiveInt(askTopK, "top-k"); err != nil {
			return err
		}
		cfg.TopK = askTopK
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	pipeline, index, _, err := openPipeline(cfg, logger, askEmbedder, "markdown")
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	answer, err := pipeline.Answer(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", answer.Text)
	if len(answer.Sources) > 0 && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		for _, src := range answer.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (chunk %d): %s\n",
				src.Filename, src.ChunkIndex, truncate(src.Text, 80))
		}
	}
	return nil
}
