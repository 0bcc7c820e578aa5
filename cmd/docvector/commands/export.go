// ABOUTME: CLI command to export the index contents to a file
// ABOUTME: Writes YAML or Markdown, optionally with vectors as JSON
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/docvector/internal/storage"
	"github.com/joho/godotenv"
)

var (
	exportFormat  string
	exportVectors string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export indexed chunks to a file",
		Long: `Export the indexed chunks, grouped by source document, to a file.

Vectors are left out of the main export; pass --vectors to write them
to a separate JSON file.

Examples:
  docvector export index.yaml
  docvector export --export-format markdown index.md
  docvector export --vectors vectors.json index.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportFormat, "export-format", "yaml", "Export format (yaml, markdown)")
	cmd.Flags().StringVar(&exportVectors, "vectors", "", "Also write vectors to this JSON file")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	index, err := storage.Open(cfg.StoreDir, logger)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer func() { _ = index.Close() }()

	outputPath := args[0]
	switch exportFormat {
	case "yaml":
		err = index.ExportToYAML(outputPath)
	case "markdown":
		err = index.ExportToMarkdown(outputPath)
	default:
		return fmt.Errorf("unknown export format %q (want yaml or markdown)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportVectors != "" {
		if err := index.ExportVectorsToJSON(exportVectors); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported index to %s\n", outputPath)
	}
	return nil
}
