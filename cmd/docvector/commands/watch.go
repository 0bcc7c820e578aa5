// ABOUTME: Interactive question loop over the indexed documents
// ABOUTME: Reads questions from stdin; /ingest converts files in the background
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/docvector/internal/extract"
	"github.com/harper/docvector/internal/models"
	"github.com/harper/docvector/internal/task"
	"github.com/joho/godotenv"
)

var watchEmbedder string

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactive question session",
		Long: `Start an interactive session reading questions from stdin.

Each line is answered against the index. Errors are printed and the
session continues. Document conversion runs in the background so the
prompt stays responsive; only one conversion runs at a time.

Session commands:
  /ingest <path>   convert a document in the background
  /status          show the state of the background task
  exit             quit the session`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchEmbedder, "embedder", "auto", "Embedding provider (auto, openai, hash)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	pipeline, index, _, err := openPipeline(cfg, logger, watchEmbedder, "markdown")
	if err != nil {
		return err
	}
	defer func() { _ = index.Close() }()

	runner := task.NewRunner(logger)
	extractor := extract.NewExtractor()

	prompt := color.New(color.FgGreen, color.Bold).SprintFunc()
	heading := color.New(color.FgCyan, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	out := cmd.OutOrStdout()

	if !quiet {
		fmt.Fprintln(out, heading("docvector interactive session"))
		fmt.Fprintln(out, "Type a question and press Enter. Type 'exit' to quit, '/ingest <path>' to add a document.")
		fmt.Fprintln(out)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, prompt("? "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "exit"):
			runner.Wait()
			return scanner.Err()
		case strings.HasPrefix(line, "/ingest"):
			handleIngest(out, line, runner, extractor, pipeline, heading)
			continue
		case line == "/status":
			printTaskStatus(out, runner.Current())
			continue
		}

		answer, err := pipeline.Answer(cmd.Context(), line)
		if err != nil {
			// Keep the session alive on failures
			fmt.Fprintf(out, "error: %v\n\n", err)
			continue
		}

		fmt.Fprintf(out, "%s\n", answer.Text)
		if len(answer.Sources) > 0 {
			fmt.Fprintln(out, heading("Sources:"))
			for _, src := range answer.Sources {
				fmt.Fprintf(out, "  %s %s\n",
					heading(fmt.Sprintf("%s (chunk %d)", src.Filename, src.ChunkIndex)),
					faint(truncate(src.Text, 80)))
			}
		}
		fmt.Fprintln(out)
	}

	runner.Wait()
	return scanner.Err()
}

// handleIngest schedules a background conversion so the prompt stays
// responsive. A second /ingest while one runs is rejected, not queued.
func handleIngest(out io.Writer, line string, runner *task.Runner, extractor *extract.Extractor, pipeline ingester, heading func(...interface{}) string) {
	path := strings.TrimSpace(strings.TrimPrefix(line, "/ingest"))
	if path == "" {
		fmt.Fprintln(out, "usage: /ingest <path>")
		return
	}

	sourceID := filepath.Base(path)
	t, err := runner.Submit("ingest "+sourceID, func(ctx context.Context) error {
		text, err := extractor.Extract(path)
		if err != nil {
			return err
		}
		_, err = pipeline.Ingest(ctx, models.Document{SourceID: sourceID, Text: text})
		return err
	})
	if err != nil {
		fmt.Fprintf(out, "error: %v (check /status)\n", err)
		return
	}

	fmt.Fprintf(out, "%s started in the background (task %s)\n", heading(t.Name), t.ID)
}

// printTaskStatus reports the tracked background task handle
func printTaskStatus(out io.Writer, t task.Task) {
	switch t.State {
	case task.StateIdle:
		fmt.Fprintln(out, "no background task has run yet")
	case task.StateFailed:
		fmt.Fprintf(out, "%s: %s (%v)\n", t.Name, t.State, t.Err)
	default:
		fmt.Fprintf(out, "%s: %s\n", t.Name, t.State)
	}
}

// ingester is the part of the pipeline the background task needs
type ingester interface {
	Ingest(ctx context.Context, doc models.Document) (int, error)
}
