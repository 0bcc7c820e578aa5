// ABOUTME: Pipeline orchestrates ingestion and retrieval end to end
// ABOUTME: Clean/Split/Embed/Address/Store on ingest, Embed/Search on query
package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/harper/docvector/internal/embedding"
	"github.com/harper/docvector/internal/llm"
	"github.com/harper/docvector/internal/models"
	"github.com/harper/docvector/internal/storage"
)

// FallbackPreamble opens the answer when no chat collaborator is wired in
const FallbackPreamble = "Here are the relevant passages from the documents:"

// Answerer composes a natural-language answer from retrieved chunks.
// The pipeline itself never generates answer text.
type Answerer interface {
	AnswerQuestion(ctx context.Context, question string, chunks []models.QueryResult, history []llm.Message) (*models.Answer, error)
}

// Pipeline wires the chunker, embedding provider, and vector index into the
// two top-level operations: Ingest and Answer. All calls are synchronous
// and block the caller until completion.
type Pipeline struct {
	chunker  Chunker
	provider embedding.Embedder
	index    *storage.VectorIndex
	answerer Answerer
	topK     int
	logger   *zap.Logger
}

// NewPipeline creates a pipeline. answerer may be nil, in which case Answer
// falls back to listing the retrieved passages.
func NewPipeline(chunker Chunker, provider embedding.Embedder, index *storage.VectorIndex, answerer Answerer, topK int, logger *zap.Logger) *Pipeline {
	if topK <= 0 {
		topK = storage.DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		chunker:  chunker,
		provider: provider,
		index:    index,
		answerer: answerer,
		topK:     topK,
		logger:   logger,
	}
}

// Ingest chunks the document, embeds the chunks as one batch, and stores
// them content-addressed in the index. Returns the number of chunks stored.
func (p *Pipeline) Ingest(ctx context.Context, doc models.Document) (int, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return 0, fmt.Errorf("document %s has no text to ingest", doc.SourceID)
	}

	chunks := p.chunker.ChunkText(doc.Text, doc.SourceID)
	if len(chunks) == 0 {
		p.logger.Warn("document produced no chunks", zap.String("source_id", doc.SourceID))
		return 0, nil
	}

	if err := p.index.Upsert(ctx, chunks, p.provider); err != nil {
		p.logger.Error("ingestion failed",
			zap.String("source_id", doc.SourceID),
			zap.String("operation", "upsert"),
			zap.Error(err))
		return 0, fmt.Errorf("ingesting %s: %w", doc.SourceID, err)
	}

	return len(chunks), nil
}

// Answer retrieves the top-k chunks for the question and hands them to the
// answer collaborator. Without one, the fallback concatenates a fixed
// preamble with the list of retrieved sources.
func (p *Pipeline) Answer(ctx context.Context, question string) (*models.Answer, error) {
	results, err := p.index.Query(ctx, question, p.provider, p.topK)
	if err != nil {
		p.logger.Error("retrieval failed",
			zap.String("operation", "query"),
			zap.Error(err))
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	if p.answerer != nil {
		answer, err := p.answerer.AnswerQuestion(ctx, question, results, nil)
		if err != nil {
			p.logger.Error("answer generation failed",
				zap.String("operation", "answer"),
				zap.Error(err))
			return nil, err
		}
		return answer, nil
	}

	return &models.Answer{
		Text:    FallbackPreamble,
		Sources: llm.SourcesFromResults(results),
	}, nil
}
