// ABOUTME: Remote embedding provider backed by the OpenAI embeddings API
// ABOUTME: Batches true multi-text requests and retries transient failures
package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/harper/docvector/internal/config"
	"github.com/harper/docvector/internal/util"
)

// OpenAIDimension is the vector size of text-embedding-3-small
const OpenAIDimension = 1536

// OpenAIEmbedder generates embeddings via the OpenAI embeddings endpoint.
// Transient failures (HTTP 429 and 5xx) are retried with exponential backoff
// before converting to a typed embedding error.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	policy util.RetryPolicy
	logger *zap.Logger
}

// NewOpenAIEmbedder creates an embedder from configuration. A missing API
// key is a fatal configuration error at construction time, not a deferred
// failure on first use.
func NewOpenAIEmbedder(cfg *config.Config, logger *zap.Logger) (*OpenAIEmbedder, error) {
	key, err := cfg.RequireOpenAIKey()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(key),
		model:  openai.EmbeddingModel(cfg.EmbeddingModel),
		policy: util.RetryPolicy{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryDelay},
		logger: logger,
	}, nil
}

// Dimension returns the fixed vector dimension for this provider
func (o *OpenAIEmbedder) Dimension() int {
	return OpenAIDimension
}

// EmbedOne embeds a single text
func (o *OpenAIEmbedder) EmbedOne(ctx context.Context, text string) ([]float64, error) {
	vectors, err := o.request(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedMany embeds a batch of texts in one request: the whole batch is a
// single blocking network round trip, not per-text calls
func (o *OpenAIEmbedder) EmbedMany(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return o.request(ctx, texts)
}

// request submits one embeddings call under the retry policy
func (o *OpenAIEmbedder) request(ctx context.Context, texts []string) ([][]float64, error) {
	var vectors [][]float64

	err := o.policy.Do(func(attempt int) (bool, error) {
		resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: o.model,
		})
		if err != nil {
			retryable := retryableAPIError(err)
			o.logger.Warn("embedding request failed",
				zap.Int("attempt", attempt+1),
				zap.Int("batch_size", len(texts)),
				zap.Bool("retryable", retryable),
				zap.Error(err))
			return retryable, err
		}

		if len(resp.Data) != len(texts) {
			return false, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
		}

		vectors = make([][]float64, len(resp.Data))
		for i, item := range resp.Data {
			vec := make([]float64, len(item.Embedding))
			for j, v := range item.Embedding {
				vec[j] = float64(v)
			}
			vectors[i] = vec
		}
		return false, nil
	})

	if err != nil {
		return nil, &Error{Op: "embed", Err: err}
	}
	return vectors, nil
}

// retryableAPIError reports whether an OpenAI client error carries a
// transient HTTP status
func retryableAPIError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return util.RetryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return util.RetryableStatus(reqErr.HTTPStatusCode)
	}
	// Transport-level failures (timeouts, resets) are worth another attempt
	return true
}
