// ABOUTME: Chat-completion client that composes answers from retrieved context
// ABOUTME: Wraps go-openai with retry and a typed answer-generation error
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/harper/docvector/internal/config"
	"github.com/harper/docvector/internal/models"
	"github.com/harper/docvector/internal/util"
)

const systemPrompt = "You are a helpful assistant that answers questions based on the provided context. " +
	"Always cite your sources using the chunk information provided. " +
	"If you cannot answer the question based on the context, say so."

// AnswerError is a typed answer-generation failure from the chat service
type AnswerError struct {
	Op  string
	Err error
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("answer generation error: %s: %v", e.Op, e.Err)
}

func (e *AnswerError) Unwrap() error {
	return e.Err
}

// Message is one prior conversation turn passed through to the chat service
type Message struct {
	Role    string
	Content string
}

// AnswerClient turns a question plus retrieved chunks into a natural-language
// answer via a remote chat-completion service
type AnswerClient struct {
	client *openai.Client
	model  string
	policy util.RetryPolicy
	logger *zap.Logger
}

// NewAnswerClient creates a client from configuration. A missing API key is
// a fatal configuration error at construction time.
func NewAnswerClient(cfg *config.Config, logger *zap.Logger) (*AnswerClient, error) {
	key, err := cfg.RequireOpenAIKey()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnswerClient{
		client: openai.NewClient(key),
		model:  cfg.ChatModel,
		policy: util.RetryPolicy{MaxAttempts: cfg.MaxRetries, BaseDelay: cfg.RetryDelay},
		logger: logger,
	}, nil
}

// AnswerQuestion composes an answer from the question and retrieved chunks,
// with retries on transient failures. The sources in the returned Answer
// are the retrieval results, not text generated by the model.
func (c *AnswerClient) AnswerQuestion(ctx context.Context, question string, chunks []models.QueryResult, history []Message) (*models.Answer, error) {
	messages := buildMessages(question, chunks, history)

	var content string
	err := c.policy.Do(func(attempt int) (bool, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
		})
		if err != nil {
			retryable := retryableChatError(err)
			c.logger.Warn("chat completion failed",
				zap.Int("attempt", attempt+1),
				zap.Bool("retryable", retryable),
				zap.Error(err))
			return retryable, err
		}
		if len(resp.Choices) == 0 {
			return true, fmt.Errorf("no completion choices returned")
		}
		content = resp.Choices[0].Message.Content
		return false, nil
	})
	if err != nil {
		return nil, &AnswerError{Op: "chat completion", Err: err}
	}

	return &models.Answer{
		Text:    content,
		Sources: SourcesFromResults(chunks),
	}, nil
}

// buildMessages assembles the role-tagged message list: system instruction,
// optional prior turns, and a final user turn embedding the retrieved
// context and the question
func buildMessages(question string, chunks []models.QueryResult, history []Message) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	userPrompt := fmt.Sprintf(
		"Context:\n%s\n\nQuestion: %s\n\nPlease answer the question based on the context above. Include source citations in your answer.",
		FormatContext(chunks), question)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userPrompt})

	return messages
}

// FormatContext renders retrieved chunks as the context block sent to the
// chat service, one source header per chunk
func FormatContext(chunks []models.QueryResult) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("Source: %s (Chunk %d)\n%s\n",
			chunk.Metadata.SourceID, chunk.Metadata.ChunkIndex, chunk.Text))
	}
	return strings.Join(parts, "\n")
}

// SourcesFromResults converts retrieval results into answer sources
func SourcesFromResults(chunks []models.QueryResult) []models.Source {
	sources := make([]models.Source, 0, len(chunks))
	for _, chunk := range chunks {
		sources = append(sources, models.Source{
			Filename:   chunk.Metadata.SourceID,
			ChunkIndex: chunk.Metadata.ChunkIndex,
			Text:       chunk.Text,
		})
	}
	return sources
}

// retryableChatError reports whether a chat client error carries a
// transient HTTP status
func retryableChatError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return util.RetryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return util.RetryableStatus(reqErr.HTTPStatusCode)
	}
	return true
}
