// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.MinChunkSize != 100 {
		t.Errorf("MinChunkSize = %d, want 100", cfg.MinChunkSize)
	}
	if cfg.MaxChunkSize != 1000 {
		t.Errorf("MaxChunkSize = %d, want 1000", cfg.MaxChunkSize)
	}
	if cfg.WindowSize != 1000 {
		t.Errorf("WindowSize = %d, want 1000", cfg.WindowSize)
	}
	if cfg.WindowOverlap != 200 {
		t.Errorf("WindowOverlap = %d, want 200", cfg.WindowOverlap)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("DOCVECTOR_CHAT_MODEL", "gpt-4")
	os.Setenv("DOCVECTOR_EMBEDDING_MODEL", "text-embedding-3-large")
	os.Setenv("DOCVECTOR_TIMEOUT", "60s")
	os.Setenv("DOCVECTOR_MAX_RETRIES", "5")
	os.Setenv("DOCVECTOR_RETRY_DELAY", "3s")
	os.Setenv("DOCVECTOR_MIN_CHUNK_SIZE", "50")
	os.Setenv("DOCVECTOR_MAX_CHUNK_SIZE", "200")
	os.Setenv("DOCVECTOR_TOP_K", "10")
	os.Setenv("DOCVECTOR_VECTOR_DIMENSION", "3072")
	os.Setenv("DOCVECTOR_STORE_DIR", "/tmp/docvector-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify custom values
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %s, want gpt-4", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-large", cfg.EmbeddingModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.MinChunkSize != 50 {
		t.Errorf("MinChunkSize = %d, want 50", cfg.MinChunkSize)
	}
	if cfg.MaxChunkSize != 200 {
		t.Errorf("MaxChunkSize = %d, want 200", cfg.MaxChunkSize)
	}
	if cfg.TopK != 10 {
		t.Errorf("TopK = %d, want 10", cfg.TopK)
	}
	if cfg.VectorDimension != 3072 {
		t.Errorf("VectorDimension = %d, want 3072", cfg.VectorDimension)
	}
	if cfg.StoreDir != "/tmp/docvector-test" {
		t.Errorf("StoreDir = %s, want /tmp/docvector-test", cfg.StoreDir)
	}
}

func TestValidate_InvalidChunkSizes(t *testing.T) {
	cfg := &Config{
		MinChunkSize:  0,
		MaxChunkSize:  1000,
		WindowSize:    1000,
		WindowOverlap: 200,
		MaxRetries:    3,
		TopK:          5,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MinChunkSize <= 0")
	}

	cfg.MinChunkSize = 500
	cfg.MaxChunkSize = 100
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxChunkSize < MinChunkSize")
	}
}

func TestValidate_InvalidWindowOverlap(t *testing.T) {
	cfg := &Config{
		MinChunkSize:  100,
		MaxChunkSize:  1000,
		WindowSize:    100,
		WindowOverlap: 100,
		MaxRetries:    3,
		TopK:          5,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for overlap >= window size")
	}
}

func TestValidate_InvalidMaxRetries(t *testing.T) {
	cfg := &Config{
		MinChunkSize:  100,
		MaxChunkSize:  1000,
		WindowSize:    1000,
		WindowOverlap: 200,
		MaxRetries:    15,
		TopK:          5,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries > 10")
	}

	cfg.MaxRetries = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries < 0")
	}
}

func TestRequireOpenAIKey(t *testing.T) {
	cfg := &Config{OpenAIKey: "sk-test"}
	key, err := cfg.RequireOpenAIKey()
	if err != nil {
		t.Fatalf("RequireOpenAIKey() failed: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %s, want sk-test", key)
	}

	cfg.OpenAIKey = ""
	_, err = cfg.RequireOpenAIKey()
	if err == nil {
		t.Fatal("RequireOpenAIKey() should fail when key is empty")
	}

	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Errorf("error type = %T, want *config.Error", err)
	}
}
