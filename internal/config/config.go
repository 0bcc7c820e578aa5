// ABOUTME: Centralized configuration for the docvector pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Error is a fatal configuration problem, such as a missing credential.
// It is raised at construction time, never deferred to the first call.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// MissingCredential returns the Error raised when a required API key is absent
func MissingCredential(envVar string) *Error {
	return &Error{Field: envVar, Reason: "not set"}
}

// Config holds all configuration for the docvector system
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Chunking settings
	MinChunkSize  int
	MaxChunkSize  int
	WindowSize    int
	WindowOverlap int

	// Retrieval settings
	TopK            int
	VectorDimension int

	// Storage settings
	StoreDir string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("DOCVECTOR_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("DOCVECTOR_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:         getEnvDuration("DOCVECTOR_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("DOCVECTOR_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("DOCVECTOR_RETRY_DELAY", 2*time.Second),
		MinChunkSize:    getEnvInt("DOCVECTOR_MIN_CHUNK_SIZE", 100),
		MaxChunkSize:    getEnvInt("DOCVECTOR_MAX_CHUNK_SIZE", 1000),
		WindowSize:      getEnvInt("DOCVECTOR_WINDOW_SIZE", 1000),
		WindowOverlap:   getEnvInt("DOCVECTOR_WINDOW_OVERLAP", 200),
		TopK:            getEnvInt("DOCVECTOR_TOP_K", 5),
		VectorDimension: getEnvInt("DOCVECTOR_VECTOR_DIMENSION", 1536),
		StoreDir:        getEnv("DOCVECTOR_STORE_DIR", DefaultStoreDir()),
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration values are internally consistent
func (c *Config) Validate() error {
	if c.MinChunkSize <= 0 {
		return fmt.Errorf("DOCVECTOR_MIN_CHUNK_SIZE must be positive, got %d", c.MinChunkSize)
	}
	if c.MaxChunkSize < c.MinChunkSize {
		return fmt.Errorf("DOCVECTOR_MAX_CHUNK_SIZE must be >= min chunk size, got %d < %d", c.MaxChunkSize, c.MinChunkSize)
	}
	if c.WindowOverlap >= c.WindowSize {
		return fmt.Errorf("DOCVECTOR_WINDOW_OVERLAP must be smaller than window size, got %d >= %d", c.WindowOverlap, c.WindowSize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("DOCVECTOR_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("DOCVECTOR_TOP_K must be positive, got %d", c.TopK)
	}
	return nil
}

// RequireOpenAIKey returns the API key or a typed configuration error
func (c *Config) RequireOpenAIKey() (string, error) {
	if c.OpenAIKey == "" {
		return "", MissingCredential("OPENAI_API_KEY")
	}
	return c.OpenAIKey, nil
}

// DefaultStoreDir returns the default storage directory following XDG spec
func DefaultStoreDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/docvector"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "docvector")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
