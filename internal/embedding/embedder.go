// ABOUTME: Embedder interface and typed error for embedding providers
// ABOUTME: Two explicit operations instead of a polymorphic single entry point
package embedding

import (
	"context"
	"fmt"
	"math"
)

// Embedder maps text to fixed-dimension unit vectors. EmbedOne and EmbedMany
// are separate operations so that batch-capable providers can issue a true
// batch request instead of looping the single-text path.
type Embedder interface {
	// EmbedOne returns the embedding vector for a single text
	EmbedOne(ctx context.Context, text string) ([]float64, error)
	// EmbedMany returns one vector per input text, in input order
	EmbedMany(ctx context.Context, texts []string) ([][]float64, error)
	// Dimension returns the fixed vector dimension for this provider
	Dimension() int
}

// Error is a typed embedding failure, raised after retry exhaustion or on
// non-retryable problems such as malformed input
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding error: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Normalize scales v to unit L2 norm in place. The zero vector is left
// untouched to avoid division by zero.
func Normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}
