// ABOUTME: Deterministic hash-based embedder with no network dependency
// ABOUTME: Scatters per-word SHA-256 bytes into a fixed 1536-dimension vector
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

// HashDimension matches common remote embedding sizes so hash-embedded and
// remote-embedded vectors share index storage
const HashDimension = 1536

// HashEmbedder generates embeddings by hashing words, with no external
// dependency. Identical text always yields an identical vector.
//
// These vectors are NOT semantically meaningful: similarity reflects only
// exact or near-exact word overlap between texts, never meaning. Use the
// OpenAI embedder when real semantic retrieval quality matters.
type HashEmbedder struct {
	dimension int
}

// NewHashEmbedder creates a deterministic embedder of HashDimension
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{dimension: HashDimension}
}

// Dimension returns the fixed vector dimension
func (h *HashEmbedder) Dimension() int {
	return h.dimension
}

// EmbedOne builds a vector by scattering each word's hash bytes into
// positions derived from the hash value, then L2-normalizing. Empty input
// yields the zero vector, which is returned unnormalized.
func (h *HashEmbedder) EmbedOne(ctx context.Context, text string) ([]float64, error) {
	vec := make([]float64, h.dimension)

	for _, word := range strings.Fields(text) {
		sum := sha256.Sum256([]byte(word))
		offset := binary.BigEndian.Uint32(sum[:4])
		for j := 0; j < 4; j++ {
			idx := (int(offset) + j) % h.dimension
			vec[idx] += float64(sum[j]) / 255.0
		}
	}

	Normalize(vec)
	return vec, nil
}

// EmbedMany embeds each text in turn. There is no cheaper batch path for
// local hashing, so this simply loops EmbedOne.
func (h *HashEmbedder) EmbedMany(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := h.EmbedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}
