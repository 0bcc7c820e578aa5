// ABOUTME: Tests for the deterministic hash embedder
// ABOUTME: Verifies determinism, unit norm, and zero-vector handling
package embedding

import (
	"context"
	"math"
	"testing"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	h := NewHashEmbedder()
	ctx := context.Background()

	texts := []string{
		"the quick brown fox",
		"a",
		"repeated repeated repeated words",
	}

	for _, text := range texts {
		first, err := h.EmbedOne(ctx, text)
		if err != nil {
			t.Fatalf("EmbedOne(%q) failed: %v", text, err)
		}
		second, err := h.EmbedOne(ctx, text)
		if err != nil {
			t.Fatalf("EmbedOne(%q) failed: %v", text, err)
		}

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("vectors for %q differ at position %d: %v != %v", text, i, first[i], second[i])
			}
		}
	}
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	h := NewHashEmbedder()

	vec, err := h.EmbedOne(context.Background(), "some non-empty input text")
	if err != nil {
		t.Fatalf("EmbedOne() failed: %v", err)
	}

	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)

	if math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("L2 norm = %v, want 1.0 within 1e-6", norm)
	}
}

func TestHashEmbedder_EmptyTextYieldsZeroVector(t *testing.T) {
	h := NewHashEmbedder()

	vec, err := h.EmbedOne(context.Background(), "   ")
	if err != nil {
		t.Fatalf("EmbedOne() failed: %v", err)
	}

	if len(vec) != HashDimension {
		t.Fatalf("dimension = %d, want %d", len(vec), HashDimension)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("position %d = %v, want 0 (zero vector must not be normalized)", i, v)
		}
	}
}

func TestHashEmbedder_Dimension(t *testing.T) {
	h := NewHashEmbedder()

	if h.Dimension() != 1536 {
		t.Errorf("Dimension() = %d, want 1536", h.Dimension())
	}

	vec, err := h.EmbedOne(context.Background(), "check the output length")
	if err != nil {
		t.Fatalf("EmbedOne() failed: %v", err)
	}
	if len(vec) != 1536 {
		t.Errorf("vector length = %d, want 1536", len(vec))
	}
}

func TestHashEmbedder_DifferentTextsDiffer(t *testing.T) {
	h := NewHashEmbedder()
	ctx := context.Background()

	a, _ := h.EmbedOne(ctx, "alpha beta gamma")
	b, _ := h.EmbedOne(ctx, "delta epsilon zeta")

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("embeddings of unrelated texts should differ")
	}
}

func TestHashEmbedder_EmbedMany(t *testing.T) {
	h := NewHashEmbedder()
	ctx := context.Background()

	texts := []string{"first text", "second text", "third text"}
	vectors, err := h.EmbedMany(ctx, texts)
	if err != nil {
		t.Fatalf("EmbedMany() failed: %v", err)
	}

	if len(vectors) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(texts))
	}

	// Batch output must match single-text output per position
	for i, text := range texts {
		single, _ := h.EmbedOne(ctx, text)
		for j := range single {
			if vectors[i][j] != single[j] {
				t.Fatalf("batch vector %d differs from single embedding at %d", i, j)
			}
		}
	}
}

func TestNormalize_ZeroVectorUntouched(t *testing.T) {
	v := make([]float64, 8)
	Normalize(v)
	for i, x := range v {
		if x != 0 {
			t.Fatalf("position %d = %v, want 0", i, x)
		}
	}
}
