// ABOUTME: Chunkers split document text into retrievable units
// ABOUTME: Markdown heading/paragraph strategy plus fixed sliding-window mode
package core

import (
	"regexp"
	"strings"

	"github.com/harper/docvector/internal/models"
)

// Chunker splits a document into chunks suitable for embedding and retrieval.
// The two implementations are alternatives over different input assumptions:
// MarkdownChunker for structured markdown, WindowChunker for raw extracted
// text with no heading or paragraph structure.
type Chunker interface {
	ChunkText(text, sourceID string) []models.Chunk
}

var (
	headingRe   = regexp.MustCompile(`(?m)^(#+)[ \t]`)
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
)

// MarkdownChunker splits markdown text into semantically coherent chunks
type MarkdownChunker struct {
	MinChunkSize int
	MaxChunkSize int

	cleaner *TextCleaner
}

// NewMarkdownChunker creates a chunker with the given size bounds in characters
func NewMarkdownChunker(minChunkSize, maxChunkSize int) *MarkdownChunker {
	return &MarkdownChunker{
		MinChunkSize: minChunkSize,
		MaxChunkSize: maxChunkSize,
		cleaner:      NewTextCleaner(),
	}
}

// SplitByHeadings splits text immediately before each heading line at the
// document's top heading level. Lower-level headings (more # markers) stay
// inside the fragment opened by their parent. Empty fragments are dropped.
func (mc *MarkdownChunker) SplitByHeadings(text string) []string {
	matches := headingRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	// Top level is the smallest marker count present
	topLevel := 0
	for _, m := range matches {
		level := m[3] - m[2]
		if topLevel == 0 || level < topLevel {
			topLevel = level
		}
	}

	var starts []int
	for _, m := range matches {
		if m[3]-m[2] == topLevel {
			starts = append(starts, m[0])
		}
	}

	return splitAt(text, starts)
}

// SplitByParagraphs splits text on blank-line separators, dropping empties
func (mc *MarkdownChunker) SplitByParagraphs(text string) []string {
	var chunks []string
	for _, part := range paragraphRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks
}

// MergeSmallChunks greedily accumulates fragments into a running buffer,
// flushing whenever adding the next fragment would exceed MaxChunkSize.
// The final buffer is always flushed, so the last output chunk may still be
// under MinChunkSize; that is accepted, not re-merged.
func (mc *MarkdownChunker) MergeSmallChunks(chunks []string) []string {
	var merged []string
	var current string

	for _, chunk := range chunks {
		if len(current)+len(chunk) <= mc.MaxChunkSize {
			if current == "" {
				current = chunk
			} else {
				current += "\n\n" + chunk
			}
		} else {
			if current != "" {
				merged = append(merged, current)
			}
			current = chunk
		}
	}

	if current != "" {
		merged = append(merged, current)
	}

	return merged
}

// ChunkText cleans the text, splits it by headings, and falls back to
// paragraph splitting if any heading fragment is under MinChunkSize (an
// all-or-nothing fallback, not per-fragment). Fragments are then merged up
// to MaxChunkSize and wrapped into Chunks with positional metadata. Text
// shorter than MinChunkSize overall yields exactly one chunk.
func (mc *MarkdownChunker) ChunkText(text, sourceID string) []models.Chunk {
	text = mc.cleaner.Clean(text)

	fragments := mc.SplitByHeadings(text)

	tooSmall := false
	for _, f := range fragments {
		if len(f) < mc.MinChunkSize {
			tooSmall = true
			break
		}
	}
	if tooSmall {
		fragments = mc.SplitByParagraphs(text)
	}

	fragments = mc.MergeSmallChunks(fragments)

	return wrapChunks(fragments, sourceID)
}

// WindowChunker splits raw extracted text into fixed-size overlapping
// windows. Used when the input has no heading or paragraph structure.
type WindowChunker struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewWindowChunker creates a sliding-window chunker. The window start
// advances by ChunkSize-ChunkOverlap each step, so overlap must be smaller
// than the chunk size.
func NewWindowChunker(chunkSize, chunkOverlap int) *WindowChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = 0
	}
	return &WindowChunker{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

// ChunkText slides a fixed-size window over the text, terminating when the
// window start reaches end-of-text
func (wc *WindowChunker) ChunkText(text, sourceID string) []models.Chunk {
	runes := []rune(text)
	step := wc.ChunkSize - wc.ChunkOverlap

	var fragments []string
	for start := 0; start < len(runes); start += step {
		end := start + wc.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		fragment := strings.TrimSpace(string(runes[start:end]))
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
		if end == len(runes) {
			break
		}
	}

	return wrapChunks(fragments, sourceID)
}

// splitAt splits text immediately before each start offset, keeping the
// heading line with the fragment it opens
func splitAt(text string, starts []int) []string {
	var chunks []string
	appendFragment := func(fragment string) {
		fragment = strings.TrimSpace(fragment)
		if fragment != "" {
			chunks = append(chunks, fragment)
		}
	}

	if len(starts) == 0 {
		appendFragment(text)
		return chunks
	}

	if starts[0] > 0 {
		appendFragment(text[:starts[0]])
	}
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		appendFragment(text[start:end])
	}
	return chunks
}

// wrapChunks turns surviving fragments into immutable Chunks with their
// position and character length recorded
func wrapChunks(fragments []string, sourceID string) []models.Chunk {
	chunks := make([]models.Chunk, 0, len(fragments))
	for i, fragment := range fragments {
		chunks = append(chunks, models.Chunk{
			Text: fragment,
			Metadata: models.ChunkMetadata{
				SourceID:   sourceID,
				ChunkIndex: i,
				ChunkSize:  len(fragment),
			},
		})
	}
	return chunks
}
