// ABOUTME: Query result and answer models for retrieval
// ABOUTME: Defines QueryResult ordering contract and the Answer/Source shape
package models

// QueryResult is a retrieved chunk with its similarity to the query vector.
// Results are ordered by descending similarity; ties keep insertion order.
type QueryResult struct {
	Text       string        `json:"text"`
	Metadata   ChunkMetadata `json:"metadata"`
	Similarity float64       `json:"similarity"`
}

// Source identifies a retrieved passage cited by an answer
type Source struct {
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// Answer is the response to a question: generated (or fallback) answer text
// plus the sources it was drawn from
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}
