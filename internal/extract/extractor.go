// ABOUTME: Text extraction from document files for ingestion
// ABOUTME: PDF via ledongthuc/pdf, plain text and markdown pass through
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ConversionError is a typed extraction failure: missing file, unreadable
// content, or an empty extraction result
type ConversionError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversion error: %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("conversion error: %s: %s", e.Path, e.Msg)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Extractor extracts plain text from document files
type Extractor struct{}

// NewExtractor returns a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content. PDF content
// is extracted page by page; plain text and markdown are returned as-is
// after UTF-8 validation. A missing file, an unreadable format, or an empty
// extraction all surface as a ConversionError.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ConversionError{Path: path, Msg: "file not found", Err: err}
		}
		return "", &ConversionError{Path: path, Msg: "read failed", Err: err}
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(content)
	default:
		text, err = extractPlain(content)
	}
	if err != nil {
		return "", &ConversionError{Path: path, Msg: "extraction failed", Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &ConversionError{Path: path, Msg: "extraction produced no text content"}
	}
	return text, nil
}

// extractPlain validates the bytes as UTF-8 text
func extractPlain(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("content is not valid UTF-8 text")
	}
	return string(content), nil
}
