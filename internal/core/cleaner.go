// ABOUTME: TextCleaner strips extraction artifacts from document text
// ABOUTME: Removes page numbers, code fences, image refs, and URLs
package core

import (
	"regexp"
	"strings"
)

var (
	pageNumberRe = regexp.MustCompile(`(?i)\n[ \t]*(?:page[ \t]+)?\d+[ \t]*\n`)
	codeFenceRe  = regexp.MustCompile("```[\\s\\S]*?```")
	imageRefRe   = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	urlRe        = regexp.MustCompile(`https?://[^\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// TextCleaner normalizes extracted document text before chunking
type TextCleaner struct{}

// NewTextCleaner creates a new TextCleaner instance
func NewTextCleaner() *TextCleaner {
	return &TextCleaner{}
}

// Clean removes boilerplate and non-text artifacts: page-number lines
// (a bare number, optionally prefixed with "Page", surrounded by blank
// lines), fenced code blocks, image references, and bare URLs. All
// remaining whitespace runs collapse to single spaces. Always returns a
// string, possibly empty.
func (tc *TextCleaner) Clean(text string) string {
	// Page-number lines can be adjacent; run until fixpoint so a match
	// consuming a shared newline does not hide its neighbor
	for {
		replaced := pageNumberRe.ReplaceAllString(text, "\n")
		if replaced == text {
			break
		}
		text = replaced
	}

	text = codeFenceRe.ReplaceAllString(text, "")
	text = imageRefRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")

	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
