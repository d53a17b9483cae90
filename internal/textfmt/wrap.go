// ============================================================================
// lectern - Lecture Capture & Translation Utility
// ============================================================================
//
// Package:     textfmt
// Description: Plain-text formatting for saved transcripts and summaries
// Author:      Ethan Koester-Schmidt
// Created:     2026-08-15
// License:     MIT
// ============================================================================

package textfmt

import (
	"strings"
)

// DefaultWidth is the wrap column for saved text files.
const DefaultWidth = 80

// Wrap reflows text to the given width. Paragraph breaks (blank lines)
// are preserved; lines within a paragraph are joined before wrapping.
// Words longer than the width stay on their own line unbroken.
func Wrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	paragraphs := splitParagraphs(text)
	wrapped := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		wrapped = append(wrapped, wrapParagraph(p, width))
	}
	return strings.Join(wrapped, "\n\n")
}

// splitParagraphs breaks text on blank lines.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, strings.Join(current, " "))
				current = nil
			}
			continue
		}
		current = append(current, strings.TrimSpace(line))
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}
	return paragraphs
}

func wrapParagraph(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = len(word)
		} else {
			b.WriteByte(' ')
			b.WriteString(word)
			lineLen += 1 + len(word)
		}
	}
	return b.String()
}
