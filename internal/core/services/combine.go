package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/persona-cli/internal/core/domain"
)

// FileDelimiter formats the line that introduces each file's text in the
// combined blob.
const FileDelimiter = "--- File: %s ---"

// Truncate cuts text to at most maxRunes characters. Text within the limit
// is returned unchanged.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	count := 0
	for i := range text {
		if count == maxRunes {
			return text[:i]
		}
		count++
	}
	return text
}

// Combine joins the text outcomes of entries in order. Each block starts
// with the delimiter line naming its file; blocks are separated by a blank line.
func Combine(entries []domain.ManifestEntry) string {
	var b strings.Builder
	for i := range entries {
		result := entries[i].Result
		if result.Kind != domain.OutcomeText {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, FileDelimiter, entries[i].File.Name)
		b.WriteByte('\n')
		b.WriteString(result.Text)
	}
	return b.String()
}
