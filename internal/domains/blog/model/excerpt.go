package model

import (
	"strings"
	"unicode"
)

// ExcerptLength is the window an auto-generated excerpt is cut from
const ExcerptLength = 150

// sentenceCutMin is the lowest rune index a sentence end may sit at to be used as the cut
const sentenceCutMin = 100

// GenerateExcerpt derives a short summary from content.
// Whitespace is collapsed first. Longer text is cut at the last sentence end past
// rune 100 of the 150 rune window, else at the last space with "..." appended.
func GenerateExcerpt(content string) string {
	clean := strings.Join(strings.FieldsFunc(content, isExcerptSpace), " ")

	runes := []rune(clean)
	if len(runes) <= ExcerptLength {
		return clean
	}

	window := runes[:ExcerptLength]

	lastSentence := -1
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '.' || window[i] == '!' || window[i] == '?' {
			lastSentence = i
			break
		}
	}
	if lastSentence > sentenceCutMin {
		return string(window[:lastSentence+1])
	}

	lastSpace := -1
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' {
			lastSpace = i
			break
		}
	}
	if lastSpace > 0 {
		return string(window[:lastSpace]) + "..."
	}
	return string(window) + "..."
}

// isExcerptSpace also treats the \x1c-\x1f separators as whitespace,
// matching the set the slug rules collapse.
func isExcerptSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
