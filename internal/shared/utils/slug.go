package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxSlugLength is the maximum number of runes in a generated slug
const MaxSlugLength = 50

var (
	// Anything that is not a word rune, whitespace or hyphen.
	// \s is ASCII-only here; the extra ranges cover the rest of Unicode whitespace.
	slugStripRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\v\x{85}\p{Z}\x1c-\x1f-]+`)
	// Runs of whitespace and hyphens
	slugSepRe = regexp.MustCompile(`[\s\v\x{85}\p{Z}\x1c-\x1f-]+`)
)

// GenerateSlug builds a URL-friendly slug from a blog title.
//
// Steps:
//  1. Lowercase
//  2. Strip everything except word runes, whitespace and hyphens
//  3. Collapse whitespace/hyphen runs into a single hyphen
//  4. Truncate to MaxSlugLength runes
//
// "Hello, World!  Go--Lang" → "hello-world-go-lang"
func GenerateSlug(title string) string {
	lower := strings.ToLower(title)
	cleaned := slugStripRe.ReplaceAllString(lower, "")
	hyphenated := slugSepRe.ReplaceAllString(cleaned, "-")
	return TruncateRunes(hyphenated, MaxSlugLength)
}

// SlugWithSuffix returns "base-n", shortening base so the result still fits MaxSlugLength.
func SlugWithSuffix(base string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	room := MaxSlugLength - len(suffix)
	if room < 0 {
		room = 0
	}
	return TruncateRunes(base, room) + suffix
}

// TruncateRunes cuts s to at most n runes
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
