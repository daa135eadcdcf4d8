// Package textseg splits level text into typing segments.
package textseg

import (
	"strings"

	"github.com/siriwatk/sornpim/internal/model"
)

// DefaultMaxLineChars is the segment length used when no override is given.
const DefaultMaxLineChars = 70

// Segment normalizes whitespace and packs words into lines of at most
// maxLineChars runes. A single word longer than the limit becomes its own
// oversized line; words are never split. Empty input yields no segments.
func Segment(text string, maxLineChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := ""
	currentLen := 0
	for _, word := range words {
		wordLen := len([]rune(word))
		if current == "" {
			current = word
			currentLen = wordLen
			continue
		}
		if currentLen+1+wordLen <= maxLineChars {
			current += " " + word
			currentLen += 1 + wordLen
			continue
		}
		lines = append(lines, current)
		current = word
		currentLen = wordLen
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// IsThaiRune reports whether r falls in the Thai Unicode block.
func IsThaiRune(r rune) bool {
	return r >= 0x0E00 && r <= 0x0E7F
}

// DetectLanguage returns the majority script of the text by counting Thai
// versus Latin letters. Ties favor Thai.
func DetectLanguage(text string) model.Lang {
	thai := 0
	latin := 0
	for _, r := range text {
		switch {
		case IsThaiRune(r):
			thai++
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			latin++
		}
	}
	if thai >= latin {
		return model.LangThai
	}
	return model.LangEnglish
}
