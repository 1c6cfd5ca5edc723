package pages

import (
	"math"
	"strings"
	"unicode"
)

// wordsPerMinute is the average reading speed assumed for saved pages,
// based on research suggesting ~238 WPM for technical material.
const wordsPerMinute = 238

// EstimateReadTime estimates reading time in minutes for the given text.
// Returns a minimum of 1 minute for non-empty text and 0 for empty text.
func EstimateReadTime(text string) int {
	words := countWords(text)
	if words == 0 {
		return 0
	}

	minutes := math.Ceil(float64(words) / wordsPerMinute)
	if minutes < 1 {
		minutes = 1
	}
	return int(minutes)
}

// countWords counts words delimited by whitespace or punctuation.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}—–-", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}
