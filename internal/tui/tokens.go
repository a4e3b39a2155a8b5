package tui

import (
	"strings"
	"unicode/utf8"
)

// estimateTokens returns approximate token count (~4 chars per token)
func estimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
