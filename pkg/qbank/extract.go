package qbank

import (
	"regexp"
	"strings"
	"unicode"
)

// delimiterRun matches any run of commas, spaces, tabs and line breaks.
var delimiterRun = regexp.MustCompile(`[,\t\n\r ]+`)

// Extract splits free-form text into bank-filtered IDs.
//
// Order follows the input and duplicates are kept. Chunks that filter down
// to nothing are dropped, so malformed input yields an empty slice.
func Extract(text string, bank Bank) []string {
	ids := []string{}
	for _, chunk := range delimiterRun.Split(text, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if id := cleanID(chunk, bank); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// cleanID applies the bank's character class to one raw chunk.
func cleanID(raw string, bank Bank) string {
	keep := isDigit
	if bank == AMBOSS {
		keep = isAmbossRune
	}
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, raw)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

func isAmbossRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_':
		return true
	}
	return false
}
