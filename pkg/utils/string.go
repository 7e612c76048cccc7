package utils

import (
	"strings"
	"unicode"
)

// CompressAllWhitespace collapses every whitespace run, newlines included, into one space
// and trims the ends. Used for single line fields such as photo captions.
func CompressAllWhitespace(s string) string {
	return strings.Join(strings.Fields(stripControl(s)), " ")
}

// CompressWhitespacePreserveNewlines cleans multi-line user text. Spaces within a line are
// collapsed, line endings are normalized to \n, and runs of blank lines shrink to one.
func CompressWhitespacePreserveNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(stripControl(line)), " ")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// stripControl drops control characters other than tabs and newlines.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			return -1
		}
		return r
	}, s)
}
