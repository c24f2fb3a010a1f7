package util

import (
	"strings"
	"unicode/utf8"
)

const fence = "```"

// StripCodeFences removes one leading ``` (optionally tagged json, any case)
// and one trailing ```, trimming surrounding whitespace.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fence) {
		s = s[len(fence):]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most n runes, appending suffix when something was cut.
func Truncate(s string, n int, suffix string) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + suffix
}
