package parser

import "unicode"

// Tokenize splits raw text into maximal non-whitespace runs in their
// original left-to-right order. Whitespace of any kind (space, tab,
// newline) is dropped; empty or all-whitespace input yields no tokens.
func Tokenize(s string) []string {
	var tokens []string
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}
