package wordgen

import (
	"strings"
	"unicode"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

// CollectTokens splits each field on commas and whitespace and merges the
// pieces into one ordered token list. Pieces are NFC-normalized; blanks are
// dropped. Duplicates are kept so permutations see the caller's order.
func CollectTokens(fields ...string) []string {
	var tokens []string
	for _, field := range fields {
		for _, piece := range strings.Fields(strings.ReplaceAll(field, ",", " ")) {
			tokens = append(tokens, norm.NFC.String(piece))
		}
	}
	return cleanTokens(tokens)
}

// cleanTokens trims every token and drops the blank ones.
func cleanTokens(tokens []string) []string {
	return lo.FilterMap(tokens, func(tok string, _ int) (string, bool) {
		tok = strings.TrimSpace(tok)
		return tok, tok != ""
	})
}

// isAlnum reports whether s is non-empty and made only of letters and digits.
func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
