package wordgen

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CaseVariants returns the sorted set of case forms of word: as given,
// lowercase, uppercase, capitalized, and (for words longer than one
// character) first letter upper-cased with the rest lowercased.
func CaseVariants(word string) []string {
	set := map[string]struct{}{
		word:                  {},
		strings.ToLower(word): {},
		strings.ToUpper(word): {},
		capitalize(word):      {},
	}
	if utf8.RuneCountInString(word) > 1 {
		set[upperFirst(word)] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// capitalize title-cases the first character and lowercases the rest.
func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToTitle(first)) + strings.ToLower(word[size:])
}

// upperFirst upper-cases the first character and lowercases the rest. It
// differs from capitalize only for runes whose title and upper forms differ.
func upperFirst(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
