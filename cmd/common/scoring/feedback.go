package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// patternMatch is the part of a matcher hit that feedback depends on.
type patternMatch struct {
	Pattern    string
	Token      string
	Dictionary string
}

const extraWordSuggestion = "Add another word or two. Uncommon words are better."

var defaultSuggestions = []string{
	"Use a few words, avoid common phrases.",
	"No need for symbols, digits, or uppercase letters.",
}

// leetChars are the characters commonly used as letter substitutes.
const leetChars = "4@3!1|05$7+8"

func feedbackFor(score int, matches []patternMatch) Feedback {
	if len(matches) == 0 {
		return Feedback{Suggestions: append([]string(nil), defaultSuggestions...)}
	}
	if score > 2 {
		return Feedback{Suggestions: []string{}}
	}

	longest := matches[0]
	for _, m := range matches[1:] {
		if utf8.RuneCountInString(m.Token) > utf8.RuneCountInString(longest.Token) {
			longest = m
		}
	}

	warning, suggestions := matchFeedback(longest, len(matches) == 1)
	return Feedback{
		Warning:     warning,
		Suggestions: append([]string{extraWordSuggestion}, suggestions...),
	}
}

func matchFeedback(m patternMatch, soleMatch bool) (string, []string) {
	pattern := strings.ToLower(m.Pattern)
	switch {
	case pattern == "dictionary":
		return dictionaryFeedback(m, soleMatch)
	case pattern == "spatial":
		warning := "Short keyboard patterns are easy to guess."
		if utf8.RuneCountInString(m.Token) >= 6 {
			warning = "Straight rows of keys are easy to guess."
		}
		return warning, []string{"Use a longer keyboard pattern with more turns."}
	case pattern == "repeat":
		warning := `Repeats like "aaa" are easy to guess.`
		if !isSingleCharRepeat(m.Token) {
			warning = `Repeats like "abcabcabc" are only slightly harder to guess than "abc".`
		}
		return warning, []string{"Avoid repeated words and characters."}
	case pattern == "sequence":
		return "Sequences like abc or 6543 are easy to guess.", []string{"Avoid sequences."}
	case strings.Contains(pattern, "year"):
		return "Recent years are easy to guess.", []string{"Avoid recent years.", "Avoid years that are associated with you."}
	case strings.Contains(pattern, "date"):
		return "Dates are often easy to guess.", []string{"Avoid dates and years that are associated with you."}
	}
	return "", nil
}

func dictionaryFeedback(m patternMatch, soleMatch bool) (string, []string) {
	dict := strings.ToLower(m.Dictionary)

	var warning string
	switch {
	case strings.Contains(dict, "password"):
		if soleMatch && !hasLeet(m.Token) {
			warning = "This is a very common password."
		} else {
			warning = "This is similar to a commonly used password."
		}
	case strings.Contains(dict, "user"):
		warning = "This is similar to one of your personal details."
	case strings.Contains(dict, "english") || strings.Contains(dict, "wiki"):
		if soleMatch {
			warning = "A word by itself is easy to guess."
		}
	case strings.Contains(dict, "name"):
		if soleMatch {
			warning = "Names and surnames by themselves are easy to guess."
		} else {
			warning = "Common names and surnames are easy to guess."
		}
	}

	var suggestions []string
	switch {
	case startsUpper(m.Token):
		suggestions = append(suggestions, "Capitalization doesn't help very much.")
	case isAllUpper(m.Token):
		suggestions = append(suggestions, "All-uppercase is almost as easy to guess as all-lowercase.")
	}
	if hasLeet(m.Token) {
		suggestions = append(suggestions, "Predictable substitutions like '@' instead of 'a' don't help very much.")
	}
	return warning, suggestions
}

// startsUpper matches an upper-case first letter followed by non-upper letters.
func startsUpper(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(first) {
		return false
	}
	return !strings.ContainsFunc(s[size:], unicode.IsUpper)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// hasLeet reports a token mixing letters with common letter substitutes.
func hasLeet(s string) bool {
	return strings.ContainsAny(s, leetChars) && strings.ContainsFunc(s, unicode.IsLetter)
}

func isSingleCharRepeat(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	for _, r := range s {
		if r != first {
			return false
		}
	}
	return true
}
