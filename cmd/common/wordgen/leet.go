package wordgen

import (
	"slices"
	"strings"
)

// LeetVariants expands word with the built-in substitution table and returns
// at most maxVariants results. A non-positive maxVariants selects
// DefaultMaxLeetVariants.
func LeetVariants(word string, maxVariants int) []string {
	r := Rules{Substitutions: defaultSubstitutions, MaxLeetVariants: maxVariants}
	return r.withDefaults().Leet(word)
}

// Leet returns the sorted leet variants of word, always including word itself:
// every single and every pair of substitutable positions replaced, plus one
// variant with every substitutable position replaced. The result is truncated
// to MaxLeetVariants after sorting.
func (r Rules) Leet(word string) []string {
	chars := []rune(word)

	var positions []int
	for i, ch := range chars {
		if _, ok := r.firstSubstitute(ch); ok {
			positions = append(positions, i)
		}
	}

	set := map[string]struct{}{word: {}}
	if len(positions) > 0 {
		for a := 0; a < len(positions); a++ {
			set[r.substitute(chars, positions[a])] = struct{}{}
			for b := a + 1; b < len(positions); b++ {
				set[r.substitute(chars, positions[a], positions[b])] = struct{}{}
			}
		}
		set[r.substitute(chars, positions...)] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)

	limit := r.MaxLeetVariants
	if limit <= 0 {
		limit = DefaultMaxLeetVariants
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// substitute rebuilds chars with the chosen positions replaced by their first
// substitute. positions must be ascending.
func (r Rules) substitute(chars []rune, positions ...int) string {
	var b strings.Builder
	b.Grow(len(chars) + len(positions))
	next := 0
	for i, ch := range chars {
		if next < len(positions) && positions[next] == i {
			next++
			if sub, ok := r.firstSubstitute(ch); ok {
				b.WriteString(sub)
				continue
			}
		}
		b.WriteRune(ch)
	}
	return b.String()
}
