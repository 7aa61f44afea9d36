// Package wordgen expands personal-context tokens into a bounded, deduplicated
// password candidate list. Everything in this package is pure: no I/O, no
// goroutines, no shared mutable state.
package wordgen

const (
	DefaultMaxWords        = 20000
	DefaultMaxComboParts   = 3
	DefaultMaxLeetVariants = 40
)

// Rules holds the fixed transformation tables used by the engine.
// Treat a Rules value as read-only once handed to an Engine.
type Rules struct {
	// Substitutions maps a character to its leet replacements. Only the first
	// replacement of each entry is used when expanding.
	Substitutions map[rune][]string
	Suffixes      []string
	Prefixes      []string

	MaxComboParts   int
	MaxLeetVariants int

	// LeetYears appends every year to every leet variant as well as to every
	// case variant.
	LeetYears bool
}

var defaultSubstitutions = map[rune][]string{
	'a': {"4", "@"}, 'A': {"4", "@"},
	'e': {"3"}, 'E': {"3"},
	'i': {"1", "!"}, 'I': {"1", "!"},
	'o': {"0"}, 'O': {"0"},
	's': {"5", "$"}, 'S': {"5", "$"},
	't': {"7"}, 'T': {"7"},
	'l': {"1"}, 'L': {"1"},
}

var defaultSuffixes = []string{"", "1", "12", "123", "1234", "12345", "!", "@", "#", "$", "2022", "2023", "2024", "2025"}

var defaultPrefixes = []string{"", "!", "@", "#"}

// DefaultRules returns a fresh copy of the built-in tables.
func DefaultRules() Rules {
	return Rules{
		Substitutions:   cloneSubstitutions(defaultSubstitutions),
		Suffixes:        append([]string(nil), defaultSuffixes...),
		Prefixes:        append([]string(nil), defaultPrefixes...),
		MaxComboParts:   DefaultMaxComboParts,
		MaxLeetVariants: DefaultMaxLeetVariants,
		LeetYears:       true,
	}
}

func cloneSubstitutions(src map[rune][]string) map[rune][]string {
	out := make(map[rune][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// withDefaults back-fills zero-valued fields so a partially specified Rules
// still behaves sensibly.
func (r Rules) withDefaults() Rules {
	if r.Substitutions == nil {
		r.Substitutions = cloneSubstitutions(defaultSubstitutions)
	}
	if r.Suffixes == nil {
		r.Suffixes = append([]string(nil), defaultSuffixes...)
	}
	if r.Prefixes == nil {
		r.Prefixes = append([]string(nil), defaultPrefixes...)
	}
	if r.MaxComboParts <= 0 {
		r.MaxComboParts = DefaultMaxComboParts
	}
	if r.MaxLeetVariants <= 0 {
		r.MaxLeetVariants = DefaultMaxLeetVariants
	}
	return r
}

// firstSubstitute returns the replacement the engine uses for ch.
func (r Rules) firstSubstitute(ch rune) (string, bool) {
	subs, ok := r.Substitutions[ch]
	if !ok || len(subs) == 0 {
		return "", false
	}
	return subs[0], true
}
