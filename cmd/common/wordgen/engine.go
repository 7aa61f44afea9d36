package wordgen

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Options controls a single expansion.
type Options struct {
	// MaxWords caps the returned list. Non-positive means DefaultMaxWords.
	MaxWords    int
	AddReversed bool
	AddRepeats  bool
	// MaxCandidates caps the working set before sorting. Zero disables the cap;
	// a capped run is no longer guaranteed to return the smallest MaxWords
	// candidates.
	MaxCandidates int
}

// Result is the outcome of Engine.Expand.
type Result struct {
	Words []string
	// Candidates is the size of the deduplicated set before truncation.
	Candidates int
	// Capped reports that the working set reached MaxCandidates.
	Capped bool
}

// Engine expands tokens into candidate passwords using a fixed Rules value.
type Engine struct {
	rules     Rules
	tokenizer Tokenizer
}

type EngineOption func(*Engine)

// WithTokenizer enables the free-text tokenizer pass.
func WithTokenizer(t Tokenizer) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.tokenizer = t
		}
	}
}

func NewEngine(rules Rules, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:     rules.withDefaults(),
		tokenizer: NoTokenizer{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate expands tokens with the default rules and no tokenizer.
func Generate(tokens []string, years []int, opts Options) []string {
	return NewEngine(DefaultRules()).Generate(tokens, years, opts)
}

// Generate returns the sorted, deduplicated, truncated candidate list.
func (e *Engine) Generate(tokens []string, years []int, opts Options) []string {
	return e.Expand(tokens, years, opts).Words
}

// Expand runs the full expansion and reports how many candidates existed
// before truncation.
func (e *Engine) Expand(tokens []string, years []int, opts Options) Result {
	parts := cleanTokens(tokens)
	if len(parts) == 0 {
		return Result{Words: []string{}}
	}

	acc := newVariantSet(opts.MaxCandidates)
	yearSuffixes := make([]string, len(years))
	for i, y := range years {
		yearSuffixes[i] = strconv.Itoa(y)
	}

	arity := min(e.rules.MaxComboParts, len(parts))
	for r := 1; r <= arity && !acc.full(); r++ {
		for perm := range permutations(len(parts), r) {
			base := join(parts, perm)
			e.decorate(acc, base, yearSuffixes)

			if opts.AddReversed {
				acc.add(reverse(base))
			}
			if opts.AddRepeats {
				acc.add(base + base)
				if r == 1 {
					acc.add(base + base + base)
				}
			}
			if acc.full() {
				acc.capped = true
				break
			}
		}
	}

	e.addTokenized(acc, parts)

	words := acc.sorted()
	res := Result{Candidates: len(words), Capped: acc.capped}

	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	res.Words = words
	return res
}

// decorate adds every case variant of base along with its leet, affix and
// year forms.
func (e *Engine) decorate(acc *variantSet, base string, yearSuffixes []string) {
	for _, variant := range CaseVariants(base) {
		acc.add(variant)
		for _, leet := range e.rules.Leet(variant) {
			acc.add(leet)
			if e.rules.LeetYears {
				for _, y := range yearSuffixes {
					acc.add(leet + y)
				}
			}
		}
		for _, suf := range e.rules.Suffixes {
			acc.add(variant + suf)
		}
		for _, pre := range e.rules.Prefixes {
			acc.add(pre + variant)
		}
		for _, y := range yearSuffixes {
			acc.add(variant + y)
		}
	}
}

// addTokenized runs the optional tokenizer over the joined parts. Failures
// are ignored.
func (e *Engine) addTokenized(acc *variantSet, parts []string) {
	tokens, err := e.tokenizer.Tokenize(strings.Join(parts, " "))
	if err != nil {
		return
	}
	for _, tok := range tokens {
		if !isAlnum(tok) || len([]rune(tok)) <= 1 {
			continue
		}
		for _, v := range CaseVariants(tok) {
			acc.add(v)
		}
	}
}

// permutations yields every ordered selection of r distinct indexes out of n,
// in lexicographic index order. The yielded slice is reused between
// iterations.
func permutations(n, r int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if r <= 0 || r > n {
			return
		}
		perm := make([]int, r)
		used := make([]bool, n)

		var walk func(depth int) bool
		walk = func(depth int) bool {
			if depth == r {
				return yield(perm)
			}
			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				used[i] = true
				perm[depth] = i
				ok := walk(depth + 1)
				used[i] = false
				if !ok {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}

func join(parts []string, idx []int) string {
	var b strings.Builder
	for _, i := range idx {
		b.WriteString(parts[i])
	}
	return b.String()
}

func reverse(s string) string {
	runes := []rune(s)
	slices.Reverse(runes)
	return string(runes)
}

type variantSet struct {
	words  map[string]struct{}
	limit  int
	capped bool
}

func newVariantSet(limit int) *variantSet {
	return &variantSet{words: make(map[string]struct{}), limit: limit}
}

func (s *variantSet) add(w string) {
	if s.full() {
		if _, ok := s.words[w]; !ok {
			s.capped = true
		}
		return
	}
	s.words[w] = struct{}{}
}

func (s *variantSet) full() bool {
	return s.limit > 0 && len(s.words) >= s.limit
}

func (s *variantSet) sorted() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}
