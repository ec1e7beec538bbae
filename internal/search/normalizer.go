package search

import (
	"regexp"
	"sort"
	"strings"

	"listings-search/internal/lexicon"
)

// Normalizer lowercases queries and expands local slang into canonical
// phrases. Substitution happens on whole words only, so "ph" expands to
// "port harcourt" while "alpha" stays untouched.
type Normalizer struct {
	rules []slangRule
}

type slangRule struct {
	re          *regexp.Regexp
	replacement string
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NewNormalizer compiles the slang table once at construction.
func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	keys := make([]string, 0, len(lex.Slang))
	for k := range lex.Slang {
		keys = append(keys, k)
	}
	// Longer keys first so "v.i" wins over "vi"; ties alphabetical for
	// deterministic rule order.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	rules := make([]slangRule, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, slangRule{
			re:          regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`),
			replacement: lex.Slang[k],
		})
	}
	return &Normalizer{rules: rules}
}

// Normalize returns the canonical form of raw. It is idempotent: expansions
// never contain slang keys as whole words.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	s = whitespaceRe.ReplaceAllString(s, " ")
	for _, rule := range n.rules {
		s = rule.re.ReplaceAllString(s, rule.replacement)
	}
	return s
}
