package search

import (
	"listings-search/internal/lexicon"
)

// typeMatcher pairs one synonym phrase with its canonical property type.
// Matchers are ordered longest phrase first so "semi-detached duplex" wins
// over "duplex".
type typeMatcher struct {
	phrase    string
	canonical string
}

func compileTypeMatchers(lex *lexicon.Lexicon) []typeMatcher {
	entries := lex.OrderedSynonyms()
	out := make([]typeMatcher, 0, len(entries))
	for _, e := range entries {
		out = append(out, typeMatcher{phrase: e.Synonym, canonical: e.Canonical})
	}
	return out
}

// DetectPropertyType returns the canonical type of the first synonym found
// in normalized text, or "". Generic canonicals such as "House" are still
// returned here; the merge step decides whether they filter anything.
func (p *Parser) DetectPropertyType(text string) string {
	for _, m := range p.types {
		if containsWord(text, m.phrase) {
			return m.canonical
		}
	}
	return ""
}
