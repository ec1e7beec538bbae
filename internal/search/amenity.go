package search

import (
	"sort"

	"listings-search/internal/lexicon"
)

type amenityMatcher struct {
	phrase    string
	canonical string
}

func compileAmenityMatchers(lex *lexicon.Lexicon) []amenityMatcher {
	var out []amenityMatcher
	for canonical, synonyms := range lex.Amenities {
		out = append(out, amenityMatcher{phrase: canonical, canonical: canonical})
		for _, s := range synonyms {
			out = append(out, amenityMatcher{phrase: s, canonical: canonical})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].phrase) != len(out[j].phrase) {
			return len(out[i].phrase) > len(out[j].phrase)
		}
		return out[i].phrase < out[j].phrase
	})
	return out
}

// ExtractAmenities returns every canonical amenity mentioned in normalized
// text, deduplicated, in match order.
func (p *Parser) ExtractAmenities(text string) []string {
	var found []string
	seen := map[string]bool{}
	for _, m := range p.amenities {
		if seen[m.canonical] {
			continue
		}
		if containsWord(text, m.phrase) {
			seen[m.canonical] = true
			found = append(found, m.canonical)
		}
	}
	return found
}
