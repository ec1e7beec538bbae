package search

var (
	cheapWords  = []string{"cheapest", "cheap", "affordable", "budget friendly", "low cost", "inexpensive"}
	luxuryWords = []string{"luxurious", "luxury", "expensive", "high end", "exquisite", "exotic", "premium", "upscale"}
)

// ExtractQualifiers maps soft adjectives to an inferred sort order. Cheap
// words beat luxury words when both appear. The inference only applies when
// the request carries no explicit sort; MergeFilters enforces that.
func (p *Parser) ExtractQualifiers(text string) Qualifiers {
	for _, w := range cheapWords {
		if containsWord(text, w) {
			return Qualifiers{Sort: SortPriceAsc}
		}
	}
	for _, w := range luxuryWords {
		if containsWord(text, w) {
			return Qualifiers{Sort: SortPriceDesc}
		}
	}
	return Qualifiers{}
}
