package search

import (
	"strings"

	"listings-search/internal/lexicon"
)

// Parser extracts structured filters from free text. All matchers are
// compiled once from the lexicon at construction; Parse itself is pure and
// safe for concurrent use.
type Parser struct {
	lex        *lexicon.Lexicon
	norm       *Normalizer
	structural []structuralPattern
	types      []typeMatcher
	amenities  []amenityMatcher
	cities     []string
	states     []string
}

func NewParser(lex *lexicon.Lexicon) *Parser {
	p := &Parser{
		lex:  lex,
		norm: NewNormalizer(lex),
	}

	p.structural = []structuralPattern{
		compileStructuralPattern(lex.BedroomTerms, func(m *NumericMatches, c *NumericConstraint) { m.Bedrooms = c }),
		compileStructuralPattern(lex.BathroomTerms, func(m *NumericMatches, c *NumericConstraint) { m.Bathrooms = c }),
		compileStructuralPattern(lex.LivingRoomTerms, func(m *NumericMatches, c *NumericConstraint) { m.LivingRooms = c }),
		compileStructuralPattern(lex.KitchenTerms, func(m *NumericMatches, c *NumericConstraint) { m.Kitchens = c }),
	}

	p.types = compileTypeMatchers(lex)
	p.amenities = compileAmenityMatchers(lex)
	p.cities, p.states = compileGeoIndex(lex)
	return p
}

// Parse normalizes raw text and runs every extractor over it. The returned
// string is the normalized text the compiler feeds to to_tsquery and
// similarity matching.
func (p *Parser) Parse(raw string) (string, Extracted) {
	text := p.norm.Normalize(raw)

	ex := Extracted{
		Numbers:          p.ExtractNumbers(text),
		Price:            p.ExtractPriceRange(text),
		PropertyType:     p.DetectPropertyType(text),
		Amenities:        p.ExtractAmenities(text),
		Geo:              p.ExtractGeo(text),
		Qualifiers:       p.ExtractQualifiers(text),
		PurchaseCategory: p.DetectPurchaseCategory(text),
	}
	ex.StructuralOnly = p.isStructuralOnly(text)
	return text, ex
}

// isStructuralOnly reports whether text, minus noise words, is nothing but
// counts and room terms. "2 bedroom 2 bathroom" carries no searchable words,
// so the compiler drops the full-text block for it.
func (p *Parser) isStructuralOnly(text string) bool {
	seen := false
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == '-' }) {
		if p.lex.IsNoiseWord(tok) {
			continue
		}
		if !isCountToken(tok) && !p.lex.IsStructuralWord(tok) {
			return false
		}
		seen = true
	}
	return seen
}

func isCountToken(tok string) bool {
	if _, ok := wordNumbers[tok]; ok {
		return true
	}
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}
