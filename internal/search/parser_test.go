package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listings-search/internal/lexicon"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	return NewParser(lexicon.Default())
}

func TestNormalizer_SlangExpansion(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and expands abbreviations",
			input:    "2 Bed APT in VI",
			expected: "2 bed apartment in victoria island",
		},
		{
			name:     "slang only replaced on whole words",
			input:    "alpha apartment",
			expected: "alpha apartment",
		},
		{
			name:     "ph expands to port harcourt",
			input:    "selfcon in PH",
			expected: "self-con in port harcourt",
		},
		{
			name:     "collapses repeated whitespace",
			input:    "  3   bedroom   duplex ",
			expected: "3 bedroom duplex",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.norm.Normalize(tt.input)
			assert.Equal(t, tt.expected, got)

			// Normalization must be idempotent.
			assert.Equal(t, got, p.norm.Normalize(got))
		})
	}
}

func TestExtractNumbers(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		text     string
		expected NumericMatches
	}{
		{
			name: "two categories in one query",
			text: "2 bedroom 1 bathroom",
			expected: NumericMatches{
				Bedrooms:  &NumericConstraint{Operator: "=", Value: 2},
				Bathrooms: &NumericConstraint{Operator: "=", Value: 1},
			},
		},
		{
			name: "phrasal comparison cue",
			text: "at least 3 bedrooms in ikeja",
			expected: NumericMatches{
				Bedrooms: &NumericConstraint{Operator: ">=", Value: 3},
			},
		},
		{
			name: "symbolic comparison cue",
			text: ">=2 baths",
			expected: NumericMatches{
				Bathrooms: &NumericConstraint{Operator: ">=", Value: 2},
			},
		},
		{
			name: "word numbers",
			text: "two bed flat with one sitting room",
			expected: NumericMatches{
				Bedrooms:    &NumericConstraint{Operator: "=", Value: 2},
				LivingRooms: &NumericConstraint{Operator: "=", Value: 1},
			},
		},
		{
			name: "hyphenated count",
			text: "4-bedroom duplex",
			expected: NumericMatches{
				Bedrooms: &NumericConstraint{Operator: "=", Value: 4},
			},
		},
		{
			name:     "bare number without structural term is ignored",
			text:     "3 in lekki",
			expected: NumericMatches{},
		},
		{
			name: "land size captured raw",
			text: "500 sqm land in epe",
			expected: NumericMatches{
				LandSize: "500 sqm",
			},
		},
		{
			name:     "no numbers at all",
			text:     "duplex in gwarinpa",
			expected: NumericMatches{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractNumbers(tt.text)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectPropertyType(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "single word synonym", text: "nice flat in yaba", expected: "Apartment"},
		{name: "no partial word match", text: "flattering offer today", expected: ""},
		{name: "multi word synonym", text: "semi detached duplex for sale", expected: "Duplex"},
		{name: "hyphenated synonym", text: "self-con in surulere", expected: "Self-Contain"},
		{name: "longest synonym wins", text: "terrace house in wuse", expected: "Terrace"},
		{name: "generic type still detected", text: "house for rent", expected: "House"},
		{name: "nothing detected", text: "somewhere quiet", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.DetectPropertyType(tt.text))
		})
	}
}

func TestExtractAmenities(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "multiple amenities deduplicated to canonicals",
			text:     "furnished apartment with swimming pool and cctv",
			expected: []string{"furnished", "pool", "security"},
		},
		{
			name:     "synonym resolves to canonical",
			text:     "duplex with boys quarters and car park",
			expected: []string{"bq", "parking"},
		},
		{
			name:     "none found",
			text:     "3 bedroom flat",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractAmenities(tt.text)
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestExtractGeo(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		text     string
		expected GeoMatch
	}{
		{name: "city resolves its state", text: "2 bed in lekki", expected: GeoMatch{City: "lekki", State: "lagos"}},
		{name: "state only", text: "anywhere in lagos", expected: GeoMatch{State: "lagos"}},
		{name: "multi word city", text: "shop in victoria island", expected: GeoMatch{City: "victoria island", State: "lagos"}},
		{name: "expanded slang city", text: "flat in port harcourt", expected: GeoMatch{City: "port harcourt", State: "rivers"}},
		{name: "no geography", text: "cheap flat", expected: GeoMatch{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.ExtractGeo(tt.text))
		})
	}
}

func TestExtractQualifiers(t *testing.T) {
	p := newTestParser(t)

	assert.Equal(t, Qualifiers{Sort: SortPriceAsc}, p.ExtractQualifiers("cheap flat in yaba"))
	assert.Equal(t, Qualifiers{Sort: SortPriceDesc}, p.ExtractQualifiers("luxury penthouse in ikoyi"))
	assert.Equal(t, Qualifiers{Sort: SortPriceAsc}, p.ExtractQualifiers("cheap but luxury"))
	assert.Equal(t, Qualifiers{}, p.ExtractQualifiers("3 bedroom duplex"))
}

func TestDetectPurchaseCategory(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		text     string
		expected string
	}{
		{"2 bed for rent", "Rent"},
		{"short let in vi", "Short Let"},
		{"shortlet apartment", "Short Let"},
		{"land for sale in ajah", "Sale"},
		{"office space on lease", "Lease"},
		{"3 bedroom duplex", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.DetectPurchaseCategory(tt.text))
		})
	}
}

func TestParse_StructuralOnly(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{name: "counts and terms only", text: "2 living room", expected: true},
		{name: "noise words ignored", text: "a 2 bedroom", expected: true},
		{name: "word number counts", text: "two beds", expected: true},
		{name: "real words present", text: "2 bedroom flat", expected: false},
		{name: "geography present", text: "2 bedroom in lekki", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ex := p.Parse(tt.text)
			assert.Equal(t, tt.expected, ex.StructuralOnly)
		})
	}
}

func TestParse_FullExtraction(t *testing.T) {
	p := newTestParser(t)

	text, ex := p.Parse("Cheap 2 Bedroom APT in Lekki under 5m for rent")
	require.Equal(t, "cheap 2 bedroom apartment in lekki under 5m for rent", text)

	require.NotNil(t, ex.Numbers.Bedrooms)
	assert.Equal(t, NumericConstraint{Operator: "=", Value: 2}, *ex.Numbers.Bedrooms)
	assert.Equal(t, "Apartment", ex.PropertyType)
	assert.Equal(t, GeoMatch{City: "lekki", State: "lagos"}, ex.Geo)
	assert.Equal(t, "Rent", ex.PurchaseCategory)
	assert.Equal(t, SortPriceAsc, ex.Qualifiers.Sort)

	require.NotNil(t, ex.Price)
	require.NotNil(t, ex.Price.Max)
	assert.Equal(t, 5_000_000.0, *ex.Price.Max)
	assert.False(t, ex.StructuralOnly)
}
