package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeFor(t *testing.T, req *SearchRequest) EffectiveFilters {
	t.Helper()
	p := newTestParser(t)
	var text string
	var ex Extracted
	if req.Search != "" {
		text, ex = p.Parse(req.Search)
	}
	return p.MergeFilters(req, text, &ex)
}

func TestMergeFilters_ExplicitOverridesInferred(t *testing.T) {
	f := mergeFor(t, &SearchRequest{
		Search:   "2 bedroom flat in lekki",
		Bedrooms: "4",
	})

	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, NumericConstraint{Operator: "=", Value: 4}, *f.Bedrooms)
}

func TestMergeFilters_ExplicitPriceBeatsExtracted(t *testing.T) {
	max := 1_000_000.0
	f := mergeFor(t, &SearchRequest{
		Search:   "flat in yaba under 5m",
		MaxPrice: &max,
	})

	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 1_000_000.0, *f.MaxPrice)
	assert.Nil(t, f.MinPrice)
}

func TestMergeFilters_BareValueBecomesCeiling(t *testing.T) {
	f := mergeFor(t, &SearchRequest{Search: "3 bedroom at 200k monthly in gwarinpa"})

	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 200_000.0, *f.MaxPrice)
	require.NotNil(t, f.Price)
	assert.Equal(t, PeriodMonthly, f.Price.Period)
}

func TestMergeFilters_GeographyPrecedence(t *testing.T) {
	f := mergeFor(t, &SearchRequest{
		Search:   "flat in lekki",
		Location: "ajah",
	})

	assert.Equal(t, "ajah", f.Location)
	// The detected state still fills the gap left by the explicit params.
	assert.Equal(t, "lagos", f.State)
}

func TestMergeFilters_NoiseTypeSuppressed(t *testing.T) {
	f := mergeFor(t, &SearchRequest{Search: "house for rent in enugu"})
	assert.Empty(t, f.PropertyType)

	// An explicit filter is never second-guessed.
	f = mergeFor(t, &SearchRequest{PropertyType: "House"})
	assert.Equal(t, "House", f.PropertyType)
}

func TestMergeFilters_SelfContainWidening(t *testing.T) {
	tests := []struct {
		name     string
		req      *SearchRequest
		expected bool
	}{
		{
			name:     "one bedroom apartment widens",
			req:      &SearchRequest{Search: "1 bedroom apartment in uyo"},
			expected: true,
		},
		{
			name:     "explicit params widen too",
			req:      &SearchRequest{PropertyType: "Apartment", Bedrooms: "1"},
			expected: true,
		},
		{
			name:     "two bedrooms do not widen",
			req:      &SearchRequest{Search: "2 bedroom apartment"},
			expected: false,
		},
		{
			name:     "at least one does not widen",
			req:      &SearchRequest{PropertyType: "Apartment", Bedrooms: ">=1"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mergeFor(t, tt.req)
			assert.Equal(t, tt.expected, f.WidenSelfContain)
		})
	}
}

func TestMergeFilters_QualifierSortOnlyWhenNoExplicit(t *testing.T) {
	f := mergeFor(t, &SearchRequest{Search: "cheap flat in yaba"})
	assert.Equal(t, SortPriceAsc, f.SortBy)

	f = mergeFor(t, &SearchRequest{Search: "cheap flat in yaba", SortBy: SortDateDesc})
	assert.Equal(t, SortDateDesc, f.SortBy)
}

func TestMergeFilters_TierInputs(t *testing.T) {
	f := mergeFor(t, &SearchRequest{Search: "2 bedroom for rent in lekki"})

	assert.Equal(t, "lagos", f.TierState)
	assert.Equal(t, "Rent", f.TierCategory)
	require.NotNil(t, f.TierBedrooms)
	assert.Equal(t, 2, *f.TierBedrooms)
}

func TestParseNumericParam(t *testing.T) {
	tests := []struct {
		raw      string
		expected *NumericConstraint
	}{
		{"3", &NumericConstraint{Operator: "=", Value: 3}},
		{">=2", &NumericConstraint{Operator: ">=", Value: 2}},
		{"<= 4", &NumericConstraint{Operator: "<=", Value: 4}},
		{" 5 ", &NumericConstraint{Operator: "=", Value: 5}},
		{"abc", nil},
		{"3.5", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseNumericParam(tt.raw))
		})
	}
}

func TestNormalizeLandSize(t *testing.T) {
	float := func(v float64) *float64 { return &v }

	tests := []struct {
		raw      string
		expected *float64
	}{
		{"600 sqm", float(600)},
		{"2 acres", float(8093.72)},
		{"1 hectare", float(10000)},
		{"450", float(450)},
		{"3 plots", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := normalizeLandSize(tt.raw)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 0.01)
		})
	}
}
