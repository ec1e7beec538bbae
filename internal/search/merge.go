package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Land size units normalized into square meters. Plot sizes vary by region
// and are not convertible, so a "plots" match never becomes a filter.
var landUnitFactors = []struct {
	re     *regexp.Regexp
	factor float64
}{
	{regexp.MustCompile(`hectares?\b`), 10000},
	{regexp.MustCompile(`acres?\b`), 4046.86},
	{regexp.MustCompile(`sqm\b|sq\.?\s?m\b|square met(?:er|re)s?\b`), 1},
}

var numericParamRe = regexp.MustCompile(`^(>=|<=|>|<)?\s*(\d+)$`)

// parseNumericParam parses an explicit structural filter such as "3" or
// ">=2". Malformed values are dropped, never surfaced as an error.
func parseNumericParam(raw string) *NumericConstraint {
	m := numericParamRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 0 {
		return nil
	}
	op := m[1]
	if op == "" {
		op = "="
	}
	return &NumericConstraint{Operator: op, Value: n}
}

// normalizeLandSize converts "500 sqm", "2 acres" or "1 hectare" into square
// meters. Unknown units yield nil.
func normalizeLandSize(raw string) *float64 {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil
	}
	numRe := regexp.MustCompile(`\d+(?:\.\d+)?`)
	numStr := numRe.FindString(raw)
	if numStr == "" {
		return nil
	}
	n, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil
	}
	rest := strings.TrimSpace(raw[strings.Index(raw, numStr)+len(numStr):])
	if rest == "" {
		// A bare number is taken as square meters.
		return &n
	}
	for _, u := range landUnitFactors {
		if u.re.MatchString(rest) {
			v := n * u.factor
			return &v
		}
	}
	return nil
}

// MergeFilters folds explicit request parameters and extracted values into
// one EffectiveFilters view. Explicit always beats inferred; amenities and
// qualifier sorts have no explicit equivalent and always apply.
func (p *Parser) MergeFilters(req *SearchRequest, text string, ex *Extracted) EffectiveFilters {
	f := EffectiveFilters{
		Status:         req.Status,
		Location:       req.Location,
		State:          req.State,
		ZoningType:     req.ZoningType,
		TitleType:      req.TitleType,
		AgentID:        req.AgentID,
		AgencyID:       req.AgencyID,
		SortBy:         req.SortBy,
		Amenities:      ex.Amenities,
		Text:           text,
		StructuralOnly: ex.StructuralOnly,
	}

	if req.PurchaseCategory != "" {
		f.PurchaseCategory = req.PurchaseCategory
		f.CategoryExplicit = true
	} else {
		f.PurchaseCategory = ex.PurchaseCategory
	}

	f.MinPrice, f.MaxPrice = req.MinPrice, req.MaxPrice
	f.Price = ex.Price
	if f.MinPrice == nil && f.MaxPrice == nil && ex.Price != nil {
		f.MinPrice, f.MaxPrice = ex.Price.Min, ex.Price.Max
		if ex.Price.Value != nil {
			// A lone amount reads as a budget ceiling.
			f.MaxPrice = ex.Price.Value
		}
	}

	if f.Location == "" {
		f.Location = ex.Geo.City
	}
	if f.State == "" {
		f.State = ex.Geo.State
	}

	if req.PropertyType != "" {
		f.PropertyType = req.PropertyType
	} else if ex.PropertyType != "" && !p.lex.IsNoiseType(ex.PropertyType) {
		// Generic canonicals like "House" match the lexicon but filter
		// nothing useful, so inferred noise types are dropped.
		f.PropertyType = ex.PropertyType
	}

	f.Bedrooms = pickConstraint(req.Bedrooms, ex.Numbers.Bedrooms)
	f.Bathrooms = pickConstraint(req.Bathrooms, ex.Numbers.Bathrooms)
	f.LivingRooms = pickConstraint(req.LivingRooms, ex.Numbers.LivingRooms)
	f.Kitchens = pickConstraint(req.Kitchens, ex.Numbers.Kitchens)

	if req.LandSize != "" {
		f.LandSizeSqm = normalizeLandSize(req.LandSize)
	} else if ex.Numbers.LandSize != "" {
		f.LandSizeSqm = normalizeLandSize(ex.Numbers.LandSize)
	}

	if f.PropertyType == "Apartment" && f.Bedrooms != nil &&
		f.Bedrooms.Operator == "=" && f.Bedrooms.Value == 1 {
		// One-bedroom apartment searches also cover self-contained units.
		f.WidenSelfContain = true
	}

	if f.SortBy == "" {
		f.SortBy = ex.Qualifiers.Sort
	}

	f.TierState = f.State
	f.TierCategory = f.PurchaseCategory
	if f.Bedrooms != nil && f.Bedrooms.Operator == "=" {
		v := f.Bedrooms.Value
		f.TierBedrooms = &v
	}

	return f
}

func pickConstraint(explicit string, inferred *NumericConstraint) *NumericConstraint {
	if explicit != "" {
		if c := parseNumericParam(explicit); c != nil {
			return c
		}
		// Malformed explicit value is dropped; the inferred one still holds.
	}
	return inferred
}
