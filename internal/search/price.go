package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Multipliers that convert a price in a given rental period to its
// monthly-equivalent value. One-time prices have no period and are excluded
// from period-based comparison entirely.
var monthlyFactors = map[string]float64{
	PeriodYearly:  1.0 / 12,
	PeriodMonthly: 1,
	PeriodWeekly:  4.333,
	PeriodNightly: 30.417,
}

// MonthlyEquivalent converts value expressed per period into a per-month
// value. Unknown periods pass through unchanged.
func MonthlyEquivalent(value float64, period string) float64 {
	if f, ok := monthlyFactors[period]; ok {
		return value * f
	}
	return value
}

// periodGroups are checked in order; the first group with a hit wins.
var periodGroups = []struct {
	period   string
	synonyms []string
}{
	{PeriodYearly, []string{"per annum", "annually", "a year", "yearly", "year"}},
	{PeriodMonthly, []string{"per month", "a month", "monthly", "month"}},
	{PeriodWeekly, []string{"per week", "a week", "weekly", "week"}},
	{PeriodNightly, []string{"a night", "per night", "nightly", "night", "a day", "per day", "daily", "day"}},
}

const priceToken = `((?:₦\s*|n)?\d+(?:\.\d+)?\s*[kmb]?)`

var (
	betweenRe = regexp.MustCompile(`between\s+` + priceToken + `\s+(?:and|to)\s+` + priceToken)
	atLeastRe = regexp.MustCompile(`(?:at least|minimum of|minimum)\s+` + priceToken)
	atMostRe  = regexp.MustCompile(`(?:at most|maximum of|maximum)\s+` + priceToken)
	belowRe   = regexp.MustCompile(`(?:less than|cheaper than|under|below)\s+` + priceToken)
	aboveRe   = regexp.MustCompile(`(?:more than|greater than|expensive than|over|above)\s+` + priceToken)

	// markedValueRe requires a currency or magnitude marker; plainValueRe
	// accepts any number and is only trusted on longer queries.
	markedValueRe = regexp.MustCompile(`(?:₦\s*|\bn)(\d+(?:\.\d+)?)\s*([kmb])?\b|\b(\d+(?:\.\d+)?)\s*([kmb])\b`)
	plainValueRe  = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\b`)

	commaInNumberRe = regexp.MustCompile(`(\d),(\d)`)
)

// shortQueryTokens is the cutoff below which a bare unmarked number is
// assumed to be a structural count, not a price. Known precision limitation:
// a short query like "lekki 3" stays ambiguous and is resolved against price.
const shortQueryTokens = 4

// ExtractPriceRange finds a price bound in normalized text, or nil. Period
// words attach a rental period; "between", "under", "at least" and friends
// pick the range form.
func (p *Parser) ExtractPriceRange(text string) *PriceConstraint {
	cleaned := commaInNumberRe.ReplaceAllString(text, "$1$2")
	cleaned = commaInNumberRe.ReplaceAllString(cleaned, "$1$2") // 1,000,000 needs two passes
	cleaned = strings.ReplaceAll(cleaned, "naira", "₦")

	period := detectPeriod(cleaned)

	if m := betweenRe.FindStringSubmatch(cleaned); m != nil {
		lo, okLo := parsePriceValue(m[1])
		hi, okHi := parsePriceValue(m[2])
		if okLo && okHi {
			if lo > hi {
				lo, hi = hi, lo
			}
			return &PriceConstraint{Min: &lo, Max: &hi, Period: period}
		}
	}

	if v, ok := p.matchBound(cleaned, atLeastRe); ok {
		return &PriceConstraint{Min: &v, Period: period}
	}
	if v, ok := p.matchBound(cleaned, atMostRe); ok {
		return &PriceConstraint{Max: &v, Period: period}
	}
	if v, ok := p.matchBound(cleaned, belowRe); ok {
		return &PriceConstraint{Max: &v, Period: period}
	}
	if v, ok := p.matchBound(cleaned, aboveRe); ok {
		return &PriceConstraint{Min: &v, Period: period}
	}

	if v, ok := p.bareValue(cleaned); ok {
		return &PriceConstraint{Value: &v, Period: period}
	}

	if period != "" {
		// A period word alone still signals rental intent.
		return &PriceConstraint{Period: period}
	}

	return nil
}

// matchBound applies a range-form regex and rejects hits whose number is
// actually a structural count ("under 3 bedrooms").
func (p *Parser) matchBound(text string, re *regexp.Regexp) (float64, bool) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, false
	}
	token := text[loc[2]:loc[3]]
	if !hasPriceMarker(token) && p.followedByStructuralWord(text, loc[3]) {
		return 0, false
	}
	return parsePriceValue(token)
}

// bareValue accepts a lone number as a price only when it carries a currency
// or magnitude marker, or when the query is long enough that a structural
// misread is unlikely.
func (p *Parser) bareValue(text string) (float64, bool) {
	if loc := markedValueRe.FindStringIndex(text); loc != nil {
		if !p.followedByStructuralWord(text, loc[1]) {
			return parsePriceValue(text[loc[0]:loc[1]])
		}
	}

	if len(strings.Fields(text)) <= shortQueryTokens {
		return 0, false
	}

	for _, loc := range plainValueRe.FindAllStringIndex(text, -1) {
		if !p.followedByStructuralWord(text, loc[1]) {
			return parsePriceValue(text[loc[0]:loc[1]])
		}
	}
	return 0, false
}

func (p *Parser) followedByStructuralWord(text string, from int) bool {
	rest := strings.TrimLeft(text[from:], " -")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return false
	}
	return p.lex.IsStructuralWord(fields[0])
}

func detectPeriod(text string) string {
	for _, group := range periodGroups {
		for _, syn := range group.synonyms {
			if containsWord(text, syn) {
				return group.period
			}
		}
	}
	return ""
}

func hasPriceMarker(token string) bool {
	t := strings.TrimSpace(token)
	if strings.HasPrefix(t, "₦") || strings.HasPrefix(t, "n") {
		return true
	}
	switch t[len(t)-1] {
	case 'k', 'm', 'b':
		return true
	}
	return false
}

// parsePriceValue turns "₦1.5m", "n500k" or "2000000" into a float value.
func parsePriceValue(token string) (float64, bool) {
	t := strings.TrimSpace(token)
	t = strings.TrimPrefix(t, "₦")
	t = strings.TrimPrefix(t, "n")
	t = strings.TrimSpace(t)

	multiplier := 1.0
	if t != "" {
		switch t[len(t)-1] {
		case 'k':
			multiplier = 1e3
			t = t[:len(t)-1]
		case 'm':
			multiplier = 1e6
			t = t[:len(t)-1]
		case 'b':
			multiplier = 1e9
			t = t[:len(t)-1]
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v * multiplier, true
}

func containsWord(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		startOK := start == 0 || !isWordChar(text[start-1])
		endOK := end == len(text) || !isWordChar(text[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}
