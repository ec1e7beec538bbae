package search

import "regexp"

// Rental-type categories restricted to when a rental period is detected in
// free text without an explicit category filter.
var rentalCategories = []string{"Rent", "Lease", "Short Let", "Long Let"}

var (
	shortLetRe = regexp.MustCompile(`\bshort\s*-?\s*let\b|\bshortlet\b`)
	longLetRe  = regexp.MustCompile(`\blong\s*-?\s*let\b`)
	leaseRe    = regexp.MustCompile(`\blease\b|\bleasing\b`)
	saleRe     = regexp.MustCompile(`\bfor sale\b|\bsale\b|\bto buy\b|\bbuy\b`)
	rentRe     = regexp.MustCompile(`\brent\b|\brental\b|\brenting\b`)
)

// DetectPurchaseCategory resolves a category from free text. Specific long
// phrases are tried before the bare "rent" keyword so "short let" never
// collapses into Rent.
func (p *Parser) DetectPurchaseCategory(text string) string {
	switch {
	case shortLetRe.MatchString(text):
		return "Short Let"
	case longLetRe.MatchString(text):
		return "Long Let"
	case leaseRe.MatchString(text):
		return "Lease"
	case saleRe.MatchString(text):
		return "Sale"
	case rentRe.MatchString(text):
		return "Rent"
	}
	return ""
}
