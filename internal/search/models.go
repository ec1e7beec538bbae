// Package search compiles listings search requests (free text plus explicit
// filters) into parameterized PostgreSQL queries. The package is pure: no
// I/O, no shared mutable state, safe for concurrent use.
package search

// Role is the caller's role as established by upstream authentication.
type Role string

const (
	RoleGuest       Role = "guest"
	RoleClient      Role = "client"
	RoleAgent       Role = "agent"
	RoleAgencyAdmin Role = "agency_admin"
	RoleAdmin       Role = "admin"
)

// ActorContext identifies who is searching. The compiler never authenticates;
// it only branches on the role it is given.
type ActorContext struct {
	Role     Role
	UserID   int64
	AgencyID int64
}

// SearchRequest carries the raw query parameters of one search. Structural
// count fields are kept as strings because they may carry a comparison
// operator (">=3"); malformed values are dropped, never rejected.
type SearchRequest struct {
	Search string

	PurchaseCategory string
	MinPrice         *float64
	MaxPrice         *float64
	Location         string
	State            string
	PropertyType     string
	Bedrooms         string
	Bathrooms        string
	LivingRooms      string
	Kitchens         string
	LandSize         string
	ZoningType       string
	TitleType        string
	Status           string
	AgentID          int64
	AgencyID         int64

	SortBy string
	Page   int
	Limit  int

	// Context is a caller-supplied tag ("dashboard", "map", ...) used only
	// for request logging; the compiler ignores it.
	Context string
}

// Explicit sort options accepted in SearchRequest.SortBy. Qualifier words in
// free text may infer SortPriceAsc/SortPriceDesc when no explicit sort is set.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDateAsc   = "date_asc"
	SortDateDesc  = "date_desc"
	SortViewsAsc  = "views_asc"
	SortViewsDesc = "views_desc"
)

// NumericConstraint is a comparison against a structural count. Operator is
// one of "=", ">", "<", ">=", "<=".
type NumericConstraint struct {
	Operator string
	Value    int
}

// Rental periods carried by PriceConstraint and stored on listings.
const (
	PeriodYearly  = "yearly"
	PeriodMonthly = "monthly"
	PeriodWeekly  = "weekly"
	PeriodNightly = "nightly"
)

// PriceConstraint is a price bound extracted from free text. When Period is
// set, comparison happens in monthly-equivalent space.
type PriceConstraint struct {
	Min    *float64
	Max    *float64
	Value  *float64
	Period string
}

// GeoMatch is a resolved geography. State is always set when City is;
// state-only matches are allowed.
type GeoMatch struct {
	City  string
	State string
}

// Qualifiers holds soft-adjective inferences.
type Qualifiers struct {
	Sort string
}

// NumericMatches is the result of the structural extractor. LandSize is the
// raw matched string ("500 sqm"), normalized later.
type NumericMatches struct {
	Bedrooms    *NumericConstraint
	Bathrooms   *NumericConstraint
	LivingRooms *NumericConstraint
	Kitchens    *NumericConstraint
	LandSize    string
}

// Extracted gathers everything the extractors found in the normalized text.
type Extracted struct {
	Numbers          NumericMatches
	Price            *PriceConstraint
	PropertyType     string
	Amenities        []string
	Geo              GeoMatch
	Qualifiers       Qualifiers
	PurchaseCategory string

	// StructuralOnly is true when the text, minus noise words, consists
	// solely of digits, number words and structural terms. Such queries
	// skip the full-text OR-block entirely.
	StructuralOnly bool
}

// EffectiveFilters is the single merged view of explicit parameters and
// extracted values. All precedence rules live in MergeFilters; the compiler
// reads this struct and never looks back at the raw request.
type EffectiveFilters struct {
	Status           string
	PurchaseCategory string
	CategoryExplicit bool

	MinPrice *float64
	MaxPrice *float64
	Price    *PriceConstraint

	Location string
	State    string

	PropertyType     string
	WidenSelfContain bool

	Bedrooms    *NumericConstraint
	Bathrooms   *NumericConstraint
	LivingRooms *NumericConstraint
	Kitchens    *NumericConstraint

	LandSizeSqm *float64

	ZoningType string
	TitleType  string
	AgentID    int64
	AgencyID   int64

	SortBy    string
	Amenities []string

	Text           string
	StructuralOnly bool

	// Ranking inputs for the tier expression.
	TierState    string
	TierCategory string
	TierBedrooms *int
}

// CompiledQuery is the compiler output handed to the SQL executor. The
// Values slice matches the $n placeholders in Query 1:1 and in order;
// CountValues does the same for CountQuery.
type CompiledQuery struct {
	Query       string
	Values      []interface{}
	CountQuery  string
	CountValues []interface{}
	Page        int
	Limit       int
}
