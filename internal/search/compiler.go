package search

import (
	"strings"

	"github.com/lib/pq"

	"listings-search/internal/lexicon"
)

// Config bounds pagination and tunes the trigram similarity cutoff.
type Config struct {
	DefaultLimit        int
	MaxLimit            int
	SimilarityThreshold float64
}

// Statuses every role may see without owning the listing.
var publicStatuses = []string{"available", "sold", "under offer"}

const (
	selectColumns = `l.*, COALESCE(a.featured_priority, g.featured_priority, 0) AS effective_priority`

	fromClause = ` FROM listings l` +
		` LEFT JOIN agencies a ON l.agency_id = a.id` +
		` LEFT JOIN agents g ON l.agent_id = g.id`

	searchVectorSQL = `to_tsvector('english', COALESCE(l.title, '') || ' ' || COALESCE(l.description, '') || ' ' || COALESCE(l.location, '') || ' ' || COALESCE(l.state, ''))`

	// Stored prices carry their own period; comparison happens in
	// monthly-equivalent space. One-time listings fall outside the CASE
	// and are excluded by the rental_period guard added alongside it.
	monthlyPriceSQL = `(CASE l.rental_period` +
		` WHEN 'yearly' THEN l.price / 12.0` +
		` WHEN 'monthly' THEN l.price` +
		` WHEN 'weekly' THEN l.price * 4.333` +
		` WHEN 'nightly' THEN l.price * 30.417` +
		` END)`

	periodicGuardSQL = `l.rental_period IN ('yearly', 'monthly', 'weekly', 'nightly')`
)

// Compiler turns a SearchRequest plus an ActorContext into a parameterized
// PostgreSQL query. It is pure and safe for concurrent use; all state is the
// immutable lexicon loaded at construction.
type Compiler struct {
	parser *Parser
	lex    *lexicon.Lexicon
	cfg    Config
}

func NewCompiler(lex *lexicon.Lexicon, cfg Config) *Compiler {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = 0.25
	}
	return &Compiler{parser: NewParser(lex), lex: lex, cfg: cfg}
}

// Parser exposes the compiler's parser for callers that only need extraction.
func (c *Compiler) Parser() *Parser { return c.parser }

// BuildListingsQuery compiles one search. It never fails: malformed inputs
// degrade to absent filters, and the output always satisfies the
// placeholder/values arity invariant.
func (c *Compiler) BuildListingsQuery(req *SearchRequest, actor ActorContext) CompiledQuery {
	var text string
	var ex Extracted
	if strings.TrimSpace(req.Search) != "" {
		text, ex = c.parser.Parse(req.Search)
	}
	f := c.parser.MergeFilters(req, text, &ex)

	b := newConditionBuilder()

	c.addVisibility(b, &f, actor)
	c.addCategory(b, &f)
	c.addPrice(b, &f)
	c.addGeo(b, &f)
	c.addPropertyType(b, &f)
	c.addStructural(b, &f)
	c.addOwnership(b, &f, actor)
	c.addAmenities(b, &f)
	tsQuery := c.addTextSearch(b, &f)

	where := b.whereClause()
	countValues := b.snapshot()
	countQuery := `SELECT COUNT(*)` + fromClause + where

	orderBy := c.orderByClause(b, &f, tsQuery)

	page, limit := c.pagination(req)
	offset := (page - 1) * limit
	tail := " " + b.expr("LIMIT %s OFFSET %s", limit, offset)

	query := `SELECT ` + selectColumns + fromClause + where + orderBy + tail

	return CompiledQuery{
		Query:       query,
		Values:      b.values,
		CountQuery:  countQuery,
		CountValues: countValues,
		Page:        page,
		Limit:       limit,
	}
}

// addVisibility applies step 1: role-based status defaults, overridden by an
// explicit status filter. "all" falls through to the role defaults, and the
// "featured" pseudo-status becomes a flag-plus-expiry check.
func (c *Compiler) addVisibility(b *conditionBuilder, f *EffectiveFilters, actor ActorContext) {
	if f.Status != "" && f.Status != "all" {
		if f.Status == "featured" {
			b.addRaw(`(l.is_featured = TRUE AND l.featured_expires_at > NOW())`)
		} else {
			b.add(`l.status = %s`, f.Status)
		}
		return
	}

	switch actor.Role {
	case RoleAdmin:
		// Unrestricted.
	case RoleAgent:
		b.add(`(l.status ILIKE ANY(%s) OR l.agent_id = %s)`, pq.Array(publicStatuses), actor.UserID)
	case RoleAgencyAdmin:
		b.add(`(l.agency_id = %s OR l.status ILIKE ANY(%s))`, actor.AgencyID, pq.Array(publicStatuses))
	default:
		b.add(`l.status = %s`, "available")
	}
}

func (c *Compiler) addCategory(b *conditionBuilder, f *EffectiveFilters) {
	if f.PurchaseCategory != "" {
		b.add(`l.purchase_category ILIKE %s`, f.PurchaseCategory)
	}
	if f.Price != nil && f.Price.Period != "" && !f.CategoryExplicit {
		// A rental period in the text implies the caller wants a rental
		// listing even when no category keyword appeared.
		b.add(`l.purchase_category = ANY(%s)`, pq.Array(rentalCategories))
	}
}

func (c *Compiler) addPrice(b *conditionBuilder, f *EffectiveFilters) {
	if f.MinPrice == nil && f.MaxPrice == nil {
		return
	}

	period := ""
	if f.Price != nil {
		period = f.Price.Period
	}

	if period == "" {
		if f.MinPrice != nil {
			b.add(`l.price >= %s`, *f.MinPrice)
		}
		if f.MaxPrice != nil {
			b.add(`l.price <= %s`, *f.MaxPrice)
		}
		return
	}

	b.addRaw(periodicGuardSQL)
	if f.MinPrice != nil {
		b.add(monthlyPriceSQL+` >= %s`, MonthlyEquivalent(*f.MinPrice, period))
	}
	if f.MaxPrice != nil {
		b.add(monthlyPriceSQL+` <= %s`, MonthlyEquivalent(*f.MaxPrice, period))
	}
}

func (c *Compiler) addGeo(b *conditionBuilder, f *EffectiveFilters) {
	if f.Location != "" {
		b.add(`l.location ILIKE %s`, "%"+f.Location+"%")
	}
	if f.State != "" {
		b.add(`l.state ILIKE %s`, "%"+f.State+"%")
	}
}

// addPropertyType matches the canonical type or any of its synonyms, which
// guards against inconsistent data entry in the listings table. The
// one-bedroom widening folds Self-Contain into an Apartment search.
func (c *Compiler) addPropertyType(b *conditionBuilder, f *EffectiveFilters) {
	if f.PropertyType == "" {
		return
	}
	accepted := c.typeVariants(f.PropertyType)
	if f.WidenSelfContain {
		accepted = append(accepted, c.typeVariants("Self-Contain")...)
	}
	b.add(`l.property_type ILIKE ANY(%s)`, pq.Array(accepted))
}

func (c *Compiler) typeVariants(canonical string) []string {
	out := []string{canonical}
	out = append(out, c.lex.SynonymsFor(canonical)...)
	return out
}

func (c *Compiler) addStructural(b *conditionBuilder, f *EffectiveFilters) {
	addCount := func(column string, nc *NumericConstraint) {
		if nc == nil {
			return
		}
		b.add(column+` `+nc.Operator+` %s`, nc.Value)
	}
	addCount(`l.bedrooms`, f.Bedrooms)
	addCount(`l.bathrooms`, f.Bathrooms)
	addCount(`l.living_rooms`, f.LivingRooms)
	addCount(`l.kitchens`, f.Kitchens)

	if f.LandSizeSqm != nil {
		b.add(`l.land_size >= %s`, *f.LandSizeSqm)
	}
}

func (c *Compiler) addOwnership(b *conditionBuilder, f *EffectiveFilters, actor ActorContext) {
	if f.ZoningType != "" {
		b.add(`l.zoning_type ILIKE %s`, f.ZoningType)
	}
	if f.TitleType != "" {
		b.add(`l.title_type ILIKE %s`, f.TitleType)
	}
	if f.AgentID != 0 {
		b.add(`l.agent_id = %s`, f.AgentID)
	}
	// Agency admins already carry agency-aware visibility from step 1.
	if f.AgencyID != 0 && actor.Role != RoleAgencyAdmin {
		b.add(`l.agency_id = %s`, f.AgencyID)
	}
}

// addAmenities is a soft filter: any one amenity hit qualifies the row.
func (c *Compiler) addAmenities(b *conditionBuilder, f *EffectiveFilters) {
	if len(f.Amenities) == 0 {
		return
	}
	var parts []string
	for _, amenity := range f.Amenities {
		pattern := "%" + amenity + "%"
		parts = append(parts,
			b.expr(`l.amenities::text ILIKE %s`, pattern),
			b.expr(`l.description ILIKE %s`, pattern),
		)
	}
	b.addRaw(`(` + strings.Join(parts, " OR ") + `)`)
}

// addTextSearch builds the full-text OR-block: tsquery match, trigram
// similarity above the threshold, and an ILIKE fallback, any of which
// qualifies the row. Structural-only text skips the block so a precise
// count query is not diluted by generic matches. Returns the tsquery string
// for the ranking clause, or "".
func (c *Compiler) addTextSearch(b *conditionBuilder, f *EffectiveFilters) string {
	if f.Text == "" || f.StructuralOnly {
		return ""
	}
	tsQuery := toTSQuery(f.Text)
	if tsQuery == "" {
		return ""
	}

	pattern := "%" + f.Text + "%"
	parts := []string{
		b.expr(searchVectorSQL+` @@ to_tsquery('english', %s)`, tsQuery),
		b.expr(`GREATEST(similarity(l.title, %s), similarity(l.location, %s), similarity(l.state, %s), similarity(l.description, %s)) > %s`,
			f.Text, f.Text, f.Text, f.Text, c.cfg.SimilarityThreshold),
		b.expr(`(l.title ILIKE %s OR l.location ILIKE %s OR l.state ILIKE %s OR l.description ILIKE %s)`,
			pattern, pattern, pattern, pattern),
	}
	b.addRaw(`(` + strings.Join(parts, " OR ") + `)`)
	return tsQuery
}

// toTSQuery joins the alphanumeric tokens of normalized text into a
// conjunctive tsquery. Punctuation-only tokens would break to_tsquery's
// syntax, so they are dropped.
func toTSQuery(text string) string {
	var tokens []string
	for _, tok := range strings.Fields(text) {
		cleaned := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, tok)
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return strings.Join(tokens, " & ")
}

// orderByClause builds the tiered ranking expression with bound parameters.
// All values appear here after the count snapshot, so the count query's
// parameter prefix stays intact.
func (c *Compiler) orderByClause(b *conditionBuilder, f *EffectiveFilters, tsQuery string) string {
	var keys []string

	if tier := c.tierExpr(b, f); tier != "" {
		keys = append(keys, tier+" ASC")
	}

	if explicit := explicitSortKey(f.SortBy); explicit != "" {
		keys = append(keys, explicit)
	}

	if tsQuery != "" {
		keys = append(keys, b.expr(`ts_rank(`+searchVectorSQL+`, to_tsquery('english', %s))`, tsQuery)+" DESC")
	}

	keys = append(keys,
		`(l.is_featured = TRUE AND l.featured_expires_at > NOW()) DESC`,
		`effective_priority DESC`,
	)
	if f.SortBy != SortDateAsc && f.SortBy != SortDateDesc {
		keys = append(keys, `l.created_at DESC`)
	}

	return " ORDER BY " + strings.Join(keys, ", ")
}

// tierExpr buckets rows by how well they match the detected geography,
// category and bedroom count: tier 0 matches all three, down to tier 3 for
// everything else. Without a detected state every row is tier 3 and the
// expression is omitted.
func (c *Compiler) tierExpr(b *conditionBuilder, f *EffectiveFilters) string {
	if f.TierState == "" {
		return ""
	}
	statePattern := "%" + f.TierState + "%"

	var whens []string
	if f.TierCategory != "" && f.TierBedrooms != nil {
		whens = append(whens, b.expr(
			`WHEN l.state ILIKE %s AND l.purchase_category ILIKE %s AND l.bedrooms = %s THEN 0`,
			statePattern, f.TierCategory, *f.TierBedrooms))
	}
	if f.TierCategory != "" {
		whens = append(whens, b.expr(
			`WHEN l.state ILIKE %s AND l.purchase_category ILIKE %s THEN 1`,
			statePattern, f.TierCategory))
	}
	whens = append(whens, b.expr(`WHEN l.state ILIKE %s THEN 2`, statePattern))

	return `(CASE ` + strings.Join(whens, " ") + ` ELSE 3 END)`
}

func explicitSortKey(sortBy string) string {
	switch sortBy {
	case SortPriceAsc:
		return `l.price ASC`
	case SortPriceDesc:
		return `l.price DESC`
	case SortDateAsc:
		return `l.created_at ASC`
	case SortDateDesc:
		return `l.created_at DESC`
	case SortViewsAsc:
		return `l.views ASC`
	case SortViewsDesc:
		return `l.views DESC`
	}
	return ""
}

func (c *Compiler) pagination(req *SearchRequest) (page, limit int) {
	page = req.Page
	if page < 1 {
		page = 1
	}
	limit = req.Limit
	if limit <= 0 {
		limit = c.cfg.DefaultLimit
	}
	if limit > c.cfg.MaxLimit {
		limit = c.cfg.MaxLimit
	}
	return page, limit
}
