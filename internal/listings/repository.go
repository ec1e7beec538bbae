package listings

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"listings-search/internal/common/database"
	apperrors "listings-search/internal/common/errors"
	"listings-search/internal/common/logger"
	"listings-search/internal/common/metrics"
	"listings-search/internal/search"
)

// listingColumns is the scan order for `SELECT l.*, effective_priority`.
// It must match the listings table DDL.
var listingColumns = []string{
	"id", "title", "description", "status", "purchase_category",
	"property_type", "price", "rental_period", "location", "state",
	"bedrooms", "bathrooms", "living_rooms", "kitchens", "land_size",
	"amenities", "is_featured", "featured_expires_at", "agent_id",
	"agency_id", "views", "created_at", "effective_priority",
}

// Repository executes compiled queries. It owns no compilation logic: the
// query text and parameters arrive ready to run.
type Repository struct {
	db      *database.PostgresClient
	log     logger.Logger
	timeout time.Duration
}

func NewRepository(db *database.PostgresClient, log logger.Logger, timeout time.Duration) *Repository {
	return &Repository{db: db, log: log, timeout: timeout}
}

// Search runs the listing query and its count query, returning rows plus
// pagination metadata.
func (r *Repository) Search(ctx context.Context, cq search.CompiledQuery) (*SearchResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := r.db.Query(ctx, cq.Query, cq.Values...)
	metrics.SearchQueryDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, r.classify(ctx, err)
	}
	defer rows.Close()

	result := &SearchResult{
		Listings: []Listing{},
		Page:     cq.Page,
		Limit:    cq.Limit,
	}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError(err)
		}
		result.Listings = append(result.Listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(ctx, err)
	}

	start = time.Now()
	err = r.db.QueryRow(ctx, cq.CountQuery, cq.CountValues...).Scan(&result.TotalCount)
	metrics.SearchQueryDuration.WithLabelValues("count").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, r.classify(ctx, err)
	}

	if cq.Limit > 0 {
		result.TotalPages = (result.TotalCount + cq.Limit - 1) / cq.Limit
	}
	return result, nil
}

func (r *Repository) classify(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		r.log.WithError(err).Warn("search query timed out", nil)
		return apperrors.NewQueryTimeoutError(err.Error())
	}
	r.log.WithError(err).Error("search query failed", nil)
	return apperrors.NewQueryExecutionFailedError(err)
}

func scanListing(rows *sql.Rows) (Listing, error) {
	var (
		l               Listing
		description     sql.NullString
		propertyType    sql.NullString
		rentalPeriod    sql.NullString
		location        sql.NullString
		state           sql.NullString
		bedrooms        sql.NullInt64
		bathrooms       sql.NullInt64
		livingRooms     sql.NullInt64
		kitchens        sql.NullInt64
		landSize        sql.NullFloat64
		amenities       pq.StringArray
		featuredExpires sql.NullTime
		agentID         sql.NullInt64
		agencyID        sql.NullInt64
	)

	err := rows.Scan(
		&l.ID, &l.Title, &description, &l.Status, &l.PurchaseCategory,
		&propertyType, &l.Price, &rentalPeriod, &location, &state,
		&bedrooms, &bathrooms, &livingRooms, &kitchens, &landSize,
		&amenities, &l.IsFeatured, &featuredExpires, &agentID,
		&agencyID, &l.Views, &l.CreatedAt, &l.EffectivePriority,
	)
	if err != nil {
		return Listing{}, err
	}

	l.Description = description.String
	l.PropertyType = propertyType.String
	l.RentalPeriod = rentalPeriod.String
	l.Location = location.String
	l.State = state.String
	l.Bedrooms = intPtr(bedrooms)
	l.Bathrooms = intPtr(bathrooms)
	l.LivingRooms = intPtr(livingRooms)
	l.Kitchens = intPtr(kitchens)
	if landSize.Valid {
		l.LandSize = &landSize.Float64
	}
	l.Amenities = amenities
	if featuredExpires.Valid {
		l.FeaturedExpires = &featuredExpires.Time
	}
	if agentID.Valid {
		l.AgentID = &agentID.Int64
	}
	if agencyID.Valid {
		l.AgencyID = &agencyID.Int64
	}
	return l, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
