// Package listings executes compiled search queries against PostgreSQL and
// serves results through a read-through Redis cache.
package listings

import (
	"time"
)

// Listing is one row of the listings table joined with its effective
// featured priority. Nullable columns map to pointers.
type Listing struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	PurchaseCategory string     `json:"purchase_category"`
	PropertyType     string     `json:"property_type,omitempty"`
	Price            float64    `json:"price"`
	RentalPeriod     string     `json:"rental_period,omitempty"`
	Location         string     `json:"location,omitempty"`
	State            string     `json:"state,omitempty"`
	Bedrooms         *int       `json:"bedrooms,omitempty"`
	Bathrooms        *int       `json:"bathrooms,omitempty"`
	LivingRooms      *int       `json:"living_rooms,omitempty"`
	Kitchens         *int       `json:"kitchens,omitempty"`
	LandSize         *float64   `json:"land_size,omitempty"`
	Amenities        []string   `json:"amenities,omitempty"`
	IsFeatured       bool       `json:"is_featured"`
	FeaturedExpires  *time.Time `json:"featured_expires_at,omitempty"`
	AgentID          *int64     `json:"agent_id,omitempty"`
	AgencyID         *int64     `json:"agency_id,omitempty"`
	Views            int64      `json:"views"`
	CreatedAt        time.Time  `json:"created_at"`

	// COALESCE(agency priority, agent priority, 0) from the join.
	EffectivePriority int `json:"effective_priority"`
}

// SearchResult is the executor output handed back to the HTTP layer.
type SearchResult struct {
	Listings   []Listing `json:"listings"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
