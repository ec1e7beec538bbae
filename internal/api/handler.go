// Package api exposes the listings search over HTTP. It is a thin shim: all
// query semantics live in the search compiler, all execution in listings.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "listings-search/internal/common/errors"
	"listings-search/internal/common/logger"
	"listings-search/internal/common/metrics"
	"listings-search/internal/listings"
	"listings-search/internal/search"
)

type SearchHandler struct {
	service *listings.Service
	log     logger.Logger
}

func NewSearchHandler(service *listings.Service, log logger.Logger) *SearchHandler {
	return &SearchHandler{service: service, log: log}
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles GET /api/listings/search.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := requestFromQuery(r)
	actor := actorFromHeaders(r)

	result, err := h.service.Search(r.Context(), req, actor)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		metrics.SearchRequestsTotal.WithLabelValues(string(actor.Role), "error").Inc()
		h.log.WithError(err).Error("search request failed", map[string]interface{}{
			"role":    string(actor.Role),
			"context": req.Context,
		})
		writeJSON(w, statusFor(stdErr), envelope{
			Success: false,
			Error:   &errorBody{Code: string(stdErr.Code), Message: stdErr.Message},
		})
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(actor.Role), "success").Inc()
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: result})
}

// requestFromQuery maps query-string parameters onto a SearchRequest.
// Non-numeric page/limit values fall back to their defaults instead of
// failing the request.
func requestFromQuery(r *http.Request) *search.SearchRequest {
	q := r.URL.Query()

	req := &search.SearchRequest{
		Search:           q.Get("search"),
		PurchaseCategory: q.Get("purchase_category"),
		Location:         q.Get("location"),
		State:            q.Get("state"),
		PropertyType:     q.Get("property_type"),
		Bedrooms:         q.Get("bedrooms"),
		Bathrooms:        q.Get("bathrooms"),
		LivingRooms:      q.Get("living_rooms"),
		Kitchens:         q.Get("kitchens"),
		LandSize:         q.Get("land_size"),
		ZoningType:       q.Get("zoning_type"),
		TitleType:        q.Get("title_type"),
		Status:           q.Get("status"),
		SortBy:           q.Get("sortBy"),
		Context:          q.Get("context"),
		Page:             intParam(q.Get("page")),
		Limit:            intParam(q.Get("limit")),
		AgentID:          int64Param(q.Get("agent_id")),
		AgencyID:         int64Param(q.Get("agency_id")),
	}

	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		req.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		req.MaxPrice = &v
	}
	return req
}

// actorFromHeaders trusts the identity headers set by the upstream auth
// layer. Unknown or missing roles degrade to guest visibility.
func actorFromHeaders(r *http.Request) search.ActorContext {
	role := search.Role(r.Header.Get("X-User-Role"))
	switch role {
	case search.RoleClient, search.RoleAgent, search.RoleAgencyAdmin, search.RoleAdmin:
	default:
		role = search.RoleGuest
	}
	return search.ActorContext{
		Role:     role,
		UserID:   int64Param(r.Header.Get("X-User-ID")),
		AgencyID: int64Param(r.Header.Get("X-Agency-ID")),
	}
}

func intParam(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func int64Param(raw string) int64 {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func statusFor(err *apperrors.StandardError) int {
	switch err.Code {
	case apperrors.ErrCodeInvalidSearchRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeQueryTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeListingNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
