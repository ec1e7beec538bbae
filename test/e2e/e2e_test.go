// Package e2e exercises a running search service over HTTP. The tests are
// skipped unless E2E_BASE_URL points at a live instance with seeded data.
package e2e

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseURL(t *testing.T) string {
	t.Helper()
	base := os.Getenv("E2E_BASE_URL")
	if base == "" {
		t.Skip("E2E_BASE_URL not set, skipping end-to-end tests")
	}
	return base
}

func get(t *testing.T, rawURL string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	resp := get(t, baseURL(t)+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearch_FreeText(t *testing.T) {
	base := baseURL(t)

	query := url.Values{}
	query.Set("search", "2 bedroom apartment in lekki under 5m rent")
	query.Set("limit", "5")

	resp := get(t, base+"/api/listings/search?"+query.Encode(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Listings []struct {
				Status   string `json:"status"`
				Bedrooms *int   `json:"bedrooms"`
			} `json:"listings"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Page)
	assert.Equal(t, 5, body.Data.Limit)

	for _, l := range body.Data.Listings {
		assert.Equal(t, "available", l.Status, "guests only see available listings")
		if l.Bedrooms != nil {
			assert.Equal(t, 2, *l.Bedrooms)
		}
	}
}

func TestSearch_RoleHeaderChangesVisibility(t *testing.T) {
	base := baseURL(t)

	resp := get(t, base+"/api/listings/search", map[string]string{
		"X-User-Role": "admin",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	resp := get(t, baseURL(t)+"/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
