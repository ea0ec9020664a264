package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/gig-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/gig-marketplace-api/internal/errors"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
)

func createGig(t *testing.T, env apiTestEnv, cookies []*http.Cookie, title string, budget float64) dto.GigDTO {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/gigs", map[string]interface{}{
		"title":       title,
		"description": title + " description",
		"budget":      budget,
	}, cookies)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var gig dto.GigDTO
	decodeJSON(t, w, &gig)
	return gig
}

func TestGigHandler_CreateGig(t *testing.T) {
	env := setupAPITestEnv(t)
	ownerID, cookies := env.signIn(t, "owner")

	gig := createGig(t, env, cookies, "Build a website", 500)

	assert.Equal(t, "Build a website", gig.Title)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	assert.Equal(t, ownerID, gig.OwnerID)
	require.NotNil(t, gig.Owner)
	assert.Equal(t, "owner", gig.Owner.Name)
}

func TestGigHandler_CreateGigValidation(t *testing.T) {
	env := setupAPITestEnv(t)
	_, cookies := env.signIn(t, "owner")

	w := env.request(t, http.MethodPost, "/api/gigs", map[string]interface{}{
		"title":       "No budget",
		"description": "d",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/gigs", map[string]interface{}{
		"title":       "Negative",
		"description": "d",
		"budget":      -1,
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/gigs", map[string]interface{}{
		"title":       "Anonymous",
		"description": "d",
		"budget":      10,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGigHandler_ListGigs(t *testing.T) {
	env := setupAPITestEnv(t)
	_, cookies := env.signIn(t, "owner")
	for i := 1; i <= 3; i++ {
		createGig(t, env, cookies, fmt.Sprintf("Website %d", i), float64(i*100))
	}
	createGig(t, env, cookies, "Logo design", 50)

	w := env.request(t, http.MethodGet, "/api/gigs?search=website&page=1&limit=2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.GigListResponse
	decodeJSON(t, w, &page)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 2, page.Pagination.Limit)
	require.Len(t, page.Gigs, 2)
	assert.Equal(t, "Website 3", page.Gigs[0].Title)

	w = env.request(t, http.MethodGet, "/api/gigs?status=closed", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodGet, "/api/gigs?search=nothing-matches", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gigs":[]`)
}

func TestGigHandler_GetGig(t *testing.T) {
	env := setupAPITestEnv(t)
	_, cookies := env.signIn(t, "owner")
	created := createGig(t, env, cookies, "Build a website", 500)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/gigs/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var gig dto.GigDTO
	decodeJSON(t, w, &gig)
	assert.Equal(t, created.ID, gig.ID)

	w = env.request(t, http.MethodGet, "/api/gigs/999", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var apiErr apierrors.APIError
	decodeJSON(t, w, &apiErr)
	assert.Equal(t, apierrors.ErrCodeNotFound, apiErr.Code)

	w = env.request(t, http.MethodGet, "/api/gigs/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGigHandler_ListMyGigs(t *testing.T) {
	env := setupAPITestEnv(t)
	_, ownerCookies := env.signIn(t, "owner")
	_, otherCookies := env.signIn(t, "other")
	createGig(t, env, ownerCookies, "Mine", 100)
	createGig(t, env, otherCookies, "Theirs", 100)

	w := env.request(t, http.MethodGet, "/api/bids/user/my-gigs", nil, ownerCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var gigs []dto.GigDTO
	decodeJSON(t, w, &gigs)
	require.Len(t, gigs, 1)
	assert.Equal(t, "Mine", gigs[0].Title)
}
