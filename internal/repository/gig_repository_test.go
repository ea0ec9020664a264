package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/testutil"
)

func TestGigRepository_ListSearchIsCaseInsensitive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGigRepository(db)

	owner := testutil.CreateUser(t, db, "owner")
	testutil.CreateGig(t, db, owner.ID, "Build a React website", 500)
	testutil.CreateGig(t, db, owner.ID, "Logo design", 100)
	testutil.CreateGig(t, db, owner.ID, "react native app", 900)

	gigs, total, err := repo.List(context.Background(), GigFilter{Search: "REACT"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	require.Len(t, gigs, 2)
	assert.Equal(t, "react native app", gigs[0].Title)
	assert.Equal(t, "Build a React website", gigs[1].Title)
	assert.Equal(t, "owner", gigs[0].Owner.Name)
}

func TestGigRepository_ListSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGigRepository(db)

	owner := testutil.CreateUser(t, db, "owner")
	testutil.CreateGig(t, db, owner.ID, "100% remote", 500)
	testutil.CreateGig(t, db, owner.ID, "100 pages", 100)

	gigs, _, err := repo.List(context.Background(), GigFilter{Search: "100%"})
	require.NoError(t, err)

	require.Len(t, gigs, 1)
	assert.Equal(t, "100% remote", gigs[0].Title)
}

func TestGigRepository_ListFiltersAndPaginates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGigRepository(db)

	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	for i := 0; i < 5; i++ {
		testutil.CreateGig(t, db, owner.ID, "Owner gig", 100)
	}
	assigned := testutil.CreateGig(t, db, other.ID, "Other gig", 100)
	require.NoError(t, db.Model(assigned).Update("status", models.GigStatusAssigned).Error)

	open := models.GigStatusOpen
	gigs, total, err := repo.List(context.Background(), GigFilter{Status: &open, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, gigs, 2)

	ownerID := other.ID
	gigs, total, err = repo.List(context.Background(), GigFilter{OwnerID: &ownerID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, gigs, 1)
	assert.Equal(t, assigned.ID, gigs[0].ID)
}
