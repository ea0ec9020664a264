package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
	"github.com/yukikurage/gig-marketplace-api/internal/testutil"
)

func TestGigService_CreateGig(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewGigService(repository.NewGigRepository(db))
	owner := testutil.CreateUser(t, db, "owner")

	gig, err := service.CreateGig(context.Background(), CreateGigInput{
		OwnerID:     owner.ID,
		Title:       "  Build a website ",
		Description: "Landing page",
		Budget:      500,
	})

	require.NoError(t, err)
	assert.Equal(t, "Build a website", gig.Title)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	assert.Equal(t, "owner", gig.Owner.Name)
}

func TestGigService_CreateGigValidation(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewGigService(repository.NewGigRepository(db))
	owner := testutil.CreateUser(t, db, "owner")

	tests := []struct {
		name  string
		input CreateGigInput
		want  error
	}{
		{"missing title", CreateGigInput{OwnerID: owner.ID, Title: " ", Description: "d", Budget: 1}, ErrTitleRequired},
		{"missing description", CreateGigInput{OwnerID: owner.ID, Title: "t", Budget: 1}, ErrDescriptionRequired},
		{"negative budget", CreateGigInput{OwnerID: owner.ID, Title: "t", Description: "d", Budget: -1}, ErrNegativeBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateGig(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGigService_GetGigNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewGigService(repository.NewGigRepository(db))

	_, err := service.GetGig(context.Background(), 42)

	assert.ErrorIs(t, err, ErrGigNotFound)
}

func TestGigService_ListGigs(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewGigService(repository.NewGigRepository(db))
	owner := testutil.CreateUser(t, db, "owner")
	other := testutil.CreateUser(t, db, "other")
	testutil.CreateGig(t, db, owner.ID, "Build a website", 500)
	testutil.CreateGig(t, db, other.ID, "Design a logo", 100)
	assigned := testutil.CreateGig(t, db, owner.ID, "Website audit", 50)
	require.NoError(t, db.Model(assigned).Update("status", models.GigStatusAssigned).Error)

	gigs, total, err := service.ListGigs(context.Background(), ListGigsInput{Search: "WEBSITE"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, gigs, 2)

	open := models.GigStatusOpen
	gigs, total, err = service.ListGigs(context.Background(), ListGigsInput{Search: "website", Status: &open})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, gigs, 1)
	assert.Equal(t, "Build a website", gigs[0].Title)

	mine, err := service.ListGigsForOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, assigned.ID, mine[0].ID)
}

func TestGigService_ListGigsRejectsUnknownStatus(t *testing.T) {
	db := testutil.NewDB(t)
	service := NewGigService(repository.NewGigRepository(db))
	status := models.GigStatus("closed")

	_, _, err := service.ListGigs(context.Background(), ListGigsInput{Status: &status})

	assert.ErrorIs(t, err, ErrInvalidGigStatus)
}
