// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/gig-marketplace-api/internal/database"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database. The pool is capped at one
// connection so every goroutine sees the same memory database and
// transactions serialise the way row locks would on a server database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateUser inserts a user with a unique email derived from name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateGig inserts an open gig owned by ownerID.
func CreateGig(t *testing.T, db *gorm.DB, ownerID uint64, title string, budget float64) *models.Gig {
	t.Helper()

	gig := &models.Gig{
		OwnerID:     ownerID,
		Title:       title,
		Description: title + " description",
		Budget:      budget,
		Status:      models.GigStatusOpen,
	}
	require.NoError(t, db.Create(gig).Error)
	return gig
}

// CreateBid inserts a pending bid.
func CreateBid(t *testing.T, db *gorm.DB, gigID, freelancerID uint64, price float64) *models.Bid {
	t.Helper()

	bid := &models.Bid{
		GigID:        gigID,
		FreelancerID: freelancerID,
		Message:      "I can do this",
		Price:        price,
		Status:       models.BidStatusPending,
	}
	require.NoError(t, db.Create(bid).Error)
	return bid
}

// GigStatus re-reads a gig's status from the database.
func GigStatus(t *testing.T, db *gorm.DB, gigID uint64) models.GigStatus {
	t.Helper()

	var gig models.Gig
	require.NoError(t, db.First(&gig, gigID).Error)
	return gig.Status
}

// BidStatuses re-reads the status of every bid on a gig, keyed by bid ID.
func BidStatuses(t *testing.T, db *gorm.DB, gigID uint64) map[uint64]models.BidStatus {
	t.Helper()

	var bids []models.Bid
	require.NoError(t, db.Where("gig_id = ?", gigID).Find(&bids).Error)

	statuses := make(map[uint64]models.BidStatus, len(bids))
	for _, b := range bids {
		statuses[b.ID] = b.Status
	}
	return statuses
}
