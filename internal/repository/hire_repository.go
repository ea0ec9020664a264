package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrGigStatusChanged is returned when the conditional open -> assigned
	// update matched no row because another hire moved the gig first.
	ErrGigStatusChanged = errors.New("hire repository: gig status changed")
	// ErrBidStatusChanged is returned when the chosen bid was no longer pending
	// at the time of the update.
	ErrBidStatusChanged = errors.New("hire repository: bid status changed")
	// ErrAssignGig is returned when the gig status update fails.
	ErrAssignGig = errors.New("hire repository: assign gig failed")
	// ErrHireBid is returned when the hired bid update fails.
	ErrHireBid = errors.New("hire repository: hire bid failed")
	// ErrRejectBids is returned when rejecting the remaining bids fails.
	ErrRejectBids = errors.New("hire repository: reject bids failed")
)

// GormHireRepository is a GORM implementation of HireRepository
type GormHireRepository struct {
	db *gorm.DB
}

// NewHireRepository creates a new HireRepository
func NewHireRepository(db *gorm.DB) HireRepository {
	return &GormHireRepository{db: db}
}

// Hire runs the open -> assigned transition for gigID and settles its bids.
func (r *GormHireRepository) Hire(ctx context.Context, gigID, bidID uint64, afterCommit ...func()) error {
	return RunInTransaction(ctx, r.db, func(uow *UnitOfWork) error {
		tx := uow.Tx()

		// Compare-and-swap on the gig status; only one concurrent hire can match.
		result := tx.Model(&models.Gig{}).
			Where("id = ? AND status = ?", gigID, models.GigStatusOpen).
			Update("status", models.GigStatusAssigned)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrAssignGig, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrGigStatusChanged
		}

		result = tx.Model(&models.Bid{}).
			Where("id = ? AND gig_id = ? AND status = ?", bidID, gigID, models.BidStatusPending).
			Update("status", models.BidStatusHired)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrHireBid, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBidStatusChanged
		}

		if err := tx.Model(&models.Bid{}).
			Where("gig_id = ? AND id <> ? AND status = ?", gigID, bidID, models.BidStatusPending).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrRejectBids, err)
		}

		for _, hook := range afterCommit {
			uow.AfterCommit(hook)
		}

		return nil
	})
}
