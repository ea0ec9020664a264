package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/gig-marketplace-api/internal/database"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrGigNotOpen is returned when a bid targets a gig that is no longer open.
	ErrGigNotOpen = errors.New("bid repository: gig is not open")
	// ErrDuplicateBid is returned when the freelancer already bid on the gig.
	ErrDuplicateBid = errors.New("bid repository: bid already exists for gig and freelancer")
)

// GormBidRepository is a GORM implementation of BidRepository
type GormBidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new BidRepository
func NewBidRepository(db *gorm.DB) BidRepository {
	return &GormBidRepository{db: db}
}

// Create inserts a bid for an open gig. The gig row is read under a shared
// lock so the insert cannot interleave with a concurrent hire, and the unique
// (gig_id, freelancer_id) index rejects duplicates that race past each other.
func (r *GormBidRepository) Create(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gig models.Gig
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			First(&gig, bid.GigID).Error; err != nil {
			return err
		}

		if !gig.IsOpen() {
			return ErrGigNotOpen
		}

		bid.Status = models.BidStatusPending
		if err := tx.Create(bid).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateBid
			}
			return err
		}

		return nil
	})
}

// FindByID finds a bid by ID with optional preloading
func (r *GormBidRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Bid, error) {
	var bid models.Bid
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&bid, id).Error; err != nil {
		return nil, err
	}

	return &bid, nil
}

// ListByGig lists a gig's bids newest first with the freelancer loaded
func (r *GormBidRepository) ListByGig(ctx context.Context, gigID uint64) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.WithContext(ctx).
		Preload("Freelancer").
		Where("bids.gig_id = ?", gigID).
		Scopes(database.NewestFirst("bids")).
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

// ListByFreelancer lists a freelancer's bids newest first with the gig loaded
func (r *GormBidRepository) ListByFreelancer(ctx context.Context, freelancerID uint64) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.WithContext(ctx).
		Preload("Gig").
		Preload("Freelancer").
		Where("bids.freelancer_id = ?", freelancerID).
		Scopes(database.NewestFirst("bids")).
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}
