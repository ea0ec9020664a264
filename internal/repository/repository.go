package repository

import (
	"context"

	"github.com/yukikurage/gig-marketplace-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// GigRepository defines the interface for gig data access
type GigRepository interface {
	// Create creates a new gig
	Create(ctx context.Context, gig *models.Gig) error

	// FindByID finds a gig by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Gig, error)

	// List retrieves gigs newest first with filtering and pagination
	List(ctx context.Context, filter GigFilter) ([]models.Gig, int64, error)
}

// GigFilter holds filtering options for listing gigs
type GigFilter struct {
	Search   string
	Status   *models.GigStatus
	OwnerID  *uint64
	Page     int
	PageSize int
}

// BidRepository defines the interface for bid data access
type BidRepository interface {
	// Create inserts a bid if its gig exists and is open. It returns
	// gorm.ErrRecordNotFound, ErrGigNotOpen or ErrDuplicateBid otherwise.
	Create(ctx context.Context, bid *models.Bid) error

	// FindByID finds a bid by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Bid, error)

	// ListByGig lists a gig's bids newest first with the freelancer loaded
	ListByGig(ctx context.Context, gigID uint64) ([]models.Bid, error)

	// ListByFreelancer lists a freelancer's bids newest first with the gig loaded
	ListByFreelancer(ctx context.Context, freelancerID uint64) ([]models.Bid, error)
}

// HireRepository performs the hire state transition of a gig and its bids.
type HireRepository interface {
	// Hire assigns the gig, hires the bid and rejects the gig's other pending
	// bids as one transaction. The gig update is conditional on the gig still
	// being open; ErrGigStatusChanged reports a lost race. afterCommit hooks
	// run only once the transaction has committed.
	Hire(ctx context.Context, gigID, bidID uint64, afterCommit ...func()) error
}
