package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBidNotFound     = errors.New("bid not found")
	ErrMessageRequired = errors.New("message is required")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrGigNotOpen      = errors.New("gig is no longer open")
	ErrDuplicateBid    = errors.New("you have already bid on this gig")
	ErrNotGigOwner     = errors.New("only the gig owner can perform this action")
)

// BidService handles bid submission and bid listings
type BidService struct {
	bidRepo repository.BidRepository
	gigRepo repository.GigRepository
}

// NewBidService creates a new BidService
func NewBidService(bidRepo repository.BidRepository, gigRepo repository.GigRepository) *BidService {
	return &BidService{
		bidRepo: bidRepo,
		gigRepo: gigRepo,
	}
}

// CreateBidInput represents input for submitting a bid
type CreateBidInput struct {
	GigID        uint64
	FreelancerID uint64
	Message      string
	Price        float64
}

// CreateBid submits a pending bid on an open gig
func (s *BidService) CreateBid(ctx context.Context, input CreateBidInput) (*models.Bid, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	if input.Price < 0 {
		return nil, ErrNegativePrice
	}

	bid := &models.Bid{
		GigID:        input.GigID,
		FreelancerID: input.FreelancerID,
		Message:      message,
		Price:        input.Price,
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrGigNotFound
		case errors.Is(err, repository.ErrGigNotOpen):
			return nil, ErrGigNotOpen
		case errors.Is(err, repository.ErrDuplicateBid):
			return nil, ErrDuplicateBid
		default:
			return nil, fmt.Errorf("failed to create bid: %w", err)
		}
	}

	return s.bidRepo.FindByID(ctx, bid.ID, "Freelancer")
}

// ListBidsForGig returns a gig's bids, newest first, to the gig owner
func (s *BidService) ListBidsForGig(ctx context.Context, gigID, actorID uint64) ([]models.Bid, error) {
	gig, err := s.gigRepo.FindByID(ctx, gigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("failed to find gig: %w", err)
	}

	if gig.OwnerID != actorID {
		return nil, ErrNotGigOwner
	}

	bids, err := s.bidRepo.ListByGig(ctx, gigID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	return bids, nil
}

// ListBidsForFreelancer returns the freelancer's bids across gigs, newest first
func (s *BidService) ListBidsForFreelancer(ctx context.Context, freelancerID uint64) ([]models.Bid, error) {
	bids, err := s.bidRepo.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}

	return bids, nil
}
