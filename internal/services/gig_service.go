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
	ErrGigNotFound         = errors.New("gig not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrNegativeBudget      = errors.New("budget cannot be negative")
	ErrInvalidGigStatus    = errors.New("invalid gig status")
)

// GigService handles gig business logic
type GigService struct {
	gigRepo repository.GigRepository
}

// NewGigService creates a new GigService
func NewGigService(gigRepo repository.GigRepository) *GigService {
	return &GigService{
		gigRepo: gigRepo,
	}
}

// CreateGigInput represents input for creating a gig
type CreateGigInput struct {
	OwnerID     uint64
	Title       string
	Description string
	Budget      float64
}

// ListGigsInput represents filters for browsing gigs
type ListGigsInput struct {
	Search   string
	Status   *models.GigStatus
	Page     int
	PageSize int
}

// CreateGig validates and stores a new open gig
func (s *GigService) CreateGig(ctx context.Context, input CreateGigInput) (*models.Gig, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if input.Budget < 0 {
		return nil, ErrNegativeBudget
	}

	gig := &models.Gig{
		OwnerID:     input.OwnerID,
		Title:       title,
		Description: description,
		Budget:      input.Budget,
		Status:      models.GigStatusOpen,
	}

	if err := s.gigRepo.Create(ctx, gig); err != nil {
		return nil, fmt.Errorf("failed to create gig: %w", err)
	}

	return s.gigRepo.FindByID(ctx, gig.ID, "Owner")
}

// GetGig returns a gig with its owner
func (s *GigService) GetGig(ctx context.Context, gigID uint64) (*models.Gig, error) {
	gig, err := s.gigRepo.FindByID(ctx, gigID, "Owner")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("failed to find gig: %w", err)
	}

	return gig, nil
}

// ListGigs returns gigs newest first, optionally matching a title search
func (s *GigService) ListGigs(ctx context.Context, input ListGigsInput) ([]models.Gig, int64, error) {
	if input.Status != nil && !validGigStatus(*input.Status) {
		return nil, 0, ErrInvalidGigStatus
	}

	gigs, total, err := s.gigRepo.List(ctx, repository.GigFilter{
		Search:   input.Search,
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list gigs: %w", err)
	}

	return gigs, total, nil
}

// ListGigsForOwner returns every gig the user posted, newest first
func (s *GigService) ListGigsForOwner(ctx context.Context, ownerID uint64) ([]models.Gig, error) {
	gigs, _, err := s.gigRepo.List(ctx, repository.GigFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list gigs: %w", err)
	}

	return gigs, nil
}

func validGigStatus(status models.GigStatus) bool {
	switch status {
	case models.GigStatusOpen, models.GigStatusAssigned:
		return true
	default:
		return false
	}
}
