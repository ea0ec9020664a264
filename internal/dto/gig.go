package dto

import (
	"time"

	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/utils"
)

// GigDTO represents a gig in API responses
type GigDTO struct {
	ID          uint64           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Budget      float64          `json:"budget"`
	Status      models.GigStatus `json:"status"`
	OwnerID     uint64           `json:"owner_id"`
	Owner       *UserDTO         `json:"owner,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// GigListResponse represents a page of gigs
type GigListResponse struct {
	Gigs       []GigDTO                 `json:"gigs"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToGigDTO converts a Gig model to GigDTO
func ToGigDTO(gig models.Gig) GigDTO {
	return GigDTO{
		ID:          gig.ID,
		Title:       gig.Title,
		Description: gig.Description,
		Budget:      gig.Budget,
		Status:      gig.Status,
		OwnerID:     gig.OwnerID,
		Owner:       toUserRef(gig.Owner),
		CreatedAt:   gig.CreatedAt,
		UpdatedAt:   gig.UpdatedAt,
	}
}

// ToGigDTOs converts a slice of gigs, never returning nil
func ToGigDTOs(gigs []models.Gig) []GigDTO {
	dtos := make([]GigDTO, 0, len(gigs))
	for _, gig := range gigs {
		dtos = append(dtos, ToGigDTO(gig))
	}
	return dtos
}
