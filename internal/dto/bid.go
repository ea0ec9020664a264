package dto

import (
	"time"

	"github.com/yukikurage/gig-marketplace-api/internal/models"
)

// BidDTO represents a bid in API responses
type BidDTO struct {
	ID           uint64           `json:"id"`
	GigID        uint64           `json:"gig_id"`
	FreelancerID uint64           `json:"freelancer_id"`
	Message      string           `json:"message"`
	Price        float64          `json:"price"`
	Status       models.BidStatus `json:"status"`
	Gig          *GigDTO          `json:"gig,omitempty"`
	Freelancer   *UserDTO         `json:"freelancer,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// HireResponse is returned after a successful hire
type HireResponse struct {
	Message string `json:"message"`
	Bid     BidDTO `json:"bid"`
	Gig     GigDTO `json:"gig"`
}

// ToBidDTO converts a Bid model to BidDTO
func ToBidDTO(bid models.Bid) BidDTO {
	dto := BidDTO{
		ID:           bid.ID,
		GigID:        bid.GigID,
		FreelancerID: bid.FreelancerID,
		Message:      bid.Message,
		Price:        bid.Price,
		Status:       bid.Status,
		Freelancer:   toUserRef(bid.Freelancer),
		CreatedAt:    bid.CreatedAt,
		UpdatedAt:    bid.UpdatedAt,
	}
	if bid.Gig.ID != 0 {
		gig := ToGigDTO(bid.Gig)
		dto.Gig = &gig
	}
	return dto
}

// ToBidDTOs converts a slice of bids, never returning nil
func ToBidDTOs(bids []models.Bid) []BidDTO {
	dtos := make([]BidDTO, 0, len(bids))
	for _, bid := range bids {
		dtos = append(dtos, ToBidDTO(bid))
	}
	return dtos
}
