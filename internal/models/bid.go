package models

import "time"

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is a freelancer's offer on a gig. A freelancer holds at most one bid per
// gig; idx_bids_gig_freelancer enforces it in the database.
type Bid struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	GigID        uint64    `gorm:"not null;uniqueIndex:idx_bids_gig_freelancer,priority:1" json:"gig_id"`
	FreelancerID uint64    `gorm:"not null;uniqueIndex:idx_bids_gig_freelancer,priority:2;index:idx_bids_freelancer_id" json:"freelancer_id"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Price        float64   `gorm:"not null" json:"price"`
	Status       BidStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_bids_status" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Gig        Gig  `gorm:"foreignKey:GigID" json:"gig,omitempty"`
	Freelancer User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

// IsPending reports whether the bid can still be hired.
func (b *Bid) IsPending() bool {
	return b.Status == BidStatusPending
}
