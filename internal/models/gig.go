package models

import "time"

type GigStatus string

const (
	GigStatusOpen     GigStatus = "open"
	GigStatusAssigned GigStatus = "assigned"
)

// Gig is a posted piece of work. Status moves from open to assigned exactly
// once, through the hire transaction.
type Gig struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	OwnerID     uint64    `gorm:"not null;index:idx_gigs_owner_id" json:"owner_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Budget      float64   `gorm:"not null" json:"budget"`
	Status      GigStatus `gorm:"type:varchar(20);not null;default:'open';index:idx_gigs_status" json:"status"`
	CreatedAt   time.Time `gorm:"index:idx_gigs_created_at" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Bids  []Bid `gorm:"foreignKey:GigID" json:"bids,omitempty"`
}

// IsOpen reports whether the gig still accepts bids and hires.
func (g *Gig) IsOpen() bool {
	return g.Status == GigStatusOpen
}
