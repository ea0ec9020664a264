package database

import (
	"fmt"

	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// requiredIndexes lists the indexes the store relies on. idx_bids_gig_freelancer
// is the uniqueness guarantee behind duplicate-bid rejection.
var requiredIndexes = []struct {
	model interface{}
	name  string
}{
	{&models.Gig{}, "idx_gigs_owner_id"},
	{&models.Gig{}, "idx_gigs_status"},
	{&models.Gig{}, "idx_gigs_created_at"},
	{&models.Bid{}, "idx_bids_gig_freelancer"},
	{&models.Bid{}, "idx_bids_freelancer_id"},
	{&models.Bid{}, "idx_bids_status"},
}

// EnsureIndexes creates any required index that is missing, e.g. on a schema
// created before the index was declared.
func EnsureIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range requiredIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		zap.L().Info("created index", zap.String("index", idx.name))
	}

	return nil
}
