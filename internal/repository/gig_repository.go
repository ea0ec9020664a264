package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/gig-marketplace-api/internal/database"
	"github.com/yukikurage/gig-marketplace-api/internal/models"
	"github.com/yukikurage/gig-marketplace-api/internal/utils"
	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards with '!', declared through ESCAPE so the
// pattern behaves the same on MySQL, PostgreSQL and SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// GormGigRepository is a GORM implementation of GigRepository
type GormGigRepository struct {
	db *gorm.DB
}

// NewGigRepository creates a new GigRepository
func NewGigRepository(db *gorm.DB) GigRepository {
	return &GormGigRepository{db: db}
}

// Create creates a new gig
func (r *GormGigRepository) Create(ctx context.Context, gig *models.Gig) error {
	return r.db.WithContext(ctx).Create(gig).Error
}

// FindByID finds a gig by ID with optional preloading
func (r *GormGigRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Gig, error) {
	var gig models.Gig
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&gig, id).Error; err != nil {
		return nil, err
	}

	return &gig, nil
}

// List retrieves gigs newest first with filtering and pagination
func (r *GormGigRepository) List(ctx context.Context, filter GigFilter) ([]models.Gig, int64, error) {
	var gigs []models.Gig

	query := r.db.WithContext(ctx).Model(&models.Gig{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where("LOWER(gigs.title) LIKE ? ESCAPE '!'", pattern)
	}
	if filter.Status != nil {
		query = query.Where("gigs.status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("gigs.owner_id = ?", *filter.OwnerID)
	}

	// Reusable for both the count and the page query
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Scopes(database.NewestFirst("gigs"))
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Owner").Find(&gigs).Error; err != nil {
		return nil, 0, err
	}

	return gigs, total, nil
}
