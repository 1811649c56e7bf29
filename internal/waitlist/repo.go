package waitlist

import (
	"context"

	"gorm.io/gorm"

	"github.com/luxuryconcept/storefront-backend/pkg/db/models"
)

// Repository persists waitlist signups.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
