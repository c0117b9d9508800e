package repositories

import (
	"content-hub/models"

	"gorm.io/gorm"
)

type WebsiteRepository interface {
	GetByID(id string) (*models.Website, error)
	// ListEligible returns active websites with auto-generation enabled,
	// ordered by creation time ascending. The order is the stable rotation
	// key, so it must not change between invocations.
	ListEligible() ([]models.Website, error)
}

type websiteRepository struct {
	db *gorm.DB
}

func NewWebsiteRepository(db *gorm.DB) WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) GetByID(id string) (*models.Website, error) {
	var website models.Website
	err := r.db.First(&website, "id = ?", id).Error
	return &website, err
}

func (r *websiteRepository) ListEligible() ([]models.Website, error) {
	var websites []models.Website
	err := r.db.
		Where("is_active = ? AND auto_generate_enabled = ?", true, true).
		Order("created_at asc").
		Find(&websites).Error
	return websites, err
}
