package repositories

import (
	"errors"
	"time"

	"content-hub/models"

	"gorm.io/gorm"
)

// ErrPlanAlreadyClaimed is returned when a claim races another run and
// loses: the conditional update matched zero rows.
var ErrPlanAlreadyClaimed = errors.New("keyword plan already claimed")

type KeywordPlanRepository interface {
	GetByID(id string) (*models.KeywordPlan, error)
	GetByIDForWebsite(id, websiteID string) (*models.KeywordPlan, error)
	// SelectPending returns up to limit pending plans for a website that
	// have no article yet. Ordering convention: priority ascending (1 is
	// the most urgent) with oldest-first tiebreak.
	SelectPending(websiteID string, limit int) ([]models.KeywordPlan, error)
	Claim(id string) error
	MarkGenerated(id, articleID string, at time.Time) error
	MarkFailed(id, reason string) error
	ReleaseStale(cutoff time.Time, reason string) (int64, error)
	WithTx(tx *gorm.DB) KeywordPlanRepository
}

type keywordPlanRepository struct {
	db *gorm.DB
}

func NewKeywordPlanRepository(db *gorm.DB) KeywordPlanRepository {
	return &keywordPlanRepository{db: db}
}

func (r *keywordPlanRepository) WithTx(tx *gorm.DB) KeywordPlanRepository {
	return &keywordPlanRepository{db: tx}
}

func (r *keywordPlanRepository) GetByID(id string) (*models.KeywordPlan, error) {
	var plan models.KeywordPlan
	err := r.db.First(&plan, "id = ?", id).Error
	return &plan, err
}

func (r *keywordPlanRepository) GetByIDForWebsite(id, websiteID string) (*models.KeywordPlan, error) {
	var plan models.KeywordPlan
	err := r.db.First(&plan, "id = ? AND website_id = ?", id, websiteID).Error
	return &plan, err
}

func (r *keywordPlanRepository) SelectPending(websiteID string, limit int) ([]models.KeywordPlan, error) {
	var plans []models.KeywordPlan
	err := r.db.
		Where("website_id = ? AND status = ? AND article_id IS NULL", websiteID, models.KeywordPending).
		Order("priority asc, created_at asc").
		Limit(limit).
		Find(&plans).Error
	return plans, err
}

// Claim flips a plan from pending to processing as a single conditional
// update, so concurrent runs cannot both own it.
func (r *keywordPlanRepository) Claim(id string) error {
	result := r.db.Model(&models.KeywordPlan{}).
		Where("id = ? AND status = ?", id, models.KeywordPending).
		Update("status", models.KeywordProcessing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlanAlreadyClaimed
	}
	return nil
}

func (r *keywordPlanRepository) MarkGenerated(id, articleID string, at time.Time) error {
	return r.db.Model(&models.KeywordPlan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.KeywordGenerated,
			"article_id":   articleID,
			"generated_at": at,
		}).Error
}

func (r *keywordPlanRepository) MarkFailed(id, reason string) error {
	return r.db.Model(&models.KeywordPlan{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         models.KeywordFailed,
			"failure_reason": reason,
		}).Error
}

// ReleaseStale fails plans stuck in processing since before cutoff. Invoked
// only by the admin sweep endpoint, never by the pipeline itself.
func (r *keywordPlanRepository) ReleaseStale(cutoff time.Time, reason string) (int64, error) {
	result := r.db.Model(&models.KeywordPlan{}).
		Where("status = ? AND updated_at < ?", models.KeywordProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":         models.KeywordFailed,
			"failure_reason": reason,
		})
	return result.RowsAffected, result.Error
}
