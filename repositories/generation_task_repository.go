package repositories

import (
	"time"

	"content-hub/models"

	"gorm.io/gorm"
)

type GenerationTaskRepository interface {
	Create(task *models.GenerationTask) error
	GetByID(id string) (*models.GenerationTask, error)
	GetList(params models.TaskListParams) ([]models.GenerationTask, int64, error)
	// CountCompletedBetween counts completed tasks for a website whose
	// completion time falls in [from, to). The quota tracker calls this
	// fresh on every scheduling decision.
	CountCompletedBetween(websiteID string, from, to time.Time) (int64, error)
	Complete(id, articleID string, tokensUsed int, at time.Time) error
	Fail(id, errorMessage string, at time.Time) error
	ReleaseStale(cutoff time.Time, errorMessage string) (int64, error)
	WithTx(tx *gorm.DB) GenerationTaskRepository
}

type generationTaskRepository struct {
	db *gorm.DB
}

func NewGenerationTaskRepository(db *gorm.DB) GenerationTaskRepository {
	return &generationTaskRepository{db: db}
}

func (r *generationTaskRepository) WithTx(tx *gorm.DB) GenerationTaskRepository {
	return &generationTaskRepository{db: tx}
}

func (r *generationTaskRepository) Create(task *models.GenerationTask) error {
	return r.db.Create(task).Error
}

func (r *generationTaskRepository) GetByID(id string) (*models.GenerationTask, error) {
	var task models.GenerationTask
	err := r.db.
		Preload("Website").
		Preload("KeywordPlan").
		Preload("Article").
		First(&task, "id = ?", id).Error
	return &task, err
}

func (r *generationTaskRepository) GetList(params models.TaskListParams) ([]models.GenerationTask, int64, error) {
	var tasks []models.GenerationTask
	var total int64

	query := r.db.Model(&models.GenerationTask{})

	if params.WebsiteID != "" {
		query = query.Where("website_id = ?", params.WebsiteID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.
		Preload("Website").
		Preload("KeywordPlan").
		Preload("Article").
		Order("created_at desc").
		Offset(offset).
		Limit(params.Limit).
		Find(&tasks).Error

	return tasks, total, err
}

func (r *generationTaskRepository) CountCompletedBetween(websiteID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.GenerationTask{}).
		Where("website_id = ? AND status = ? AND completed_at >= ? AND completed_at < ?",
			websiteID, models.TaskCompleted, from, to).
		Count(&count).Error
	return count, err
}

func (r *generationTaskRepository) Complete(id, articleID string, tokensUsed int, at time.Time) error {
	return r.db.Model(&models.GenerationTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.TaskCompleted,
			"article_id":   articleID,
			"tokens_used":  tokensUsed,
			"completed_at": at,
		}).Error
}

func (r *generationTaskRepository) Fail(id, errorMessage string, at time.Time) error {
	return r.db.Model(&models.GenerationTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.TaskFailed,
			"error_message": errorMessage,
			"completed_at":  at,
		}).Error
}

func (r *generationTaskRepository) ReleaseStale(cutoff time.Time, errorMessage string) (int64, error) {
	result := r.db.Model(&models.GenerationTask{}).
		Where("status = ? AND updated_at < ?", models.TaskProcessing, cutoff).
		Updates(map[string]interface{}{
			"status":        models.TaskFailed,
			"error_message": errorMessage,
			"completed_at":  time.Now(),
		})
	return result.RowsAffected, result.Error
}
