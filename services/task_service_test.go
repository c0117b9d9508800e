package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"content-hub/models"
	"content-hub/repositories"
)

func newTaskService(db *gorm.DB) TaskService {
	return NewTaskService(
		repositories.NewWebsiteRepository(db),
		repositories.NewKeywordPlanRepository(db),
		repositories.NewGenerationTaskRepository(db),
		&stubGenerator{article: sampleArticle()},
	)
}

func TestCreateManualTaskDefaults(t *testing.T) {
	db := setupTestDB(t)
	website := seedWebsite(t, db, 5)
	svc := newTaskService(db)

	task, err := svc.CreateManualTask(models.CreateGenerationTaskRequest{WebsiteID: website.ID})

	require.NoError(t, err)
	assert.Equal(t, models.TaskManual, task.Type)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, "stub-model", task.Model, "falls back to the configured generator model")
	assert.Equal(t, "0.7", task.Temperature)
	assert.Nil(t, task.KeywordPlanID)
}

func TestCreateManualTaskUnknownWebsite(t *testing.T) {
	db := setupTestDB(t)
	svc := newTaskService(db)

	_, err := svc.CreateManualTask(models.CreateGenerationTaskRequest{WebsiteID: uuid.NewString()})

	assert.ErrorIs(t, err, ErrWebsiteNotFound)
}

func TestCreateManualTaskRejectsForeignPlan(t *testing.T) {
	db := setupTestDB(t)
	website := seedWebsite(t, db, 5)
	other := &models.Website{
		Name: "Other", Domain: "other.example.com", URL: "https://other.example.com",
	}
	require.NoError(t, db.Create(other).Error)
	foreignPlan := seedPlan(t, db, other.ID, "someone else's keyword", 1)

	svc := newTaskService(db)

	_, err := svc.CreateManualTask(models.CreateGenerationTaskRequest{
		WebsiteID:     website.ID,
		KeywordPlanID: foreignPlan.ID,
	})

	assert.ErrorIs(t, err, ErrKeywordPlanNotFound, "a plan must belong to the requested website")
}

func TestReleaseStaleSweep(t *testing.T) {
	db := setupTestDB(t)
	website := seedWebsite(t, db, 5)

	stuck := seedPlan(t, db, website.ID, "stuck keyword", 1)
	require.NoError(t, db.Model(stuck).Update("status", models.KeywordProcessing).Error)
	fresh := seedPlan(t, db, website.ID, "fresh keyword", 1)

	task := &models.GenerationTask{
		WebsiteID: website.ID,
		Type:      models.TaskAuto,
		Status:    models.TaskProcessing,
	}
	require.NoError(t, db.Create(task).Error)

	// Push the stuck records into the past; the fresh plan stays current.
	stale := time.Now().Add(-3 * time.Hour)
	require.NoError(t, db.Model(stuck).Update("updated_at", stale).Error)
	require.NoError(t, db.Model(task).Update("updated_at", stale).Error)

	report, err := newTaskService(db).ReleaseStale(time.Hour)

	require.NoError(t, err)
	assert.EqualValues(t, 1, report.PlansReleased)
	assert.EqualValues(t, 1, report.TasksReleased)

	var got models.KeywordPlan
	require.NoError(t, db.First(&got, "id = ?", stuck.ID).Error)
	assert.Equal(t, models.KeywordFailed, got.Status)
	assert.NotEmpty(t, got.FailureReason)

	got = models.KeywordPlan{}
	require.NoError(t, db.First(&got, "id = ?", fresh.ID).Error)
	assert.Equal(t, models.KeywordPending, got.Status)
}
