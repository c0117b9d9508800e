package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"content-hub/ai"
	"content-hub/models"
	"content-hub/repositories"
)

const staleReleaseReason = "released: stuck in processing beyond staleness threshold"

// ReleaseReport summarizes one stale-processing sweep.
type ReleaseReport struct {
	PlansReleased int64 `json:"plans_released"`
	TasksReleased int64 `json:"tasks_released"`
}

type TaskService interface {
	CreateManualTask(req models.CreateGenerationTaskRequest) (*models.GenerationTask, error)
	GetTasks(params models.TaskListParams) ([]models.GenerationTask, int64, error)
	// ReleaseStale fails plans and tasks stuck in processing longer than
	// olderThan. Admin-triggered only.
	ReleaseStale(olderThan time.Duration) (*ReleaseReport, error)
}

type taskService struct {
	websiteRepo repositories.WebsiteRepository
	planRepo    repositories.KeywordPlanRepository
	taskRepo    repositories.GenerationTaskRepository
	generator   ai.Generator
}

func NewTaskService(
	websiteRepo repositories.WebsiteRepository,
	planRepo repositories.KeywordPlanRepository,
	taskRepo repositories.GenerationTaskRepository,
	generator ai.Generator,
) TaskService {
	return &taskService{
		websiteRepo: websiteRepo,
		planRepo:    planRepo,
		taskRepo:    taskRepo,
		generator:   generator,
	}
}

func (s *taskService) CreateManualTask(req models.CreateGenerationTaskRequest) (*models.GenerationTask, error) {
	if _, err := s.websiteRepo.GetByID(req.WebsiteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWebsiteNotFound
		}
		return nil, &PersistenceError{Op: "load website", Err: err}
	}

	task := &models.GenerationTask{
		WebsiteID:   req.WebsiteID,
		Type:        models.TaskManual,
		Status:      models.TaskPending,
		Model:       req.Model,
		Temperature: req.Temperature,
		Prompt:      req.Prompt,
	}
	if task.Model == "" {
		task.Model = s.generator.Model()
	}
	if task.Temperature == "" {
		task.Temperature = "0.7"
	}

	if req.KeywordPlanID != "" {
		plan, err := s.planRepo.GetByIDForWebsite(req.KeywordPlanID, req.WebsiteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrKeywordPlanNotFound
			}
			return nil, &PersistenceError{Op: "load keyword plan", Err: err}
		}
		task.KeywordPlanID = &plan.ID
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, &PersistenceError{Op: "create generation task", Err: err}
	}
	return task, nil
}

func (s *taskService) GetTasks(params models.TaskListParams) ([]models.GenerationTask, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	return s.taskRepo.GetList(params)
}

func (s *taskService) ReleaseStale(olderThan time.Duration) (*ReleaseReport, error) {
	cutoff := time.Now().Add(-olderThan)

	plans, err := s.planRepo.ReleaseStale(cutoff, staleReleaseReason)
	if err != nil {
		return nil, &PersistenceError{Op: "release stale keyword plans", Err: err}
	}

	tasks, err := s.taskRepo.ReleaseStale(cutoff, staleReleaseReason)
	if err != nil {
		return nil, &PersistenceError{Op: "release stale tasks", Err: err}
	}

	return &ReleaseReport{PlansReleased: plans, TasksReleased: tasks}, nil
}
