package services

import (
	"time"

	"content-hub/models"
	"content-hub/repositories"
)

const defaultMaxArticlesPerDay = 5

// QuotaService computes how many more articles a website may generate
// today. Completions are bucketed by the generation task's completion
// timestamp within wall-clock day boundaries.
type QuotaService interface {
	RemainingBudget(website *models.Website, now time.Time) (int, error)
}

type quotaService struct {
	taskRepo repositories.GenerationTaskRepository
}

func NewQuotaService(taskRepo repositories.GenerationTaskRepository) QuotaService {
	return &quotaService{taskRepo: taskRepo}
}

func (s *quotaService) RemainingBudget(website *models.Website, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	completed, err := s.taskRepo.CountCompletedBetween(website.ID, dayStart, dayEnd)
	if err != nil {
		return 0, &PersistenceError{Op: "count completed tasks", Err: err}
	}

	maxPerDay := website.MaxArticlesPerDay
	if maxPerDay <= 0 {
		maxPerDay = defaultMaxArticlesPerDay
	}

	remaining := maxPerDay - int(completed)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
