package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"content-hub/ai"
	"content-hub/models"
	"content-hub/repositories"
)

// BudgetFunc resolves the remaining daily budget for a website.
type BudgetFunc func(website *models.Website) (int, error)

// Slot is one website's allotment for a run: at most Limit keywords.
type Slot struct {
	Website models.Website
	Limit   int
}

// SchedulingPolicy decides which websites get to consume the generation
// budget in one invocation. Implementations must skip websites with zero
// remaining budget without erroring.
type SchedulingPolicy interface {
	Name() string
	Assign(now time.Time, eligible []models.Website, budget BudgetFunc) ([]Slot, error)
}

// RotationPolicy picks exactly one website per invocation, rotating
// through the eligible set in half-hour steps so each external AI call
// stays isolated and rate-limited. Selection is a pure function of the
// trigger time and the creation-ordered eligible set.
type RotationPolicy struct{}

func (RotationPolicy) Name() string { return "rotation" }

func (RotationPolicy) Assign(now time.Time, eligible []models.Website, budget BudgetFunc) ([]Slot, error) {
	if len(eligible) == 0 {
		return nil, nil
	}

	idx := (now.Minute() / 30) % len(eligible)
	onDuty := eligible[idx]

	remaining, err := budget(&onDuty)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		return nil, nil
	}
	return []Slot{{Website: onDuty, Limit: 1}}, nil
}

// ExhaustivePolicy processes every eligible website in the same
// invocation, each up to its remaining daily budget.
type ExhaustivePolicy struct{}

func (ExhaustivePolicy) Name() string { return "exhaustive" }

func (ExhaustivePolicy) Assign(now time.Time, eligible []models.Website, budget BudgetFunc) ([]Slot, error) {
	var slots []Slot
	for _, website := range eligible {
		remaining, err := budget(&website)
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			continue
		}
		slots = append(slots, Slot{Website: website, Limit: remaining})
	}
	return slots, nil
}

// SchedulerService is the pipeline's single entry point: one idempotent
// generation cycle per call.
type SchedulerService interface {
	RunGenerationCycle(ctx context.Context, now time.Time) (*models.RunReport, error)
}

type schedulerService struct {
	websiteRepo repositories.WebsiteRepository
	planRepo    repositories.KeywordPlanRepository
	quota       QuotaService
	generation  GenerationService
	generator   ai.Generator
	policy      SchedulingPolicy
	logger      *zap.Logger
}

func NewSchedulerService(
	websiteRepo repositories.WebsiteRepository,
	planRepo repositories.KeywordPlanRepository,
	quota QuotaService,
	generation GenerationService,
	generator ai.Generator,
	policy SchedulingPolicy,
	logger *zap.Logger,
) SchedulerService {
	return &schedulerService{
		websiteRepo: websiteRepo,
		planRepo:    planRepo,
		quota:       quota,
		generation:  generation,
		generator:   generator,
		policy:      policy,
		logger:      logger,
	}
}

func (s *schedulerService) RunGenerationCycle(ctx context.Context, now time.Time) (*models.RunReport, error) {
	report := &models.RunReport{
		Policy:     s.policy.Name(),
		PerWebsite: []models.WebsiteOutcome{},
	}

	// Missing credentials abort the run before any record is touched.
	if err := s.generator.Ready(); err != nil {
		report.Error = err.Error()
		return report, err
	}

	eligible, err := s.websiteRepo.ListEligible()
	if err != nil {
		perr := &PersistenceError{Op: "list eligible websites", Err: err}
		report.Error = perr.Error()
		return report, perr
	}

	report.WebsitesConsidered = len(eligible)
	if len(eligible) == 0 {
		s.logger.Info("no websites eligible for generation")
		return report, nil
	}

	slots, err := s.policy.Assign(now, eligible, func(w *models.Website) (int, error) {
		return s.quota.RemainingBudget(w, now)
	})
	if err != nil {
		report.Error = err.Error()
		return report, err
	}

	for _, slot := range slots {
		outcome := models.WebsiteOutcome{
			WebsiteID:   slot.Website.ID,
			WebsiteName: slot.Website.Name,
		}

		plans, err := s.planRepo.SelectPending(slot.Website.ID, slot.Limit)
		if err != nil {
			perr := &PersistenceError{Op: "select pending keywords", Err: err}
			outcome.Error = perr.Error()
			report.PerWebsite = append(report.PerWebsite, outcome)
			report.Error = perr.Error()
			return report, perr
		}

		s.logger.Info("processing website backlog",
			zap.String("website", slot.Website.Name),
			zap.Int("candidates", len(plans)),
			zap.Int("limit", slot.Limit))

		for _, plan := range plans {
			result, perr := s.generation.ProcessKeywordPlan(ctx, slot.Website, plan)
			if perr != nil {
				outcome.Error = perr.Error()
				report.PerWebsite = append(report.PerWebsite, outcome)
				report.Error = perr.Error()
				return report, perr
			}

			switch result {
			case ResultGenerated:
				report.KeywordsProcessed++
				outcome.Processed++
				report.ArticlesGenerated++
				outcome.Generated++
			case ResultFailed:
				report.KeywordsProcessed++
				outcome.Processed++
				outcome.Failed++
			case ResultSkipped:
				// claimed by a concurrent run; not ours to count
			}
		}

		report.PerWebsite = append(report.PerWebsite, outcome)
	}

	s.logger.Info("generation cycle finished",
		zap.String("policy", report.Policy),
		zap.Int("processed", report.KeywordsProcessed),
		zap.Int("generated", report.ArticlesGenerated))
	return report, nil
}
