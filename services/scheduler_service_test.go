package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"content-hub/ai"
	"content-hub/models"
	"content-hub/repositories"
)

func flatBudget(n int) BudgetFunc {
	return func(*models.Website) (int, error) { return n, nil }
}

func TestRotationPolicyIsDeterministic(t *testing.T) {
	eligible := []models.Website{
		{ID: "a", Name: "First"},
		{ID: "b", Name: "Second"},
	}
	policy := RotationPolicy{}

	firstHalf := time.Date(2026, 8, 30, 10, 12, 0, 0, time.UTC)
	secondHalf := time.Date(2026, 8, 30, 10, 42, 0, 0, time.UTC)

	slots, err := policy.Assign(firstHalf, eligible, flatBudget(5))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "a", slots[0].Website.ID)
	assert.Equal(t, 1, slots[0].Limit, "rotation hands out one keyword per run")

	slots, err = policy.Assign(secondHalf, eligible, flatBudget(5))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "b", slots[0].Website.ID)

	// Same instant, same pick.
	again, err := policy.Assign(secondHalf, eligible, flatBudget(5))
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, "b", again[0].Website.ID)
}

func TestRotationPolicyThreeSitesCoverTwoSlotsPerHour(t *testing.T) {
	eligible := []models.Website{
		{ID: "a", Name: "First"},
		{ID: "b", Name: "Second"},
		{ID: "c", Name: "Third"},
	}
	policy := RotationPolicy{}

	picked := map[string]bool{}
	for minute := 0; minute < 60; minute++ {
		now := time.Date(2026, 8, 30, 10, minute, 0, 0, time.UTC)
		slots, err := policy.Assign(now, eligible, flatBudget(5))
		require.NoError(t, err)
		require.Len(t, slots, 1)
		picked[slots[0].Website.ID] = true
	}

	// An hour has two half-hour slots, so with three or more eligible
	// sites only the first two are ever on duty within a single hour.
	// The third site gets a turn only when the eligible set changes.
	assert.Equal(t, map[string]bool{"a": true, "b": true}, picked)
}

func TestRotationPolicySkipsExhaustedWebsite(t *testing.T) {
	eligible := []models.Website{{ID: "a", Name: "Only"}}

	slots, err := RotationPolicy{}.Assign(time.Now(), eligible, flatBudget(0))

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestExhaustivePolicyAssignsFullBudgets(t *testing.T) {
	eligible := []models.Website{
		{ID: "a", Name: "Rich"},
		{ID: "b", Name: "Broke"},
		{ID: "c", Name: "Modest"},
	}
	budgets := map[string]int{"a": 4, "b": 0, "c": 1}
	budget := func(w *models.Website) (int, error) { return budgets[w.ID], nil }

	slots, err := ExhaustivePolicy{}.Assign(time.Now(), eligible, budget)

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].Website.ID)
	assert.Equal(t, 4, slots[0].Limit)
	assert.Equal(t, "c", slots[1].Website.ID)
	assert.Equal(t, 1, slots[1].Limit)
}

func newScheduler(db *gorm.DB, gen ai.Generator, policy SchedulingPolicy) SchedulerService {
	taskRepo := repositories.NewGenerationTaskRepository(db)
	return NewSchedulerService(
		repositories.NewWebsiteRepository(db),
		repositories.NewKeywordPlanRepository(db),
		NewQuotaService(taskRepo),
		newGenerationService(db, gen),
		gen,
		policy,
		zap.NewNop(),
	)
}

func TestRunGenerationCycleNoEligibleWebsites(t *testing.T) {
	db := setupTestDB(t)
	sched := newScheduler(db, &stubGenerator{article: sampleArticle()}, RotationPolicy{})

	report, err := sched.RunGenerationCycle(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, report.WebsitesConsidered)
	assert.Equal(t, 0, report.KeywordsProcessed)
	assert.Empty(t, report.Error)
}

func TestRunGenerationCycleAbortsWhenNotConfigured(t *testing.T) {
	db := setupTestDB(t)
	website := seedWebsite(t, db, 5)
	seedPlan(t, db, website.ID, "untouched keyword", 1)

	gen := &stubGenerator{readyErr: ai.ErrNotConfigured, article: sampleArticle()}
	sched := newScheduler(db, gen, RotationPolicy{})

	report, err := sched.RunGenerationCycle(context.Background(), time.Now())

	require.ErrorIs(t, err, ai.ErrNotConfigured)
	assert.NotEmpty(t, report.Error)

	var plan models.KeywordPlan
	require.NoError(t, db.First(&plan).Error)
	assert.Equal(t, models.KeywordPending, plan.Status, "an aborted run touches nothing")

	var tasks int64
	require.NoError(t, db.Model(&models.GenerationTask{}).Count(&tasks).Error)
	assert.EqualValues(t, 0, tasks)
}

func TestRunGenerationCycleHonorsDailyQuota(t *testing.T) {
	db := setupTestDB(t)
	website := seedWebsite(t, db, 2)
	seedPlan(t, db, website.ID, "keyword most urgent", 1)
	seedPlan(t, db, website.ID, "keyword least urgent", 3)
	seedPlan(t, db, website.ID, "keyword mid urgent", 2)

	gen := &stubGenerator{article: sampleArticle()}
	sched := newScheduler(db, gen, ExhaustivePolicy{})

	report, err := sched.RunGenerationCycle(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 2, report.KeywordsProcessed)
	assert.Equal(t, 2, report.ArticlesGenerated)
	assert.ElementsMatch(t, []string{"keyword most urgent", "keyword mid urgent"}, gen.calls,
		"budget goes to the most urgent keywords first")

	var pending int64
	require.NoError(t, db.Model(&models.KeywordPlan{}).
		Where("status = ?", models.KeywordPending).Count(&pending).Error)
	assert.EqualValues(t, 1, pending, "the over-budget keyword stays pending for tomorrow")
}

func TestRunGenerationCycleContinuesPastFailures(t *testing.T) {
	db := setupTestDB(t)
	website := seedWebsite(t, db, 5)
	seedPlan(t, db, website.ID, "broken keyword", 1)
	seedPlan(t, db, website.ID, "healthy keyword", 2)

	gen := &stubGenerator{
		article:  sampleArticle(),
		failWith: map[string]error{"broken keyword": &ai.ProviderError{StatusCode: 500, Message: "upstream down"}},
	}
	sched := newScheduler(db, gen, ExhaustivePolicy{})

	report, err := sched.RunGenerationCycle(context.Background(), time.Now())

	require.NoError(t, err, "a single keyword's failure never poisons the run")
	assert.Equal(t, 2, report.KeywordsProcessed)
	assert.Equal(t, 1, report.ArticlesGenerated)
	require.Len(t, report.PerWebsite, 1)
	assert.Equal(t, 1, report.PerWebsite[0].Failed)
	assert.Equal(t, 1, report.PerWebsite[0].Generated)

	var failed models.KeywordPlan
	require.NoError(t, db.First(&failed, "keyword = ?", "broken keyword").Error)
	assert.Equal(t, models.KeywordFailed, failed.Status)

	var generated models.KeywordPlan
	require.NoError(t, db.First(&generated, "keyword = ?", "healthy keyword").Error)
	assert.Equal(t, models.KeywordGenerated, generated.Status)
}

func TestRunGenerationCycleRotationPicksOneSite(t *testing.T) {
	db := setupTestDB(t)
	first := seedWebsite(t, db, 5)
	second := &models.Website{
		Name: "Second Site", Domain: "second.example.com", URL: "https://second.example.com",
		IsActive: true, AutoGenerateEnabled: true, MaxArticlesPerDay: 5,
		CreatedAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, db.Create(second).Error)

	seedPlan(t, db, first.ID, "first site keyword", 1)
	seedPlan(t, db, second.ID, "second site keyword", 1)

	gen := &stubGenerator{article: sampleArticle()}
	sched := newScheduler(db, gen, RotationPolicy{})

	// Minute 40 lands on the second half-hour slot of the creation order.
	now := time.Date(2026, 8, 30, 9, 40, 0, 0, time.UTC)
	report, err := sched.RunGenerationCycle(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 2, report.WebsitesConsidered)
	assert.Equal(t, 1, report.KeywordsProcessed)
	assert.Equal(t, []string{"second site keyword"}, gen.calls)

	var untouched models.KeywordPlan
	require.NoError(t, db.First(&untouched, "keyword = ?", "first site keyword").Error)
	assert.Equal(t, models.KeywordPending, untouched.Status)
}
