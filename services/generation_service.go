package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"content-hub/ai"
	"content-hub/helper"
	"content-hub/models"
	"content-hub/repositories"
)

// ProcessResult is the outcome of driving one keyword plan through the
// generation state machine.
type ProcessResult int

const (
	// ResultSkipped means another run claimed the plan first; nothing was
	// written by this run.
	ResultSkipped ProcessResult = iota
	ResultGenerated
	ResultFailed
)

type GenerationService interface {
	// ProcessKeywordPlan drives one pending plan to a terminal state. A
	// provider or parse failure is recorded on the plan and task and
	// returned as ResultFailed with a nil error; only state-store failures
	// surface as errors.
	ProcessKeywordPlan(ctx context.Context, website models.Website, plan models.KeywordPlan) (ProcessResult, error)
	// TestGenerate runs a one-off generation without touching the store.
	TestGenerate(ctx context.Context, req models.TestGenerateRequest) (*ai.GeneratedArticle, error)
}

type generationService struct {
	db          *gorm.DB
	planRepo    repositories.KeywordPlanRepository
	taskRepo    repositories.GenerationTaskRepository
	articleRepo repositories.ArticleRepository
	generator   ai.Generator
	timeout     time.Duration
	logger      *zap.Logger
}

func NewGenerationService(
	db *gorm.DB,
	planRepo repositories.KeywordPlanRepository,
	taskRepo repositories.GenerationTaskRepository,
	articleRepo repositories.ArticleRepository,
	generator ai.Generator,
	timeout time.Duration,
	logger *zap.Logger,
) GenerationService {
	return &generationService{
		db:          db,
		planRepo:    planRepo,
		taskRepo:    taskRepo,
		articleRepo: articleRepo,
		generator:   generator,
		timeout:     timeout,
		logger:      logger,
	}
}

func (s *generationService) ProcessKeywordPlan(ctx context.Context, website models.Website, plan models.KeywordPlan) (ProcessResult, error) {
	req := buildGenerationRequest(website, plan)
	prompt := ai.BuildPrompt(req)

	now := time.Now()
	task := &models.GenerationTask{
		WebsiteID:     website.ID,
		KeywordPlanID: &plan.ID,
		Type:          models.TaskAuto,
		Status:        models.TaskProcessing,
		Model:         s.generator.Model(),
		Prompt:        prompt,
		StartedAt:     &now,
	}

	// Claim: conditional status flip plus task creation, one atomic unit.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.planRepo.WithTx(tx).Claim(plan.ID); err != nil {
			return err
		}
		return s.taskRepo.WithTx(tx).Create(task)
	})
	if errors.Is(err, repositories.ErrPlanAlreadyClaimed) {
		s.logger.Info("keyword plan claimed by another run, skipping",
			zap.String("keyword_plan_id", plan.ID))
		return ResultSkipped, nil
	}
	if err != nil {
		return ResultSkipped, &PersistenceError{Op: "claim keyword plan", Err: err}
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	generated, genErr := s.generator.Generate(genCtx, req)
	if genErr != nil {
		return s.resolveFailure(plan, task, genErr)
	}

	if err := s.resolveSuccess(plan, task, generated); err != nil {
		return ResultFailed, err
	}

	s.logger.Info("article generated",
		zap.String("website", website.Name),
		zap.String("keyword", plan.Keyword),
		zap.String("title", generated.Title),
		zap.Int("tokens_used", generated.TokensUsed))
	return ResultGenerated, nil
}

// resolveSuccess writes the article and both terminal updates as one
// atomic commit, so a crash never leaves the three records inconsistent.
func (s *generationService) resolveSuccess(plan models.KeywordPlan, task *models.GenerationTask, generated *ai.GeneratedArticle) error {
	now := time.Now()
	article := &models.Article{
		Title:          generated.Title,
		Slug:           helper.GenerateSlug(generated.Title),
		Content:        generated.Content,
		Excerpt:        helper.ExtractExcerpt(generated.Content),
		CategoryID:     plan.CategoryID,
		Status:         models.ArticlePublished,
		SeoTitle:       generated.SeoTitle,
		SeoDescription: generated.SeoDescription,
		SeoKeywords:    plan.Keyword,
		PublishedAt:    &now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.articleRepo.WithTx(tx).Create(article); err != nil {
			return err
		}
		if err := s.planRepo.WithTx(tx).MarkGenerated(plan.ID, article.ID, now); err != nil {
			return err
		}
		return s.taskRepo.WithTx(tx).Complete(task.ID, article.ID, generated.TokensUsed, now)
	})
	if err != nil {
		return &PersistenceError{Op: "commit generated article", Err: err}
	}
	return nil
}

func (s *generationService) resolveFailure(plan models.KeywordPlan, task *models.GenerationTask, cause error) (ProcessResult, error) {
	var parseErr *ai.ParseError
	if errors.As(cause, &parseErr) {
		s.logger.Warn("generation response unparsable",
			zap.String("keyword", plan.Keyword),
			zap.String("reason", parseErr.Reason),
			zap.Int("raw_bytes", len(parseErr.Raw)))
	} else {
		s.logger.Warn("generation provider failed",
			zap.String("keyword", plan.Keyword),
			zap.Error(cause))
	}

	now := time.Now()
	reason := cause.Error()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.planRepo.WithTx(tx).MarkFailed(plan.ID, reason); err != nil {
			return err
		}
		return s.taskRepo.WithTx(tx).Fail(task.ID, reason, now)
	})
	if err != nil {
		return ResultFailed, &PersistenceError{Op: "record generation failure", Err: err}
	}
	return ResultFailed, nil
}

func (s *generationService) TestGenerate(ctx context.Context, req models.TestGenerateRequest) (*ai.GeneratedArticle, error) {
	website := &ai.WebsiteInfo{
		Name:        req.WebsiteName,
		Domain:      req.Domain,
		Description: req.Description,
	}
	if website.Name == "" || website.Domain == "" {
		website = &ai.WebsiteInfo{
			Name:        "YourWebsite",
			Domain:      "example.com",
			Description: "A helpful online tool",
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.generator.Generate(genCtx, ai.Request{Keyword: req.Keyword, Website: website})
}

func buildGenerationRequest(website models.Website, plan models.KeywordPlan) ai.Request {
	req := ai.Request{
		Keyword: plan.Keyword,
		Website: &ai.WebsiteInfo{
			Name:        website.Name,
			Domain:      website.Domain,
			Description: website.Description,
		},
	}
	if plan.SearchVolume != nil {
		req.Signals = &ai.SEOSignals{
			SearchVolume: plan.SearchVolume,
			Difficulty:   plan.Difficulty,
			Competition:  plan.Competition,
		}
	}
	return req
}
