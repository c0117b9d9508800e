package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validator "gopkg.in/go-playground/validator.v9"

	"content-hub/ai"
	"content-hub/helper"
	"content-hub/models"
	"content-hub/services"
)

type GenerationHandler struct {
	schedulerService  services.SchedulerService
	generationService services.GenerationService
	taskService       services.TaskService
	generator         ai.Generator
	helper            *helper.HTTPHelper
	staleThreshold    time.Duration
}

func NewGenerationHandler(
	schedulerService services.SchedulerService,
	generationService services.GenerationService,
	taskService services.TaskService,
	generator ai.Generator,
	httpHelper *helper.HTTPHelper,
	staleThreshold time.Duration,
) *GenerationHandler {
	return &GenerationHandler{
		schedulerService:  schedulerService,
		generationService: generationService,
		taskService:       taskService,
		generator:         generator,
		helper:            httpHelper,
		staleThreshold:    staleThreshold,
	}
}

// RunCycle triggers one generation cycle. Nothing to do is a success;
// run-level failures come back with the partial report attached.
func (h *GenerationHandler) RunCycle(c *gin.Context) {
	report, err := h.schedulerService.RunGenerationCycle(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"report":  report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}

func (h *GenerationHandler) GetTasks(c *gin.Context) {
	var params models.TaskListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, total, err := h.taskService.GetTasks(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":      tasks,
		"pagination": h.helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

func (h *GenerationHandler) CreateTask(c *gin.Context) {
	var req models.CreateGenerationTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	if err := h.helper.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.helper.SendValidationError(c, validationErrors)
			return
		}
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	task, err := h.taskService.CreateManualTask(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWebsiteNotFound),
			errors.Is(err, services.ErrKeywordPlanNotFound):
			h.helper.SendNotFoundError(c, err.Error(), h.helper.EmptyJsonMap())
		default:
			h.helper.SendInternalServerError(c, err.Error(), h.helper.EmptyJsonMap())
		}
		return
	}

	c.JSON(http.StatusCreated, task)
}

// TestGenerate runs a one-off generation for a keyword and returns a
// content preview without persisting anything.
func (h *GenerationHandler) TestGenerate(c *gin.Context) {
	var req models.TestGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	if err := h.helper.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.helper.SendValidationError(c, validationErrors)
			return
		}
		h.helper.SendBadRequest(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	article, err := h.generationService.TestGenerate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	preview := helper.TruncateText(article.Content, 500)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"title":           article.Title,
			"content_length":  len(article.Content),
			"content_preview": preview,
			"seo_title":       article.SeoTitle,
			"seo_description": article.SeoDescription,
			"tokens_used":     article.TokensUsed,
		},
	})
}

// AIHealth checks connectivity to the generation provider.
func (h *GenerationHandler) AIHealth(c *gin.Context) {
	if err := h.generator.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "generation provider reachable"})
}

func (h *GenerationHandler) ReleaseStale(c *gin.Context) {
	report, err := h.taskService.ReleaseStale(h.staleThreshold)
	if err != nil {
		h.helper.SendInternalServerError(c, err.Error(), h.helper.EmptyJsonMap())
		return
	}

	h.helper.SendSuccess(c, "stale records released", report)
}
