package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"content-hub/ai"
	"content-hub/config"
	"content-hub/handlers"
	"content-hub/helper"
	"content-hub/logging"
	"content-hub/middleware"
	"content-hub/repositories"
	"content-hub/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.Environment == "development")
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	// Initialize database
	db := config.InitDB(cfg)

	// Initialize repositories
	websiteRepo := repositories.NewWebsiteRepository(db)
	planRepo := repositories.NewKeywordPlanRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	taskRepo := repositories.NewGenerationTaskRepository(db)

	// Initialize AI generation client
	generator := ai.NewClient(ai.Config{
		APIKey:  cfg.OpenRouterAPIKey,
		Model:   cfg.OpenRouterModel,
		BaseURL: cfg.OpenRouterBaseURL,
	})
	if err := generator.Ready(); err != nil {
		logger.Warn("generation provider not configured, runs will abort", zap.Error(err))
	}

	// Initialize services
	quotaService := services.NewQuotaService(taskRepo)
	generationService := services.NewGenerationService(
		db, planRepo, taskRepo, articleRepo, generator, cfg.GenerationTimeout, logger)

	var policy services.SchedulingPolicy = services.RotationPolicy{}
	if cfg.SchedulingPolicy == config.PolicyExhaustive {
		policy = services.ExhaustivePolicy{}
	}

	schedulerService := services.NewSchedulerService(
		websiteRepo, planRepo, quotaService, generationService, generator, policy, logger)
	taskService := services.NewTaskService(websiteRepo, planRepo, taskRepo, generator)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	generationHandler := handlers.NewGenerationHandler(
		schedulerService, generationService, taskService, generator, httpHelper, cfg.StaleThreshold)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		generation := v1.Group("/generation")
		{
			generation.POST("/run", middleware.CronAuth(cfg.CronSecret), generationHandler.RunCycle)
			generation.POST("/release-stale", middleware.CronAuth(cfg.CronSecret), generationHandler.ReleaseStale)
			generation.GET("/tasks", generationHandler.GetTasks)
			generation.POST("/tasks", generationHandler.CreateTask)
			generation.POST("/test", generationHandler.TestGenerate)
			generation.GET("/ai/health", generationHandler.AIHealth)
		}
	}

	// Start server
	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("scheduling_policy", policy.Name()))
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
