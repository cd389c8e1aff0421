package main

import (
	"fmt"
	"net/http"
	"os"

	"spendwise/internal/classify"
	"spendwise/internal/config"
	"spendwise/internal/database"
	"spendwise/internal/handlers"
	"spendwise/internal/llm"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/services"
	"spendwise/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "spendwise/internal/docs" // Import swagger docs
)

// @title           Spendwise API
// @version         1.0
// @description     Spendwise is a conversational expense tracker: record spending in plain language, ask what you spent, and get budget advice from your salary and savings goal.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// External capabilities
	zeroShot := classify.NewHTTPZeroShotClient(appConfig.ClassifierURL, appConfig.ClassifierAPIKey, appConfig.ClassifierTimeout)
	classifier := classify.NewClassifier(zeroShot)
	assistant := llm.NewOpenAIClient(appConfig.AssistantAPIKey, appConfig.AssistantURL, appConfig.AssistantModel, appConfig.AssistantTimeout)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db, classifier)
	advisorService := services.NewAdvisorService(db)
	commandService := services.NewCommandService(assistant, expenseService, advisorService)
	reportService := services.NewReportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)
	commandHandler := handlers.NewCommandHandler(commandService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/salary", authHandler.UpdateSalary)
	protected.PUT("/profile/savings-goal", authHandler.UpdateSavingsGoal)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.Add)
	expenses.GET("", expenseHandler.List)
	expenses.GET("/query", expenseHandler.Query)
	expenses.PATCH("/last", expenseHandler.EditLast)
	expenses.GET("/summary", expenseHandler.Summary)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	// Advisor and conversational command routes
	protected.GET("/advisor/suggest", advisorHandler.Suggest)
	protected.POST("/command", commandHandler.Execute)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/monthly", reportHandler.Monthly)
	reports.GET("/monthly/csv", reportHandler.MonthlyCSV)
	reports.DELETE("/monthly", reportHandler.PurgeMonth)

	log.Infof("Starting Spendwise backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
