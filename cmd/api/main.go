package main

import (
	"fmt"
	"habitkit/internal/config"
	"habitkit/internal/database"
	"habitkit/internal/handlers"
	"habitkit/internal/logger"
	"habitkit/internal/middleware"
	"habitkit/internal/services"
	"habitkit/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           HabitKit API
// @version         1.0
// @description     HabitKit is a habit tracking application for building positive habits and breaking negative ones, with streaks, points, money savings, tapering schedules, and journaling.
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

	// Register custom binding validators
	validator.Register()

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

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	habitService := services.NewHabitService(db)
	streakService := services.NewStreakService(db)
	pointsService := services.NewPointsService(db)
	moneyService := services.NewMoneyService(db)
	logService := services.NewLogService(db, streakService, pointsService, moneyService)
	journalService := services.NewJournalService(db)
	progressService := services.NewProgressService(db, streakService, moneyService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	habitHandler := handlers.NewHabitHandler(habitService, logService, moneyService, progressService, auditService)
	logHandler := handlers.NewLogHandler(logService, auditService)
	journalHandler := handlers.NewJournalHandler(journalService, auditService)
	progressHandler := handlers.NewProgressHandler(progressService, pointsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/email", authHandler.UpdateEmail)
	protected.PUT("/profile/password", authHandler.UpdatePassword)
	protected.DELETE("/profile", authHandler.DeleteAccount)

	// Habit routes
	habits := protected.Group("/habits")
	habits.POST("", habitHandler.CreateHabit)
	habits.GET("", habitHandler.GetHabits)
	habits.GET("/:id", habitHandler.GetHabit)
	habits.PUT("/:id", habitHandler.UpdateHabit)
	habits.DELETE("/:id", habitHandler.DeleteHabit)
	habits.POST("/:id/archive", habitHandler.ArchiveHabit)
	habits.POST("/:id/unarchive", habitHandler.UnarchiveHabit)
	habits.POST("/:id/extend", habitHandler.ExtendFixedDays)
	habits.GET("/:id/progress", habitHandler.GetHabitProgress)
	habits.GET("/:id/logs", habitHandler.GetHabitLogs)
	habits.GET("/:id/savings", habitHandler.GetHabitSavings)
	habits.GET("/:id/tapering-history", habitHandler.GetTaperingHistory)

	// Log routes
	logs := protected.Group("/logs")
	logs.POST("", logHandler.CreateLog)
	logs.DELETE("/:id", logHandler.DeleteLog)

	// Journal routes
	journal := protected.Group("/journal")
	journal.POST("", journalHandler.CreateEntry)
	journal.GET("", journalHandler.GetEntries)
	journal.GET("/:id", journalHandler.GetEntry)
	journal.PUT("/:id", journalHandler.UpdateEntry)
	journal.DELETE("/:id", journalHandler.DeleteEntry)

	// Progress and points routes
	protected.GET("/progress/dashboard", progressHandler.GetDashboard)
	protected.GET("/points", progressHandler.GetMyPoints)
	protected.GET("/points/leaderboard", progressHandler.GetLeaderboard)

	log.Infof("Starting HabitKit backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
