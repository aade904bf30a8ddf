package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"habitkit/internal/handlers"
	"habitkit/internal/logger"
	"habitkit/internal/middleware"
	"habitkit/internal/models"
	"habitkit/internal/services"
	"habitkit/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Habit{},
		&models.HabitLog{},
		&models.Streak{},
		&models.MoneySaving{},
		&models.TaperingHistory{},
		&models.UserPoints{},
		&models.JournalEntry{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	habitService := services.NewHabitService(db)
	streakService := services.NewStreakService(db)
	pointsService := services.NewPointsService(db)
	moneyService := services.NewMoneyService(db)
	logService := services.NewLogService(db, streakService, pointsService, moneyService)
	journalService := services.NewJournalService(db)
	progressService := services.NewProgressService(db, streakService, moneyService)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	habitHandler := handlers.NewHabitHandler(habitService, logService, moneyService, progressService, auditService)
	logHandler := handlers.NewLogHandler(logService, auditService)
	journalHandler := handlers.NewJournalHandler(journalService, auditService)
	progressHandler := handlers.NewProgressHandler(progressService, pointsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/email", authHandler.UpdateEmail)
	protected.PUT("/profile/password", authHandler.UpdatePassword)
	protected.DELETE("/profile", authHandler.DeleteAccount)

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

	logs := protected.Group("/logs")
	logs.POST("", logHandler.CreateLog)
	logs.DELETE("/:id", logHandler.DeleteLog)

	journal := protected.Group("/journal")
	journal.POST("", journalHandler.CreateEntry)
	journal.GET("", journalHandler.GetEntries)
	journal.GET("/:id", journalHandler.GetEntry)
	journal.PUT("/:id", journalHandler.UpdateEntry)
	journal.DELETE("/:id", journalHandler.DeleteEntry)

	protected.GET("/progress/dashboard", progressHandler.GetDashboard)
	protected.GET("/points", progressHandler.GetMyPoints)
	protected.GET("/points/leaderboard", progressHandler.GetLeaderboard)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createHabit creates a habit from a raw JSON body and returns its ID.
func (app *testApp) createHabit(t *testing.T, token, body string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/habits", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create habit failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	habit := result["habit"].(map[string]interface{})
	return habit["id"].(float64)
}
