package integration

import (
	"context"
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

	"spendwise/internal/classify"
	"spendwise/internal/handlers"
	"spendwise/internal/llm"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	LLM    *stubLLM
}

// stubLLM lets a test script the assistant's next reply.
type stubLLM struct {
	Reply string
	Err   error
}

func (s *stubLLM) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return s.Reply, s.Err
}

// stubZeroShot answers with a fixed top label; tests that only use
// keyword-matched text never reach it.
type stubZeroShot struct {
	labels []string
}

func (s *stubZeroShot) Classify(_ context.Context, _ string, _ []string) ([]string, error) {
	return s.labels, nil
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

	if err := db.AutoMigrate(&models.User{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	assistant := &stubLLM{}

	// Services
	classifier := classify.NewClassifier(&stubZeroShot{labels: []string{"Wants"}})
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db, classifier)
	advisorService := services.NewAdvisorService(db)
	commandService := services.NewCommandService(assistant, expenseService, advisorService)
	reportService := services.NewReportService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)
	commandHandler := handlers.NewCommandHandler(commandService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/salary", authHandler.UpdateSalary)
	protected.PUT("/profile/savings-goal", authHandler.UpdateSavingsGoal)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.Add)
	expenses.GET("", expenseHandler.List)
	expenses.GET("/query", expenseHandler.Query)
	expenses.PATCH("/last", expenseHandler.EditLast)
	expenses.GET("/summary", expenseHandler.Summary)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	protected.GET("/advisor/suggest", advisorHandler.Suggest)
	protected.POST("/command", commandHandler.Execute)

	reports := protected.Group("/reports")
	reports.GET("/monthly", reportHandler.Monthly)
	reports.GET("/monthly/csv", reportHandler.MonthlyCSV)
	reports.DELETE("/monthly", reportHandler.PurgeMonth)

	return &testApp{DB: db, Router: router, LLM: assistant}
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

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":"Test User","email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}
