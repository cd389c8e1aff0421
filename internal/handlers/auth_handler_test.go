package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/validator"
)

// --- mock user service ---

type mockUserService struct {
	createUserFn     func(name, email, password string) (*models.User, error)
	getUserByEmailFn func(email string) (*models.User, error)
	getUserByIDFn    func(id string) (*models.User, error)
	verifyPasswordFn func(user *models.User, password string) bool
	setSalaryFn      func(userID, raw string) (*models.User, error)
	setSavingsGoalFn func(userID, raw string) (*models.User, error)
}

func (m *mockUserService) CreateUser(name, email, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(name, email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

func (m *mockUserService) SetSalary(userID, raw string) (*models.User, error) {
	if m.setSalaryFn != nil {
		return m.setSalaryFn(userID, raw)
	}
	return &models.User{}, nil
}

func (m *mockUserService) SetSavingsGoal(userID, raw string) (*models.User, error) {
	if m.setSavingsGoalFn != nil {
		return m.setSavingsGoalFn(userID, raw)
	}
	return &models.User{}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/profile", injectUserID("user-1"), handler.GetProfile)
	r.PUT("/profile/salary", injectUserID("user-1"), handler.UpdateSalary)
	r.PUT("/profile/savings-goal", injectUserID("user-1"), handler.UpdateSavingsGoal)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with token on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(name, email, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: "user-1"}, Name: name, Email: email}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/register", `{"name":"Asha","email":"asha@example.com","password":"secret1234"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == "" || result["token"] == nil {
			t.Error("expected a token in the response")
		}
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))
		rec := doRequest(r, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"short"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateEmail
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/register", `{"email":"a@b.com","password":"secret1234"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 401 on wrong password", func(t *testing.T) {
		userSvc := &mockUserService{
			verifyPasswordFn: func(_ *models.User, _ string) bool { return false },
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 401 for unknown email", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByEmailFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"whatever"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_UpdateSalary(t *testing.T) {
	t.Run("passes raw amount through to the service", func(t *testing.T) {
		var got string
		userSvc := &mockUserService{
			setSalaryFn: func(_, raw string) (*models.User, error) {
				got = raw
				salary := 25000.0
				return &models.User{Base: models.Base{ID: "user-1"}, Salary: &salary}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPut, "/profile/salary", `{"amount":"25k"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got != "25k" {
			t.Errorf("expected raw amount %q forwarded, got %q", "25k", got)
		}
	})

	t.Run("returns 400 when amount is not numeric", func(t *testing.T) {
		userSvc := &mockUserService{
			setSalaryFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidAmount
			},
		}
		r := setupAuthRouter(NewAuthHandler(userSvc))

		rec := doRequest(r, http.MethodPut, "/profile/salary", `{"amount":"a lot"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_AMOUNT")
	})
}
