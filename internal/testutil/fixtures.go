package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestUserWithSalary creates a user with a monthly salary and savings goal.
func CreateTestUserWithSalary(t *testing.T, db *gorm.DB, salary, savingsGoal float64) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	user.Salary = &salary
	user.SavingsGoal = savingsGoal
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to set salary on test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense dated now for the given user.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, category string, amount float64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, userID, category, amount, time.Now().UTC())
}

// CreateTestExpenseOn creates an expense with an explicit date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, userID, category string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Description: fmt.Sprintf("test expense %d", nextID()),
		Amount:      amount,
		Category:    category,
		Date:        models.FormatDate(date),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
