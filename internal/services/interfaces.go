// Package services contains the business logic of the application.
// Services operate on GORM models and return typed AppErrors; handlers
// stay thin and translate those into HTTP responses.
package services

import (
	"context"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// UserServicer handles user accounts, salary, and savings goals.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	SetSalary(userID, raw string) (*models.User, error)
	SetSavingsGoal(userID, raw string) (*models.User, error)
}

// ExpenseServicer records, edits, lists, and aggregates expenses.
type ExpenseServicer interface {
	AddFromText(ctx context.Context, userID, text string) (*models.Expense, error)
	Create(userID string, input ExpenseInput) (*models.Expense, error)
	GetByID(userID, expenseID string) (*models.Expense, error)
	List(userID string, filter ExpenseFilter, page pagination.PageRequest) (pagination.PageResponse[models.Expense], error)
	Query(userID, text string) (*QueryResult, error)
	EditLast(userID string, newAmount float64, newDescription string) (*models.Expense, error)
	Update(userID, expenseID string, input ExpenseInput) (*models.Expense, error)
	Delete(userID, expenseID string) error
	CategoryTotals(userID string, start, end string) (map[string]float64, float64, error)
}

// AdvisorServicer answers free-text budgeting questions.
type AdvisorServicer interface {
	Suggest(ctx context.Context, userID, text string) (*Advice, error)
}

// CommandServicer routes conversational messages to expense operations.
type CommandServicer interface {
	Execute(ctx context.Context, userID, message string) (*CommandResult, error)
}

// ReportServicer builds and exports monthly expense reports.
type ReportServicer interface {
	MonthlyReport(userID string, year, month int) (*MonthlyReport, error)
	MonthlyReportCSV(userID string, year, month int) ([]byte, error)
	PurgeMonth(userID string, year, month int) (int64, error)
}
