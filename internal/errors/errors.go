// Package errors provides custom error types for the Spendwise API.
// All service-layer errors should use AppError so handlers can return
// consistent responses without leaking internal details to clients.
package errors

import "net/http"

// AppError is a structured application error carrying a stable error
// code, a user-facing message, the HTTP status to respond with, and an
// optional wrapped internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel that wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrNoExpenses      = &AppError{Code: "NO_EXPENSES", Message: "You don't have any expenses yet", StatusCode: http.StatusNotFound}
)

// Parsing and budget errors.
var (
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Could not parse a numeric amount. Try formats like 25000, 25k, or 25,000", StatusCode: http.StatusBadRequest}
	ErrSalaryNotSet  = &AppError{Code: "SALARY_NOT_SET", Message: "Your salary isn't set. Try 'Set my salary to 50k' first", StatusCode: http.StatusBadRequest}
)

// Classifier errors.
var (
	ErrClassifierUnavailable = &AppError{Code: "CLASSIFIER_UNAVAILABLE", Message: "The expense classifier is currently unavailable", StatusCode: http.StatusBadGateway}
	ErrCommandNotUnderstood  = &AppError{Code: "COMMAND_NOT_UNDERSTOOD", Message: "Sorry, I couldn't understand that command", StatusCode: http.StatusBadRequest}
	ErrAssistantUnavailable  = &AppError{Code: "ASSISTANT_UNAVAILABLE", Message: "The assistant is currently unavailable", StatusCode: http.StatusBadGateway}
)
