package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// MonthlyReport is a month's spending broken down by category.
type MonthlyReport struct {
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	RangeStart   string             `json:"range_start"`
	RangeEnd     string             `json:"range_end"`
	TotalSpent   float64            `json:"total_spent"`
	FixedTotal   float64            `json:"fixed_total"`
	ExpenseCount int                `json:"expense_count"`
	ByCategory   map[string]float64 `json:"by_category"`
	Expenses     []models.Expense   `json:"expenses"`
	Salary       *float64           `json:"salary,omitempty"`
	SavingsGoal  float64            `json:"savings_goal"`
	Leftover     *float64           `json:"leftover,omitempty"`
}

// reportService builds and exports monthly expense reports.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

func monthBounds(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return models.FormatDate(start), models.FormatDate(end)
}

// MonthlyReport aggregates one calendar month of the user's expenses.
// Leftover is salary minus total spent, present only when a salary is set.
func (s *reportService) MonthlyReport(userID string, year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	start, end := monthBounds(year, month)

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &MonthlyReport{
		Year:         year,
		Month:        month,
		RangeStart:   start,
		RangeEnd:     end,
		ExpenseCount: len(expenses),
		ByCategory:   make(map[string]float64),
		Expenses:     expenses,
		Salary:       user.Salary,
		SavingsGoal:  user.SavingsGoal,
	}
	for _, e := range expenses {
		report.TotalSpent += e.Amount
		report.ByCategory[e.Category] += e.Amount
		if e.IsFixed {
			report.FixedTotal += e.Amount
		}
	}
	if user.Salary != nil {
		leftover := *user.Salary - report.TotalSpent
		report.Leftover = &leftover
	}

	return report, nil
}

// MonthlyReportCSV renders the monthly report as CSV: one row per
// expense, then a blank row, then per-category totals.
func (s *reportService) MonthlyReportCSV(userID string, year, month int) ([]byte, error) {
	report, err := s.MonthlyReport(userID, year, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Description", "Category", "Amount", "Fixed"}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, e := range report.Expenses {
		fixed := "no"
		if e.IsFixed {
			fixed = "yes"
		}
		record := []string{
			e.Date,
			e.Description,
			e.Category,
			fmt.Sprintf("%.2f", e.Amount),
			fixed,
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	_ = w.Write([]string{})
	_ = w.Write([]string{"Category", "Total"})

	categories := make([]string, 0, len(report.ByCategory))
	for c := range report.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		_ = w.Write([]string{c, fmt.Sprintf("%.2f", report.ByCategory[c])})
	}
	_ = w.Write([]string{"Total", fmt.Sprintf("%.2f", report.TotalSpent)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

// PurgeMonth deletes all of the user's expenses inside one calendar
// month and returns the number of records removed.
func (s *reportService) PurgeMonth(userID string, year, month int) (int64, error) {
	if month < 1 || month > 12 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	start, end := monthBounds(year, month)
	result := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Delete(&models.Expense{})
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}
