package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/nlp"
)

// Advice outcome kinds.
const (
	OutcomeHelp       = "help"
	OutcomeSummary    = "summary"
	OutcomeApprove    = "approve"
	OutcomeDeny       = "deny"
	OutcomeCaution    = "caution"
	OutcomeAllocation = "allocation"
)

// financeKeywords gate budget analysis: a query must contain one of
// these (or any digit) before the store is read at all.
var financeKeywords = []string{
	"spend", "spent", "budget", "salary", "income", "expense",
	"savings", "save", "cost", "price", "amount", "money",
	"rupee", "rs", "₹",
}

// allocationVocab is the category vocabulary for split-the-budget
// queries. Naming at least two of these switches the advisor into
// allocation mode.
var allocationVocab = []string{"food", "petrol", "needs", "other", "outing", "rent"}

// AllocationShare is one category's slice of an even budget split.
type AllocationShare struct {
	Share  float64 `json:"share"`
	PerDay float64 `json:"per_day"`
}

// Advice is the advisor's answer to a budgeting question.
type Advice struct {
	Outcome         string                     `json:"outcome"`
	Message         string                     `json:"message"`
	TotalSpent      float64                    `json:"total_spent,omitempty"`
	RemainingBudget float64                    `json:"remaining_budget,omitempty"`
	SafeDailySpend  float64                    `json:"safe_daily_spend,omitempty"`
	DaysRemaining   int                        `json:"days_remaining,omitempty"`
	RequestedAmount float64                    `json:"requested_amount,omitempty"`
	ByCategory      map[string]float64         `json:"by_category,omitempty"`
	Allocation      map[string]AllocationShare `json:"allocation,omitempty"`
	RangeStart      string                     `json:"range_start,omitempty"`
	RangeEnd        string                     `json:"range_end,omitempty"`
}

// advisorService answers free-text budgeting questions from the user's
// salary, savings goal, and spending history.
type advisorService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAdvisorService creates a new AdvisorServicer.
func NewAdvisorService(db *gorm.DB) AdvisorServicer {
	return &advisorService{db: db, now: time.Now}
}

// Suggest analyses a budgeting question. The flow is: finance gate,
// salary check, date range resolution, spend aggregation, then one of
// allocation / deny / approve / caution / summary. Negative remaining
// budget is a valid answer, not an error.
func (s *advisorService) Suggest(ctx context.Context, userID, text string) (*Advice, error) {
	lowered := strings.ToLower(text)

	if !isFinanceQuery(lowered) {
		return &Advice{
			Outcome: OutcomeHelp,
			Message: "I can help with budgeting questions. Try \"can I spend 2k this weekend?\" or \"how is my budget this month?\"",
		}, nil
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if user.Salary == nil {
		return nil, apperrors.ErrSalaryNotSet
	}
	salary := *user.Salary

	now := s.now()
	rng, ok := nlp.ResolveRelativeRange(lowered, now)
	if !ok {
		rng = nlp.MonthRange(now)
	}
	start := models.FormatDate(rng.Start)
	end := models.FormatDate(rng.End)

	type categoryRow struct {
		Category string
		Total    float64
	}
	var rows []categoryRow
	if err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byCategory := make(map[string]float64, len(rows))
	var totalSpent float64
	for _, r := range rows {
		byCategory[r.Category] = r.Total
		totalSpent += r.Total
	}

	remaining := salary - user.SavingsGoal - totalSpent
	daysRemaining := nlp.DaysRemaining(now, rng.End)
	safeDaily := remaining / float64(daysRemaining)

	// The displayed daily rate never goes negative; comparisons below
	// still use the raw value.
	displayedDaily := safeDaily
	if displayedDaily < 0 {
		displayedDaily = 0
	}

	advice := &Advice{
		TotalSpent:      totalSpent,
		RemainingBudget: remaining,
		SafeDailySpend:  displayedDaily,
		DaysRemaining:   daysRemaining,
		RangeStart:      start,
		RangeEnd:        end,
	}

	if cats := allocationCategories(lowered); len(cats) >= 2 && remaining > 0 {
		share := remaining / float64(len(cats))
		perDay := share / float64(daysRemaining)
		advice.Outcome = OutcomeAllocation
		advice.Allocation = make(map[string]AllocationShare, len(cats))
		for _, c := range cats {
			advice.Allocation[c] = AllocationShare{Share: share, PerDay: perDay}
		}
		advice.Message = fmt.Sprintf(
			"Splitting your remaining %.2f across %d categories gives %.2f each (%.2f per day).",
			remaining, len(cats), share, perDay)
		return advice, nil
	}

	requested := nlp.ExtractRequestedAmount(text)
	advice.RequestedAmount = requested

	switch {
	case requested <= 0:
		advice.Outcome = OutcomeSummary
		advice.ByCategory = byCategory
		advice.Message = fmt.Sprintf(
			"You have spent %.2f so far. Remaining budget is %.2f, which works out to %.2f per day for the next %d days.",
			totalSpent, remaining, displayedDaily, daysRemaining)
	case requested > remaining:
		advice.Outcome = OutcomeDeny
		advice.Message = fmt.Sprintf(
			"Spending %.2f would exceed your remaining budget of %.2f. Better to hold off.",
			requested, remaining)
	case requested <= safeDaily:
		advice.Outcome = OutcomeApprove
		advice.Message = fmt.Sprintf(
			"Go ahead. %.2f is within your safe daily spend of %.2f.",
			requested, displayedDaily)
	default:
		advice.Outcome = OutcomeCaution
		advice.Message = fmt.Sprintf(
			"You can afford %.2f, but it is above your sustainable daily pace of %.2f. Spend carefully.",
			requested, displayedDaily)
	}

	return advice, nil
}

// isFinanceQuery reports whether the text looks finance-related at all.
func isFinanceQuery(lowered string) bool {
	for _, kw := range financeKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	for _, r := range lowered {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// allocationCategories returns the allocation vocabulary words present
// in the text, in vocabulary order.
func allocationCategories(lowered string) []string {
	var found []string
	for _, c := range allocationVocab {
		if strings.Contains(lowered, c) {
			found = append(found, c)
		}
	}
	return found
}
