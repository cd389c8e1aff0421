package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"spendwise/internal/classify"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/nlp"
	"spendwise/internal/pagination"
)

// fixedKeywords marks categories that are recurring obligations by name
// alone, with no history lookup needed.
var fixedKeywords = []string{"rent", "eb", "electricity", "internet", "wifi", "insurance", "loan"}

// ExpenseInput carries the fields for an explicit expense create or update.
type ExpenseInput struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"omitempty,expense_category"`
	Date        string  `json:"date" binding:"omitempty"`
}

// ExpenseFilter narrows an expense listing.
type ExpenseFilter struct {
	Category string `form:"category" binding:"omitempty"`
	From     string `form:"from" binding:"omitempty"`
	To       string `form:"to" binding:"omitempty"`
}

// QueryResult is the answer to a free-text expense query: the matching
// records plus their total, broken down by category.
type QueryResult struct {
	Expenses   []models.Expense   `json:"expenses"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	Categories []string           `json:"categories,omitempty"`
	RangeStart string             `json:"range_start,omitempty"`
	RangeEnd   string             `json:"range_end,omitempty"`
}

// expenseService handles expense-related business logic.
type expenseService struct {
	db         *gorm.DB
	classifier *classify.Classifier
	now        func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, classifier *classify.Classifier) ExpenseServicer {
	return &expenseService{db: db, classifier: classifier, now: time.Now}
}

// AddFromText records an expense from a free-text description like
// "spent 250 on dinner". The amount is the first number in the text,
// the category comes from the classifier, and the record is tagged as
// fixed when the category is a recurring obligation.
func (s *expenseService) AddFromText(ctx context.Context, userID, text string) (*models.Expense, error) {
	amount := nlp.ExtractFirstAmount(text)
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "could not find an amount in the message; include a number like 250 or 2.5k")
	}

	category, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: strings.TrimSpace(text),
		Amount:      amount,
		Category:    category,
		Date:        models.FormatDate(s.now()),
		IsFixed:     s.isFixedCategory(userID, category),
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Create records an expense with explicit fields. When the category is
// omitted it is classified from the description.
func (s *expenseService) Create(userID string, input ExpenseInput) (*models.Expense, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must be positive")
	}

	category := input.Category
	if category == "" {
		c, err := s.classifier.Classify(context.Background(), input.Description)
		if err != nil {
			return nil, err
		}
		category = c
	}

	date := input.Date
	if date == "" {
		date = models.FormatDate(s.now())
	} else {
		parsed, err := models.ParseDate(date)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be RFC3339, e.g. 2026-08-28T00:00:00Z")
		}
		date = models.FormatDate(parsed)
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Category:    category,
		Date:        date,
		IsFixed:     s.isFixedCategory(userID, category),
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetByID fetches a single expense owned by the user.
func (s *expenseService) GetByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// List returns a page of the user's expenses, newest first, optionally
// filtered by category and date bounds.
func (s *expenseService) List(userID string, filter ExpenseFilter, page pagination.PageRequest) (pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	query := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.PageResponse[models.Expense]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return pagination.PageResponse[models.Expense]{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return pagination.NewPageResponse(expenses, page.Page, page.PageSize, total), nil
}

// Query answers a free-text question like "how much did I spend on food
// last month". Every category keyword in the text becomes a filter, and
// a relative date phrase narrows the range; with no phrase the current
// month to date is used.
func (s *expenseService) Query(userID, text string) (*QueryResult, error) {
	categories, lowered := classify.QueryCategories(text)

	rng, ok := nlp.ResolveRelativeRange(lowered, s.now())
	if !ok {
		rng = nlp.MonthRange(s.now())
	}
	start := models.FormatDate(rng.Start)
	end := models.FormatDate(rng.End)

	query := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end)
	if len(categories) > 0 {
		query = query.Where("category IN ?", categories)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := &QueryResult{
		Expenses:   expenses,
		ByCategory: make(map[string]float64),
		Categories: categories,
		RangeStart: start,
		RangeEnd:   end,
	}
	for _, e := range expenses {
		result.Total += e.Amount
		result.ByCategory[e.Category] += e.Amount
	}
	return result, nil
}

// EditLast corrects the user's most recently created expense. A zero
// amount or an empty description leaves that field unchanged, so either
// can be corrected on its own. The read-then-update is not atomic
// against a concurrent insert by the same user; the newer record may
// win the "last" slot.
func (s *expenseService) EditLast(userID string, newAmount float64, newDescription string) (*models.Expense, error) {
	if newAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must be positive")
	}
	newDescription = strings.TrimSpace(newDescription)
	if newAmount == 0 && newDescription == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "provide a new amount or description")
	}

	var expense models.Expense
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoExpenses
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if newAmount > 0 {
		expense.Amount = newAmount
	}
	if newDescription != "" {
		expense.Description = newDescription
	}
	if err := s.db.Save(&expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// Update modifies an expense's fields. Ownership is checked first.
func (s *expenseService) Update(userID, expenseID string, input ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount must be positive")
	}

	expense.Description = strings.TrimSpace(input.Description)
	expense.Amount = input.Amount
	if input.Category != "" {
		expense.Category = input.Category
		expense.IsFixed = s.isFixedCategory(userID, input.Category)
	}
	if input.Date != "" {
		parsed, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be RFC3339")
		}
		expense.Date = models.FormatDate(parsed)
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Delete removes an expense owned by the user.
func (s *expenseService) Delete(userID, expenseID string) error {
	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// CategoryTotals sums the user's expenses per category inside [start, end].
// Dates are stored as RFC3339 UTC strings, so lexicographic comparison
// in SQL is chronological comparison.
func (s *expenseService) CategoryTotals(userID string, start, end string) (map[string]float64, float64, error) {
	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	if err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]float64, len(rows))
	var grand float64
	for _, r := range rows {
		totals[r.Category] = r.Total
		grand += r.Total
	}
	return totals, grand, nil
}

// isFixedCategory reports whether a category is a recurring obligation:
// either its name carries a fixed keyword, or the user already has an
// expense in the same category within the trailing 30 days. A single
// repeat is enough, so genuinely new recurring categories start false.
func (s *expenseService) isFixedCategory(userID, category string) bool {
	lowered := strings.ToLower(category)
	for _, kw := range fixedKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	since := models.FormatDate(s.now().AddDate(0, 0, -30))
	var count int64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND category = ? AND date >= ?", userID, category, since).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
