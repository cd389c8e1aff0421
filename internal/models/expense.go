package models

import "time"

// DateLayout is the storage format for expense dates: RFC 3339 in UTC.
// Keeping dates as UTC strings makes lexicographic order match
// chronological order, so range filters are plain string comparisons.
const DateLayout = time.RFC3339

// FormatDate renders t in the canonical expense date format.
func FormatDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(DateLayout)
}

// ParseDate parses a stored expense date back into a time.Time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Expense represents a single spending record owned by a user.
type Expense struct {
	Base
	UserID      string  `gorm:"not null;index:idx_expenses_user_date,priority:1;index:idx_expenses_user_category,priority:1" json:"user_id"`
	Description string  `gorm:"not null" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Category    string  `gorm:"not null;index:idx_expenses_user_category,priority:2" json:"category"`
	Date        string  `gorm:"not null;index:idx_expenses_user_date,priority:2" json:"date"`
	IsFixed     bool    `gorm:"default:false" json:"is_fixed"`
}
