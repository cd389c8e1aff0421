package models

// User represents the user model in the database.
//
// Salary is nil until the user sets it; budget analysis refuses to run
// without it. SavingsGoal defaults to zero.
type User struct {
	Base
	Name        string    `json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Salary      *float64  `json:"salary,omitempty"`
	SavingsGoal float64   `gorm:"default:0" json:"savings_goal"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	Expenses    []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
