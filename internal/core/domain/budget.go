package domain

import "github.com/shopspring/decimal"

// Budget is the planned amount for a (category, month, year, user) tuple.
// Unique per that tuple.
type Budget struct {
	BudgetID   string          `json:"budgetID"`   // Primary Key (UUID)
	UserID     string          `json:"userID"`     // FK -> users.user_id
	CategoryID string          `json:"categoryID"` // FK -> categories.category_id
	Month      int             `json:"month"`      // 1-12
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"` // Planned amount, positive
	AuditFields
}
