package dto

import (
	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a new budget.
type CreateBudgetRequest struct {
	CategoryID string          `json:"categoryID" binding:"required"`
	Month      int             `json:"month" binding:"required,min=1,max=12"`
	Year       int             `json:"year" binding:"required,min=1970"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// UpdateBudgetRequest defines the fields allowed for updating a budget.
// The (category, month, year) tuple is its identity and cannot move.
type UpdateBudgetRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// IsEmpty reports whether no updatable field was provided.
func (r UpdateBudgetRequest) IsEmpty() bool {
	return r.Amount == nil
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1970"`
}

// BudgetResponse defines the data returned for a budget, including the spent
// amount aggregated from the month's transactions.
type BudgetResponse struct {
	BudgetID   string          `json:"budgetID"`
	CategoryID string          `json:"categoryID"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
}

// ToBudgetResponse converts a domain.BudgetUsage to BudgetResponse DTO.
func ToBudgetResponse(b *domain.BudgetUsage) BudgetResponse {
	return BudgetResponse{
		BudgetID:   b.BudgetID,
		CategoryID: b.CategoryID,
		Month:      b.Month,
		Year:       b.Year,
		Amount:     b.Amount,
		Spent:      b.Spent,
	}
}

// ToListBudgetResponse converts a slice of domain.BudgetUsage to response DTOs.
func ToListBudgetResponse(budgets []domain.BudgetUsage) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}
