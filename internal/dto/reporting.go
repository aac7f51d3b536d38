package dto

import (
	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines query parameters for a period summary.
type SummaryParams struct {
	DateFrom *string `form:"dateFrom" binding:"omitempty,dateonly"`
	DateTo   *string `form:"dateTo" binding:"omitempty,dateonly"`
}

// SummaryResponse is the income/expense/net aggregation for a period.
type SummaryResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ToSummaryResponse converts a domain.Summary to SummaryResponse DTO.
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{Income: s.Income, Expense: s.Expense, Net: s.Net}
}

// CategoryAmountResponse is one slice of the per-category breakdown.
type CategoryAmountResponse struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// DashboardResponse bundles the overview the UI renders on its landing page.
type DashboardResponse struct {
	Summary            SummaryResponse          `json:"summary"`
	ExpenseByCategory  []CategoryAmountResponse `json:"expenseByCategory"`
	RecentTransactions []TransactionResponse    `json:"recentTransactions"`
}

// ToCategoryAmountResponses converts domain.CategoryAmount rows to DTOs.
func ToCategoryAmountResponses(rows []domain.CategoryAmount) []CategoryAmountResponse {
	res := make([]CategoryAmountResponse, len(rows))
	for i, r := range rows {
		res[i] = CategoryAmountResponse{CategoryID: r.CategoryID, Name: r.Name, Amount: r.Amount}
	}
	return res
}
