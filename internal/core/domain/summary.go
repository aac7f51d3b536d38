package domain

import "github.com/shopspring/decimal"

// Summary is a period-bounded aggregation over a user's transactions.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Kind       EntryKind       `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
}

// BudgetUsage pairs a budget's planned amount with what was actually spent in
// its month.
type BudgetUsage struct {
	Budget
	Spent decimal.Decimal `json:"spent"`
}
