package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry against an account.
// Amount is always a positive magnitude; Kind determines the sign.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // FK -> users.user_id
	AccountID     string          `json:"accountID"`     // FK -> accounts.account_id
	CategoryID    string          `json:"categoryID"`    // FK -> categories.category_id
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // Positive magnitude
	Kind          EntryKind       `json:"kind"`
	Date          time.Time       `json:"date"` // Calendar date, time part zero
	Notes         string          `json:"notes"`
	AuditFields
}

// SignedAmount returns the amount this transaction contributes to its
// account balance: positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}
