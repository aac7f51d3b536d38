package domain

import "github.com/shopspring/decimal"

// AccountType defines the kind of account holding the money.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Wallet     AccountType = "WALLET"
	Investment AccountType = "INVESTMENT"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Wallet, Investment:
		return true
	}
	return false
}

// Account represents a financial account owned by a user.
//
// Balance is a materialized projection of the account's transaction ledger:
// at every quiescent point it equals the sum of the signed amounts of the
// account's transactions plus the initial balance recorded at creation.
// After creation it is only ever written by the transaction repository, inside
// the same database transaction as the row mutation that changes it.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`    // FK -> users.user_id
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"` // Signed; cached ledger projection
	IsActive    bool            `json:"isActive"`
	AuditFields
}
