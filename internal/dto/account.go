package dto

import (
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// InitialBalance is the only moment a balance can be set directly; afterwards
// the balance only moves through transactions.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS WALLET INVESTMENT"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

// UpdateAccountRequest defines the fields allowed for updating an account.
// Balance is deliberately absent: corrections go through a compensating
// transaction, never a raw field edit.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType" binding:"omitempty,oneof=CHECKING SAVINGS WALLET INVESTMENT"`
	IsActive    *bool               `json:"isActive"`
}

// IsEmpty reports whether no updatable field was provided.
func (r UpdateAccountRequest) IsEmpty() bool {
	return r.Name == nil && r.AccountType == nil && r.IsActive == nil
}

// CorrectBalanceRequest asks for the account's balance to be corrected to the
// given target via a compensating transaction.
type CorrectBalanceRequest struct {
	TargetBalance decimal.Decimal `json:"targetBalance"`
	CategoryID    string          `json:"categoryID" binding:"required"`
	Description   string          `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
	IsActive    bool               `json:"isActive"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
