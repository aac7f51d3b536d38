package dto

import (
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a new transaction.
type CreateTransactionRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	CategoryID  string           `json:"categoryID" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Kind        domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Date        string           `json:"date" binding:"required,dateonly"`
	Notes       string           `json:"notes"`
}

// UpdateTransactionRequest defines the fields allowed for updating a
// transaction. The struct is the whitelist: fields outside it never reach the
// store. Changing Amount, Kind or AccountID triggers the reverse-then-apply
// balance sequence.
type UpdateTransactionRequest struct {
	AccountID   *string           `json:"accountID"`
	CategoryID  *string           `json:"categoryID"`
	Description *string           `json:"description"`
	Amount      *decimal.Decimal  `json:"amount"`
	Kind        *domain.EntryKind `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Date        *string           `json:"date" binding:"omitempty,dateonly"`
	Notes       *string           `json:"notes"`
}

// IsEmpty reports whether no updatable field was provided.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.AccountID == nil && r.CategoryID == nil && r.Description == nil &&
		r.Amount == nil && r.Kind == nil && r.Date == nil && r.Notes == nil
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID  *string           `form:"accountID"`
	CategoryID *string           `form:"categoryID"`
	Kind       *domain.EntryKind `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	DateFrom   *string           `form:"dateFrom" binding:"omitempty,dateonly"`
	DateTo     *string           `form:"dateTo" binding:"omitempty,dateonly"`
	Limit      int               `form:"limit,default=100"`
}

// BulkCreateTransactionsRequest carries a sequential import batch. Each record
// is its own atomic unit; a partial import is accepted behavior, reported
// per record in the response.
type BulkCreateTransactionsRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// BulkCreateResult reports the outcome of one imported record.
type BulkCreateResult struct {
	Index         int    `json:"index"`
	TransactionID string `json:"transactionID,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BulkCreateTransactionsResponse summarizes a sequential import.
type BulkCreateTransactionsResponse struct {
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
	Results []BulkCreateResult `json:"results"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string           `json:"transactionID"`
	AccountID     string           `json:"accountID"`
	CategoryID    string           `json:"categoryID"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	Kind          domain.EntryKind `json:"kind"`
	Date          string           `json:"date"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		CategoryID:    t.CategoryID,
		Description:   t.Description,
		Amount:        t.Amount,
		Kind:          t.Kind,
		Date:          FormatDate(t.Date),
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
