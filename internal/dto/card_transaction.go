package dto

import (
	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCardPurchaseRequest defines the data needed to record a card purchase.
// Installments of 1 records a single row; 2 or more produce an allocated,
// atomically persisted installment group.
type CreateCardPurchaseRequest struct {
	CardID       string           `json:"cardID" binding:"required"`
	CategoryID   string           `json:"categoryID" binding:"required"`
	Description  string           `json:"description" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	Kind         domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Date         string           `json:"date" binding:"required,dateonly"`
	Installments int              `json:"installments" binding:"required,min=1,max=99"`
}

// ListCardTransactionsParams defines query parameters for a card statement view.
type ListCardTransactionsParams struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year" binding:"omitempty,min=1970"`
}

// CardTransactionResponse defines the data returned for a card transaction.
type CardTransactionResponse struct {
	CardTransactionID string           `json:"cardTransactionID"`
	CardID            string           `json:"cardID"`
	CategoryID        string           `json:"categoryID"`
	Description       string           `json:"description"`
	Amount            decimal.Decimal  `json:"amount"`
	Kind              domain.EntryKind `json:"kind"`
	Date              string           `json:"date"`
	Installment       int              `json:"installment"`
	InstallmentTotal  int              `json:"installmentTotal"`
	GroupID           *string          `json:"groupID,omitempty"`
}

// ToCardTransactionResponse converts a domain.CardTransaction to its DTO.
func ToCardTransactionResponse(t *domain.CardTransaction) CardTransactionResponse {
	return CardTransactionResponse{
		CardTransactionID: t.CardTransactionID,
		CardID:            t.CardID,
		CategoryID:        t.CategoryID,
		Description:       t.Description,
		Amount:            t.Amount,
		Kind:              t.Kind,
		Date:              FormatDate(t.Date),
		Installment:       t.Installment,
		InstallmentTotal:  t.InstallmentTotal,
		GroupID:           t.GroupID,
	}
}

// ToListCardTransactionResponse converts a slice of domain.CardTransaction to DTOs.
func ToListCardTransactionResponse(txns []domain.CardTransaction) []CardTransactionResponse {
	res := make([]CardTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToCardTransactionResponse(&txns[i])
	}
	return res
}
