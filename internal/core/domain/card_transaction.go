package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardTransaction is a purchase (or one installment of a purchase) on a card.
//
// A parcelled purchase is stored as InstallmentTotal rows sharing one GroupID,
// with Installment running 1..InstallmentTotal and per-row amounts fixed at
// creation time by the allocator. Single-installment purchases carry a nil
// GroupID. Installments of one purchase are immutable as a set; the only
// group-level mutation is deleting the whole group.
type CardTransaction struct {
	CardTransactionID string          `json:"cardTransactionID"` // Primary Key (UUID)
	UserID            string          `json:"userID"`            // FK -> users.user_id
	CardID            string          `json:"cardID"`            // FK -> cards.card_id
	CategoryID        string          `json:"categoryID"`        // FK -> categories.category_id
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"` // This installment's share, positive
	Kind              EntryKind       `json:"kind"`
	Date              time.Time       `json:"date"`        // Effective statement date, fixed at creation
	Installment       int             `json:"installment"` // 1-based sequence within the group
	InstallmentTotal  int             `json:"installmentTotal"`
	GroupID           *string         `json:"groupID,omitempty"` // Shared by all installments of one purchase
	AuditFields
}

// SignedAmount returns the amount this row contributes to the card's cached
// display total: positive for expenses (they increase the statement), negative
// for income such as refunds.
func (t CardTransaction) SignedAmount() decimal.Decimal {
	if t.Kind == Income {
		return t.Amount.Neg()
	}
	return t.Amount
}
