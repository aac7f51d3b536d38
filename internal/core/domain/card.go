package domain

import (
	"time"

	"github.com/centavoapp/centavo/internal/utils/billing"
	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state of a card's current statement.
type CardStatus string

const (
	// CardOpen means the current statement is still accumulating purchases.
	CardOpen CardStatus = "OPEN"
	// CardClosed means the statement has closed and payment is not yet overdue.
	CardClosed CardStatus = "CLOSED"
	// CardDue means the due day has passed without the statement being paid.
	CardDue CardStatus = "DUE"
	// CardPaid is set by an explicit user action and is sticky until reopened.
	CardPaid CardStatus = "PAID"
)

// Card is a credit card whose purchases are tracked as CardTransactions.
//
// Amount is a cached display value: the signed sum of all the card's
// transactions, maintained by the card-transaction repository inside the same
// database transaction as each row mutation. Paid is the only persisted piece
// of status; OPEN/CLOSED/DUE are derived at read time from the calendar.
type Card struct {
	CardID string          `json:"cardID"` // Primary Key (UUID)
	UserID string          `json:"userID"` // FK -> users.user_id
	Name   string          `json:"name"`
	DueDay int             `json:"dueDay"` // 1-31
	Amount decimal.Decimal `json:"amount"` // Cached total of card transactions
	Paid   bool            `json:"paid"`   // Sticky; set via MarkPaid, cleared via Reopen
	AuditFields
}

// StatusAt derives the card's status for the given instant. A card marked paid
// stays PAID regardless of the calendar until it is explicitly reopened.
func (c Card) StatusAt(now time.Time) CardStatus {
	if c.Paid {
		return CardPaid
	}
	closing := billing.ClosingDay(c.DueDay, billing.DefaultClosingOffset, now)
	day := now.Day()
	// A due day early in the month closes in the previous month, so the
	// closing day number is near month end and sits after the due day.
	if closing > c.DueDay {
		switch {
		case day <= c.DueDay:
			return CardClosed
		case day < closing:
			return CardDue
		default:
			return CardClosed
		}
	}
	switch {
	case day < closing:
		return CardOpen
	case day <= c.DueDay:
		return CardClosed
	default:
		return CardDue
	}
}
