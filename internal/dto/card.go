package dto

import (
	"time"

	"github.com/centavoapp/centavo/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCardRequest defines the data needed to create a new card.
type CreateCardRequest struct {
	Name   string `json:"name" binding:"required"`
	DueDay int    `json:"dueDay" binding:"required,min=1,max=31"`
}

// UpdateCardRequest defines the fields allowed for updating a card.
// The cached amount is absent: it only moves with card transactions.
type UpdateCardRequest struct {
	Name   *string `json:"name"`
	DueDay *int    `json:"dueDay" binding:"omitempty,min=1,max=31"`
}

// IsEmpty reports whether no updatable field was provided.
func (r UpdateCardRequest) IsEmpty() bool {
	return r.Name == nil && r.DueDay == nil
}

// CardResponse defines the data returned for a card. Status is derived at
// read time from the calendar and the sticky paid flag.
type CardResponse struct {
	CardID    string            `json:"cardID"`
	Name      string            `json:"name"`
	DueDay    int               `json:"dueDay"`
	Amount    decimal.Decimal   `json:"amount"`
	Status    domain.CardStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToCardResponse converts a domain.Card to CardResponse DTO, deriving the
// status for the given instant.
func ToCardResponse(c *domain.Card, now time.Time) CardResponse {
	return CardResponse{
		CardID:    c.CardID,
		Name:      c.Name,
		DueDay:    c.DueDay,
		Amount:    c.Amount,
		Status:    c.StatusAt(now),
		CreatedAt: c.CreatedAt,
	}
}

// ToListCardResponse converts a slice of domain.Card to response DTOs.
func ToListCardResponse(cards []domain.Card, now time.Time) []CardResponse {
	res := make([]CardResponse, len(cards))
	for i := range cards {
		res[i] = ToCardResponse(&cards[i], now)
	}
	return res
}
